package ports

import (
	"context"
	"time"

	"github.com/tasko-app/tasko-api/internal/core/domain"
)

// CreateTaskInput carries the data for a new task.
type CreateTaskInput struct {
	UserID    string
	Title     string
	Desc      string
	Date      *time.Time
	Priority  string
	Important bool
	Project   string
}

// UpdateTaskInput carries the full replacement state for a task.
type UpdateTaskInput struct {
	UserID    string
	ID        string
	Title     string
	Desc      string
	Date      *time.Time
	Priority  string
	Done      bool
	Important bool
	Project   string
}

// Bulk actions by explicit task IDs.
const (
	BulkMarkDone        = "mark_done"
	BulkMarkUndone      = "mark_undone"
	BulkMarkImportant   = "mark_important"
	BulkMarkUnimportant = "mark_unimportant"
	BulkDelete          = "delete"
)

// Whole-collection operations.
const (
	OpDeleteCompleted = "delete_completed"
	OpClearAll        = "clear_all"
	OpMarkAllDone     = "mark_all_done"
)

// ErrInvalidBulkAction is mapped to a 400 at the handler boundary.
var ErrInvalidBulkAction = invalidBulkActionError{}

type invalidBulkActionError struct{}

func (invalidBulkActionError) Error() string { return "invalid action" }

// TaskStats summarises a user's tasks.
type TaskStats struct {
	Total          int64
	Completed      int64
	Pending        int64
	Overdue        int64
	Important      int64
	CompletionRate float64
	ProjectStats   map[string]int64
}

// WeeklyStats covers the rolling dashboard window.
type WeeklyStats struct {
	Total          int64
	Completed      int64
	CompletionRate float64
}

// DashboardStats is the aggregate view behind the dashboard.
type DashboardStats struct {
	Weekly        WeeklyStats
	PriorityStats map[string]int64
	ProjectStats  map[string]int64
	DueSoon       int64
	TotalOverdue  int64
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, userID, id string) (*domain.Task, error)
	List(ctx context.Context, f ListTasksFilter) ([]*domain.Task, error)
	Update(ctx context.Context, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, userID, id string) error

	// BulkUpdate applies one of the Bulk* actions to the given IDs and
	// returns the number of tasks affected.
	BulkUpdate(ctx context.Context, userID, action string, ids []string) (int64, error)
	// BulkOperation applies one of the Op* operations to the whole
	// collection and returns the number of tasks affected.
	BulkOperation(ctx context.Context, userID, operation string) (int64, error)

	Stats(ctx context.Context, userID string) (*TaskStats, error)
	// DashboardStats aggregates over the last days days (default 7).
	DashboardStats(ctx context.Context, userID string, days int) (*DashboardStats, error)
}
