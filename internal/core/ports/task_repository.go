package ports

import (
	"context"

	"github.com/tasko-app/tasko-api/internal/core/domain"
)

// ListTasksFilter carries the query parameters for listing tasks.
// UserID is always enforced; the remaining fields are optional.
type ListTasksFilter struct {
	UserID    string
	Project   string // filter by project key
	Priority  string // filter by priority ("all" is ignored by the service)
	Done      *bool
	Important *bool
	Search    string // partial match on title or desc
	OrderBy   string // date | priority | title | created_at (default: -created_at)
}

// TaskRepository defines persistence operations for tasks. Every operation
// is scoped to a user; cross-user access is not expressible.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, userID, id string) (*domain.Task, error)
	List(ctx context.Context, f ListTasksFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, userID, id string) error

	// Bulk transitions by explicit ID set. Each returns the number of
	// tasks affected.
	SetDoneByIDs(ctx context.Context, userID string, ids []string, done bool) (int64, error)
	SetImportantByIDs(ctx context.Context, userID string, ids []string, important bool) (int64, error)
	DeleteByIDs(ctx context.Context, userID string, ids []string) (int64, error)

	// Whole-collection operations for a user.
	DeleteCompleted(ctx context.Context, userID string) (int64, error)
	DeleteAll(ctx context.Context, userID string) (int64, error)
	MarkAllDone(ctx context.Context, userID string) (int64, error)
}
