package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tasko-app/tasko-api/internal/core/domain"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

// TaskEventSink receives task lifecycle events for asynchronous recording
// as in-app notifications.
type TaskEventSink interface {
	Enqueue(event ports.TaskEvent)
}

// TaskService implements task CRUD, filtering, bulk transitions, and
// aggregate statistics.
type TaskService struct {
	repo   ports.TaskRepository
	events TaskEventSink
	log    zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, events TaskEventSink, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, events: events, log: log}
}

func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	now := time.Now().UTC()
	priority := domain.TaskPriority(in.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task, err := s.repo.Create(ctx, &domain.Task{
		UserID:    in.UserID,
		Title:     in.Title,
		Desc:      in.Desc,
		Date:      in.Date,
		Priority:  priority,
		Important: in.Important,
		Project:   domain.TaskProject(in.Project),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.emit(ports.TaskEvent{
		UserID:    task.UserID,
		TaskID:    task.ID,
		TaskTitle: task.Title,
		Type:      domain.NotifyTaskCreated,
	})

	s.log.Info().Str("task_id", task.ID).Str("user_id", task.UserID).Msg("task created")
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, userID, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, userID, id)
}

func (s *TaskService) List(ctx context.Context, f ports.ListTasksFilter) ([]*domain.Task, error) {
	if f.Priority == "all" {
		f.Priority = ""
	}
	return s.repo.List(ctx, f)
}

// Update replaces the task's mutable fields. Done and important toggles are
// reported as dedicated notification events; other changes as a plain update.
func (s *TaskService) Update(ctx context.Context, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, in.UserID, in.ID)
	if err != nil {
		return nil, err
	}

	eventType := domain.NotifyTaskUpdated
	switch {
	case !task.Done && in.Done:
		eventType = domain.NotifyTaskCompleted
	case task.Done && !in.Done:
		eventType = domain.NotifyTaskUncompleted
	case !task.Important && in.Important:
		eventType = domain.NotifyTaskImportant
	case task.Important && !in.Important:
		eventType = domain.NotifyTaskUnimportant
	}

	task.Title = in.Title
	task.Desc = in.Desc
	task.Date = in.Date
	if in.Priority != "" {
		task.Priority = domain.TaskPriority(in.Priority)
	}
	task.Done = in.Done
	task.Important = in.Important
	task.Project = domain.TaskProject(in.Project)
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.emit(ports.TaskEvent{
		UserID:    task.UserID,
		TaskID:    task.ID,
		TaskTitle: task.Title,
		Type:      eventType,
	})
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	task, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.emit(ports.TaskEvent{
		UserID:    userID,
		TaskID:    id,
		TaskTitle: task.Title,
		Type:      domain.NotifyTaskDeleted,
	})
	return nil
}

// BulkUpdate applies one action to an explicit set of task IDs.
func (s *TaskService) BulkUpdate(ctx context.Context, userID, action string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, ports.ErrInvalidBulkAction
	}

	switch action {
	case ports.BulkMarkDone:
		return s.repo.SetDoneByIDs(ctx, userID, ids, true)
	case ports.BulkMarkUndone:
		return s.repo.SetDoneByIDs(ctx, userID, ids, false)
	case ports.BulkMarkImportant:
		return s.repo.SetImportantByIDs(ctx, userID, ids, true)
	case ports.BulkMarkUnimportant:
		return s.repo.SetImportantByIDs(ctx, userID, ids, false)
	case ports.BulkDelete:
		return s.repo.DeleteByIDs(ctx, userID, ids)
	default:
		return 0, ports.ErrInvalidBulkAction
	}
}

// BulkOperation applies a whole-collection operation for the user.
func (s *TaskService) BulkOperation(ctx context.Context, userID, operation string) (int64, error) {
	switch operation {
	case ports.OpDeleteCompleted:
		return s.repo.DeleteCompleted(ctx, userID)
	case ports.OpClearAll:
		return s.repo.DeleteAll(ctx, userID)
	case ports.OpMarkAllDone:
		return s.repo.MarkAllDone(ctx, userID)
	default:
		return 0, ports.ErrInvalidBulkAction
	}
}

func (s *TaskService) Stats(ctx context.Context, userID string) (*ports.TaskStats, error) {
	tasks, err := s.repo.List(ctx, ports.ListTasksFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}

	now := time.Now().UTC()
	stats := &ports.TaskStats{ProjectStats: make(map[string]int64)}
	for _, t := range tasks {
		stats.Total++
		if t.Done {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
		if t.Important {
			stats.Important++
		}
		if t.Project != "" {
			stats.ProjectStats[string(t.Project)]++
		}
	}
	stats.CompletionRate = completionRate(stats.Completed, stats.Total)
	return stats, nil
}

func (s *TaskService) DashboardStats(ctx context.Context, userID string, days int) (*ports.DashboardStats, error) {
	if days <= 0 {
		days = 7
	}

	tasks, err := s.repo.List(ctx, ports.ListTasksFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	now := time.Now().UTC()
	// The window starts at midnight so tasks created earlier on the
	// boundary day still count.
	windowStart := now.AddDate(0, 0, -days).Truncate(24 * time.Hour)
	dueSoonEnd := now.AddDate(0, 0, 3)

	stats := &ports.DashboardStats{
		PriorityStats: map[string]int64{"high": 0, "medium": 0, "low": 0},
		ProjectStats:  make(map[string]int64),
	}
	for _, t := range tasks {
		if !t.CreatedAt.Before(windowStart) {
			stats.Weekly.Total++
			if t.Done {
				stats.Weekly.Completed++
			}
		}
		stats.PriorityStats[string(t.Priority)]++
		if t.Project != "" {
			stats.ProjectStats[string(t.Project)]++
		}
		if t.IsOverdue(now) {
			stats.TotalOverdue++
		}
		if !t.Done && t.Date != nil && !t.Date.Before(now.Truncate(24*time.Hour)) && !t.Date.After(dueSoonEnd) {
			stats.DueSoon++
		}
	}
	stats.Weekly.CompletionRate = completionRate(stats.Weekly.Completed, stats.Weekly.Total)
	return stats, nil
}

func (s *TaskService) emit(event ports.TaskEvent) {
	if s.events != nil {
		s.events.Enqueue(event)
	}
}

// completionRate returns completed/total as a percentage rounded to one
// decimal place, 0 when there are no tasks.
func completionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}
