package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tasko-app/tasko-api/internal/core/domain"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

// notificationCopy maps task event types to the title/description shown in
// the notification feed. The description format verb receives the task title.
var notificationCopy = map[domain.NotificationType]struct {
	title  string
	detail string
}{
	domain.NotifyTaskCreated:     {"Task Created", "New task %q added"},
	domain.NotifyTaskUpdated:     {"Task Updated", "Task %q was updated"},
	domain.NotifyTaskDeleted:     {"Task Deleted", "Task %q was deleted"},
	domain.NotifyTaskCompleted:   {"Task Completed", "Task %q marked as done"},
	domain.NotifyTaskUncompleted: {"Task Reopened", "Task %q marked as not done"},
	domain.NotifyTaskImportant:   {"Task Marked Important", "Task %q flagged as important"},
	domain.NotifyTaskUnimportant: {"Task Unmarked Important", "Task %q no longer important"},
	domain.NotifyOverdue:         {"Task Overdue", "Task %q is overdue"},
	domain.NotifyDueSoon:         {"Due Soon", "Task %q is due soon"},
}

// NotificationService records task lifecycle events and manages the user's
// notification feed.
type NotificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

// Record persists a task event as an in-app notification.
func (s *NotificationService) Record(ctx context.Context, event ports.TaskEvent) error {
	text, ok := notificationCopy[event.Type]
	if !ok {
		text = struct {
			title  string
			detail string
		}{"Notification", "Task %q changed"}
	}

	_, err := s.repo.Create(ctx, &domain.Notification{
		UserID:    event.UserID,
		TaskID:    event.TaskID,
		Title:     text.title,
		Desc:      fmt.Sprintf(text.detail, event.TaskTitle),
		Type:      event.Type,
		Icon:      event.Type.Icon(),
		Read:      false,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("record notification: %w", err)
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.repo.List(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *NotificationService) ClearAll(ctx context.Context, userID string) (int64, error) {
	return s.repo.DeleteAll(ctx, userID)
}
