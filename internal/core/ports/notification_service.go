package ports

import (
	"context"

	"github.com/tasko-app/tasko-api/internal/core/domain"
)

// TaskEvent describes a task lifecycle change to be recorded as an in-app
// notification. Events for the same user must be processed in order.
type TaskEvent struct {
	UserID    string
	TaskID    string
	TaskTitle string
	Type      domain.NotificationType
}

// NotificationService records and manages in-app notifications.
type NotificationService interface {
	// Record turns a task event into a stored notification.
	Record(ctx context.Context, event TaskEvent) error
	List(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
	ClearAll(ctx context.Context, userID string) (int64, error)
}
