package ports

import (
	"context"

	"github.com/tasko-app/tasko-api/internal/core/domain"
)

// NotificationRepository defines persistence for in-app notifications,
// always scoped to a user, newest first.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	List(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	// MarkAllRead marks every unread notification and reports the count.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
	// DeleteAll clears the user's notifications and reports the count.
	DeleteAll(ctx context.Context, userID string) (int64, error)
}
