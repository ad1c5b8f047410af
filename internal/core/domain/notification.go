package domain

import (
	"fmt"
	"time"
)

// NotificationType identifies the lifecycle event a notification reports.
type NotificationType string

const (
	NotifyOverdue         NotificationType = "overdue"
	NotifyTaskCreated     NotificationType = "task_created"
	NotifyTaskUpdated     NotificationType = "task_updated"
	NotifyTaskDeleted     NotificationType = "task_deleted"
	NotifyTaskCompleted   NotificationType = "task_completed"
	NotifyTaskUncompleted NotificationType = "task_uncompleted"
	NotifyTaskImportant   NotificationType = "task_important"
	NotifyTaskUnimportant NotificationType = "task_unimportant"
	NotifyDueSoon         NotificationType = "due_soon"
)

// DefaultIcon is used when a notification type has no dedicated icon.
const DefaultIcon = "🔔"

var notificationIcons = map[NotificationType]string{
	NotifyTaskCreated:   "✨",
	NotifyTaskCompleted: "✅",
	NotifyTaskDeleted:   "🗑️",
	NotifyTaskImportant: "⭐",
	NotifyOverdue:       "⏰",
	NotifyDueSoon:       "⏳",
}

// Icon returns the display icon for the notification type.
func (t NotificationType) Icon() string {
	if icon, ok := notificationIcons[t]; ok {
		return icon
	}
	return DefaultIcon
}

// Notification is an in-app message about a task lifecycle event.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"-"`
	TaskID    string           `json:"task_id,omitempty"`
	Title     string           `json:"title"`
	Desc      string           `json:"desc"`
	Type      NotificationType `json:"notification_type"`
	Icon      string           `json:"icon"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// TimeAgo renders the notification age as a human-readable phrase.
func (n *Notification) TimeAgo(now time.Time) string {
	delta := now.Sub(n.CreatedAt)
	switch {
	case delta >= 24*time.Hour:
		return plural(int(delta.Hours()/24), "day")
	case delta >= time.Hour:
		return plural(int(delta.Hours()), "hour")
	case delta >= time.Minute:
		return plural(int(delta.Minutes()), "minute")
	default:
		return "Just now"
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
