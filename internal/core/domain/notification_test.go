package domain

import (
	"testing"
	"time"
)

func TestNotificationTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{3 * time.Hour, "3 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tc := range cases {
		n := Notification{CreatedAt: now.Add(-tc.age)}
		if got := n.TimeAgo(now); got != tc.want {
			t.Fatalf("TimeAgo(%v) = %q, want %q", tc.age, got, tc.want)
		}
	}
}

func TestNotificationTypeIcon(t *testing.T) {
	if got := NotifyTaskCompleted.Icon(); got != "✅" {
		t.Fatalf("unexpected icon: %q", got)
	}
	if got := NotifyTaskUpdated.Icon(); got != DefaultIcon {
		t.Fatalf("types without a dedicated icon use the default, got %q", got)
	}
}

func TestUserIdentityHelpers(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace"}
	if u.FullName() != "Ada Lovelace" || u.Initials() != "AL" {
		t.Fatalf("unexpected identity: %q / %q", u.FullName(), u.Initials())
	}

	solo := User{FirstName: "Ada"}
	if solo.FullName() != "Ada" || solo.Initials() != "A" {
		t.Fatalf("unexpected identity: %q / %q", solo.FullName(), solo.Initials())
	}
}
