package domain

import (
	"testing"
	"time"
)

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"past due and open", Task{Date: &yesterday}, true},
		{"past due but done", Task{Date: &yesterday, Done: true}, false},
		{"due in the future", Task{Date: &tomorrow}, false},
		{"no due date", Task{}, false},
		{"due today", Task{Date: &now}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.task.IsOverdue(now); got != tc.want {
				t.Fatalf("IsOverdue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProjectDisplayName(t *testing.T) {
	if got := ProjectWork.DisplayName(); got != "Work" {
		t.Fatalf("expected Work, got %q", got)
	}
	if got := TaskProject("garden").DisplayName(); got != "garden" {
		t.Fatalf("unknown projects fall back to the raw key, got %q", got)
	}
}
