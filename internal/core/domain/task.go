package domain

import "time"

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// TaskProject is the optional bucket a task belongs to.
type TaskProject string

const (
	ProjectWork     TaskProject = "work"
	ProjectPersonal TaskProject = "personal"
	ProjectHealth   TaskProject = "health"
)

// projectNames maps project keys to their display names.
var projectNames = map[TaskProject]string{
	ProjectWork:     "Work",
	ProjectPersonal: "Personal",
	ProjectHealth:   "Health",
}

// DisplayName returns the human-readable project name, falling back to the
// raw key for unknown values.
func (p TaskProject) DisplayName() string {
	if name, ok := projectNames[p]; ok {
		return name
	}
	return string(p)
}

// Task is a single to-do item owned by a user.
type Task struct {
	ID        string       `json:"id"`
	UserID    string       `json:"-"`
	Title     string       `json:"title"`
	Desc      string       `json:"desc"`
	Date      *time.Time   `json:"date"`
	Priority  TaskPriority `json:"priority"`
	Done      bool         `json:"done"`
	Important bool         `json:"important"`
	Project   TaskProject  `json:"project,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// IsOverdue reports whether the task's due date has passed without the task
// being done. Tasks without a due date are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Date == nil || t.Done {
		return false
	}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return t.Date.Before(today)
}
