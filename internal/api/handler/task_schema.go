package handler

import "time"

// --- Request types ---

type createTaskRequest struct {
	Title     string     `json:"title" validate:"required"`
	Desc      string     `json:"desc"`
	Date      *time.Time `json:"date"`
	Priority  string     `json:"priority" validate:"omitempty,oneof=high medium low"`
	Important bool       `json:"important"`
	Project   string     `json:"project" validate:"omitempty,oneof=work personal health"`
}

type updateTaskRequest struct {
	Title     string     `json:"title" validate:"required"`
	Desc      string     `json:"desc"`
	Date      *time.Time `json:"date"`
	Priority  string     `json:"priority" validate:"omitempty,oneof=high medium low"`
	Done      bool       `json:"done"`
	Important bool       `json:"important"`
	Project   string     `json:"project" validate:"omitempty,oneof=work personal health"`
}

type bulkUpdateRequest struct {
	TaskIDs []string `json:"task_ids" validate:"required,min=1"`
	Action  string   `json:"action" validate:"required"`
}

type bulkOperationRequest struct {
	Operation string `json:"operation" validate:"required"`
}

// --- Response types ---

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Desc        string     `json:"desc"`
	Date        *time.Time `json:"date"`
	Priority    string     `json:"priority"`
	Done        bool       `json:"done"`
	Important   bool       `json:"important"`
	Project     string     `json:"project,omitempty"`
	ProjectName string     `json:"project_name,omitempty"`
	IsOverdue   bool       `json:"is_overdue"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type bulkResultResponse struct {
	Message string `json:"message"`
}

type taskStatsResponse struct {
	TotalTasks     int64            `json:"total_tasks"`
	CompletedTasks int64            `json:"completed_tasks"`
	PendingTasks   int64            `json:"pending_tasks"`
	OverdueTasks   int64            `json:"overdue_tasks"`
	ImportantTasks int64            `json:"important_tasks"`
	CompletionRate float64          `json:"completion_rate"`
	ProjectStats   map[string]int64 `json:"project_stats"`
}

type weeklyStatsResponse struct {
	Total          int64   `json:"total"`
	Completed      int64   `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

type dashboardStatsResponse struct {
	Weekly        weeklyStatsResponse `json:"weekly"`
	PriorityStats map[string]int64    `json:"priority_stats"`
	ProjectStats  map[string]int64    `json:"project_stats"`
	DueSoon       int64               `json:"due_soon"`
	TotalOverdue  int64               `json:"total_overdue"`
}
