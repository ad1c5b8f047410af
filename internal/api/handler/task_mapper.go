package handler

import (
	"time"

	"github.com/tasko-app/tasko-api/internal/core/domain"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

func toTaskResponse(t *domain.Task, now time.Time) taskResponse {
	resp := taskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Desc:      t.Desc,
		Date:      t.Date,
		Priority:  string(t.Priority),
		Done:      t.Done,
		Important: t.Important,
		Project:   string(t.Project),
		IsOverdue: t.IsOverdue(now),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Project != "" {
		resp.ProjectName = t.Project.DisplayName()
	}
	return resp
}

func toTaskResponses(tasks []*domain.Task, now time.Time) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t, now))
	}
	return out
}

func toStatsResponse(s *ports.TaskStats) taskStatsResponse {
	return taskStatsResponse{
		TotalTasks:     s.Total,
		CompletedTasks: s.Completed,
		PendingTasks:   s.Pending,
		OverdueTasks:   s.Overdue,
		ImportantTasks: s.Important,
		CompletionRate: s.CompletionRate,
		ProjectStats:   s.ProjectStats,
	}
}

func toDashboardResponse(s *ports.DashboardStats) dashboardStatsResponse {
	return dashboardStatsResponse{
		Weekly: weeklyStatsResponse{
			Total:          s.Weekly.Total,
			Completed:      s.Weekly.Completed,
			CompletionRate: s.Weekly.CompletionRate,
		},
		PriorityStats: s.PriorityStats,
		ProjectStats:  s.ProjectStats,
		DueSoon:       s.DueSoon,
		TotalOverdue:  s.TotalOverdue,
	}
}
