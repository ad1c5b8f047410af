package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tasko-app/tasko-api/internal/api/metrics"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

// TaskHandler exposes task CRUD, bulk operations, and statistics.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /tasks with optional filter query parameters.
func (h *TaskHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	filter := ports.ListTasksFilter{
		UserID:   user.ID,
		Project:  c.QueryParam("project"),
		Priority: c.QueryParam("priority"),
		Search:   c.QueryParam("search"),
		OrderBy:  c.QueryParam("ordering"),
	}
	if v := c.QueryParam("done"); v != "" {
		done := v == "true"
		filter.Done = &done
	}
	if v := c.QueryParam("important"); v != "" {
		important := v == "true"
		filter.Important = &important
	}

	tasks, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks, time.Now()))
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		UserID:    user.ID,
		Title:     req.Title,
		Desc:      req.Desc,
		Date:      req.Date,
		Priority:  req.Priority,
		Important: req.Important,
		Project:   req.Project,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()
	return c.JSON(http.StatusCreated, toTaskResponse(task, time.Now()))
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task, time.Now()))
}

// Update handles PUT /tasks/:id with full replacement semantics.
func (h *TaskHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), ports.UpdateTaskInput{
		UserID:    user.ID,
		ID:        c.Param("id"),
		Title:     req.Title,
		Desc:      req.Desc,
		Date:      req.Date,
		Priority:  req.Priority,
		Done:      req.Done,
		Important: req.Important,
		Project:   req.Project,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task, time.Now()))
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// BulkUpdate handles POST /tasks/bulk-update, applying one action to a set
// of task IDs.
func (h *TaskHandler) BulkUpdate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req bulkUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	count, err := h.service.BulkUpdate(c.Request().Context(), user.ID, req.Action, req.TaskIDs)
	if err != nil {
		return err
	}

	verb := "updated"
	if req.Action == ports.BulkDelete {
		verb = "deleted"
	}
	return c.JSON(http.StatusOK, bulkResultResponse{
		Message: fmt.Sprintf("%d tasks %s", count, verb),
	})
}

// BulkOperation handles POST /tasks/bulk-operations, applying one operation
// to the user's whole collection.
func (h *TaskHandler) BulkOperation(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req bulkOperationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	count, err := h.service.BulkOperation(c.Request().Context(), user.ID, req.Operation)
	if err != nil {
		return err
	}

	var msg string
	switch req.Operation {
	case ports.OpDeleteCompleted:
		msg = fmt.Sprintf("%d completed tasks deleted", count)
	case ports.OpClearAll:
		msg = fmt.Sprintf("%d tasks deleted", count)
	case ports.OpMarkAllDone:
		msg = fmt.Sprintf("%d tasks marked as done", count)
	}
	return c.JSON(http.StatusOK, bulkResultResponse{Message: msg})
}

// Stats handles GET /tasks/stats.
func (h *TaskHandler) Stats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatsResponse(stats))
}

// DashboardStats handles GET /tasks/dashboard-stats with an optional days
// query parameter (default 7).
func (h *TaskHandler) DashboardStats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	days := 0
	if v := c.QueryParam("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a non-negative integer")
		}
		days = n
	}

	stats, err := h.service.DashboardStats(c.Request().Context(), user.ID, days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardResponse(stats))
}
