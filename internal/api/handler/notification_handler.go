package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tasko-app/tasko-api/internal/core/domain"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

// NotificationHandler exposes the in-app notification feed.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Type      string    `json:"notification_type"`
	Icon      string    `json:"icon"`
	Read      bool      `json:"read"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationResponse(n *domain.Notification, now time.Time) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Desc:      n.Desc,
		Type:      string(n.Type),
		Icon:      n.Icon,
		Read:      n.Read,
		Time:      n.TimeAgo(now),
		CreatedAt: n.CreatedAt,
	}
}

// List handles GET /notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	notifications, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	now := time.Now()
	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationResponse(n, now))
	}
	return c.JSON(http.StatusOK, out)
}

// MarkRead handles POST /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bulkResultResponse{Message: "notification marked as read"})
}

// MarkAllRead handles POST /notifications/mark-all-read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.service.MarkAllRead(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bulkResultResponse{
		Message: fmt.Sprintf("%d notifications marked as read", count),
	})
}

// Delete handles DELETE /notifications/:id.
func (h *NotificationHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearAll handles DELETE /notifications/clear-all.
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.service.ClearAll(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bulkResultResponse{
		Message: fmt.Sprintf("%d notifications cleared", count),
	})
}
