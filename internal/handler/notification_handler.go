package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sportoase/sportoase-api/internal/models"
	"github.com/sportoase/sportoase-api/pkg/response"
)

type notificationService interface {
	List(ctx context.Context, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) (*models.Notification, error)
}

// NotificationHandler exposes the admin event feed.
type NotificationHandler struct {
	notes notificationService
}

// NewNotificationHandler constructs the notification handler.
func NewNotificationHandler(notes notificationService) *NotificationHandler {
	return &NotificationHandler{notes: notes}
}

// List godoc
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread_only query bool false "Only unread entries"
// @Success 200 {object} response.Envelope{data=[]models.Notification}
// @Failure 403 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread_only") == "true"
	notes, err := h.notes.List(c.Request.Context(), unreadOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope{data=models.Notification}
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id}/mark-read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	note, err := h.notes.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note)
}
