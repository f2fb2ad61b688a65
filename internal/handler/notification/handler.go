package notification

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/middleware"
	"github.com/herahealth/portal-api/internal/service/notification"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
	"github.com/herahealth/portal-api/pkg/httputil"
)

type Handler struct {
	service notification.Service
}

func NewHandler(service notification.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.POST("/:id/read", h.MarkRead)
	}
}

func (h *Handler) List(c *gin.Context) {
	notifications, err := h.service.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, notifications)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid notification ID"))
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"read": true})
}
