package cycle

import (
	"github.com/gin-gonic/gin"

	"github.com/herahealth/portal-api/internal/middleware"
	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/service/cycle"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
	"github.com/herahealth/portal-api/pkg/httputil"
)

type Handler struct {
	service *cycle.Service
}

func NewHandler(service *cycle.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	logs := r.Group("/period-logs")
	{
		logs.POST("", h.Create)
		logs.GET("", h.List)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePeriodLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	entry, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, entry)
}

func (h *Handler) List(c *gin.Context) {
	logs, err := h.service.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, logs)
}
