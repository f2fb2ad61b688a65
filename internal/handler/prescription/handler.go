package prescription

import (
	"github.com/gin-gonic/gin"

	"github.com/herahealth/portal-api/internal/middleware"
	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/service/prescription"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
	"github.com/herahealth/portal-api/pkg/httputil"
)

type Handler struct {
	service *prescription.Service
}

func NewHandler(service *prescription.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("", auth.RequireDoctor(), h.Create)
		prescriptions.GET("", h.List)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	prescription, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, prescription)
}

func (h *Handler) List(c *gin.Context) {
	prescriptions, err := h.service.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, prescriptions)
}
