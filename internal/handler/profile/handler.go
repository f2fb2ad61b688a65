package profile

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/middleware"
	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/service/appointment"
	"github.com/herahealth/portal-api/internal/service/profile"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
	"github.com/herahealth/portal-api/pkg/httputil"
)

type Handler struct {
	service        *profile.Service
	appointmentSvc *appointment.Service
}

func NewHandler(service *profile.Service, appointmentSvc *appointment.Service) *Handler {
	return &Handler{
		service:        service,
		appointmentSvc: appointmentSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profile", h.GetProfile)
	r.PUT("/profile", h.UpdateProfile)

	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id/availability", h.GetAvailability)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	profile, err := h.service.Update(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid doctor ID"))
		return
	}

	days, err := h.appointmentSvc.GetAvailability(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, days)
}
