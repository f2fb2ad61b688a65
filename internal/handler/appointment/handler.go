package appointment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/middleware"
	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/service/appointment"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
	"github.com/herahealth/portal-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Book)
		appointments.GET("", h.List)
		appointments.POST("/:id/confirm", auth.RequireDoctor(), h.Confirm)
		appointments.POST("/:id/cancel", auth.RequireDoctor(), h.Cancel)
		appointments.POST("/:id/pay", h.Pay)
	}

	r.GET("/doctor/dashboard", auth.RequireDoctor(), h.Dashboard)
}

func (h *Handler) Book(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	apt, err := h.service.Book(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) List(c *gin.Context) {
	profile := middleware.GetProfile(c)
	isDoctor := profile != nil && profile.IsDoctor

	appointments, err := h.service.ListForUser(c.Request.Context(), middleware.GetUserID(c), isDoctor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) Confirm(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID"))
		return
	}

	apt, err := h.service.Confirm(c.Request.Context(), middleware.GetUserID(c), appointmentID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Cancel(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID"))
		return
	}

	apt, err := h.service.Cancel(c.Request.Context(), middleware.GetUserID(c), appointmentID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Pay(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID"))
		return
	}

	apt, err := h.service.Pay(c.Request.Context(), middleware.GetUserID(c), appointmentID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, dashboard)
}
