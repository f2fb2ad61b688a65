package assistant

import (
	"github.com/gin-gonic/gin"

	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/service/assistant"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
	"github.com/herahealth/portal-api/pkg/httputil"
)

type Handler struct {
	service *assistant.Service
}

func NewHandler(service *assistant.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/assistant/messages", h.SendMessage)
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req model.AssistantMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	reply, err := h.service.Reply(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reply)
}
