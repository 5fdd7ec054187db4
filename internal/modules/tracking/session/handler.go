package session

import (
	"errors"
	"strconv"

	"github.com/empmonitor/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts /sessions. guard runs before the start handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	g := rg.Group("/sessions")
	g.POST("/start", append(guard, h.start)...)
	g.POST("/end/:id", h.end)
}

func (h *Handler) start(c *gin.Context) {
	var dto SessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, "user_email is required")
		return
	}

	id, err := h.svc.Start(c.Request.Context(), dto.UserEmail)
	if err != nil {
		h.log.Error("start session failed", zap.String("email", dto.UserEmail), zap.Error(err))
		response.InternalError(c, "Failed to start session")
		return
	}

	h.log.Info("session started", zap.Uint("session_id", id), zap.String("email", dto.UserEmail))
	response.OK(c, startResponse{SessionID: id})
}

func (h *Handler) end(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.UnprocessableEntity(c, "session id must be an integer")
		return
	}
	var dto SessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, "user_email is required")
		return
	}

	if err := h.svc.End(c.Request.Context(), uint(id), dto.UserEmail); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Session not found")
			return
		}
		h.log.Error("end session failed", zap.Uint64("session_id", id), zap.Error(err))
		response.InternalError(c, "Failed to end session")
		return
	}

	h.log.Info("session ended", zap.Uint64("session_id", id))
	response.OK(c, endResponse{Status: "ended"})
}
