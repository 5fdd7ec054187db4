package auth

import (
	"errors"

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

// RegisterRoutes mounts POST /login. limit runs before the handler when set.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limit ...gin.HandlerFunc) {
	rg.POST("/login", append(limit, h.login)...)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, "email and password are required")
		return
	}

	email := *dto.Email
	h.log.Info("login attempt", zap.String("email", email))
	cfg, err := h.svc.ValidateLogin(c.Request.Context(), email, *dto.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.log.Warn("login failed", zap.String("email", email))
			response.Unauthorized(c, ErrInvalidCredentials.Error())
			return
		}
		h.log.Error("login lookup failed", zap.String("email", email), zap.Error(err))
		response.InternalError(c, "login failed")
		return
	}

	h.log.Info("login succeeded", zap.String("email", email))
	response.OK(c, cfg)
}
