package user

import (
	"github.com/empmonitor/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.profile)
}

func (h *Handler) profile(c *gin.Context) {
	var q profileQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.UnprocessableEntity(c, "email is required")
		return
	}
	response.OK(c, h.svc.Profile(q.Email))
}
