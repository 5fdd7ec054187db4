package aggregate

import (
	"github.com/empmonitor/core/internal/pkg/response"
	"github.com/empmonitor/core/internal/pkg/timeutil"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.dashboard)
	rg.GET("/dashboard-summary", h.summary)
	rg.GET("/daily-timeline", h.timeline)
	rg.GET("/screenshots", h.gallery)
}

func (h *Handler) bindRange(c *gin.Context) (string, timeutil.Range, bool) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.UnprocessableEntity(c, "email is required")
		return "", timeutil.Range{}, false
	}
	window, err := timeutil.ParseRange(q.StartDate, q.EndDate, h.svc.Now())
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return "", timeutil.Range{}, false
	}
	return q.Email, window, true
}

func (h *Handler) dashboard(c *gin.Context) {
	email, window, ok := h.bindRange(c)
	if !ok {
		return
	}
	rows, err := h.svc.Daily(c.Request.Context(), email, window)
	if err != nil {
		h.log.Error("dashboard query failed", zap.String("email", email), zap.Error(err))
		response.InternalError(c, "Failed to load dashboard")
		return
	}
	response.Success(c, rows)
}

func (h *Handler) summary(c *gin.Context) {
	var q emailQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.UnprocessableEntity(c, "email is required")
		return
	}
	sum, err := h.svc.Summary(c.Request.Context(), q.Email)
	if err != nil {
		h.log.Error("dashboard summary failed", zap.String("email", q.Email), zap.Error(err))
		response.InternalError(c, "Failed to load dashboard summary")
		return
	}
	response.Success(c, sum)
}

func (h *Handler) timeline(c *gin.Context) {
	var q timelineQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.UnprocessableEntity(c, "email is required")
		return
	}

	if q.Date == "" {
		dates, err := h.svc.TimelineDates(c.Request.Context(), q.Email)
		if err != nil {
			h.log.Error("timeline dates failed", zap.String("email", q.Email), zap.Error(err))
			response.InternalError(c, "Failed to load timeline")
			return
		}
		response.Success(c, dates)
		return
	}

	day, err := timeutil.ParseDate(q.Date)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	rows, err := h.svc.TimelineForDate(c.Request.Context(), q.Email, day)
	if err != nil {
		h.log.Error("timeline query failed", zap.String("email", q.Email), zap.String("date", q.Date), zap.Error(err))
		response.InternalError(c, "Failed to load timeline")
		return
	}
	response.Success(c, rows)
}

func (h *Handler) gallery(c *gin.Context) {
	email, window, ok := h.bindRange(c)
	if !ok {
		return
	}
	rows, err := h.svc.Gallery(c.Request.Context(), email, window)
	if err != nil {
		h.log.Error("screenshot gallery failed", zap.String("email", email), zap.Error(err))
		response.InternalError(c, "Failed to load screenshots")
		return
	}
	response.Success(c, rows)
}
