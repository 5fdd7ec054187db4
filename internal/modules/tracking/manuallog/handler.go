package manuallog

import (
	"strconv"
	"time"

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
	g := rg.Group("/manual-logs")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.UnprocessableEntity(c, "email is required")
		return
	}
	window, err := timeutil.ParseRange(q.StartDate, q.EndDate, h.svc.now())
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	// Bounds compare against the calendar date of start_time.
	days := window.Days()

	rows, err := h.svc.List(c.Request.Context(), q.Email, &days)
	if err != nil {
		h.log.Error("list manual logs failed", zap.String("email", q.Email), zap.Error(err))
		response.InternalError(c, "Failed to load manual logs")
		return
	}
	out := make([]logResponse, len(rows))
	for i := range rows {
		out[i] = toResponse(&rows[i])
	}
	response.Success(c, out)
}

func (h *Handler) create(c *gin.Context) {
	entry, ok := bindEntry(c)
	if !ok {
		return
	}
	id, err := h.svc.Create(c.Request.Context(), entry)
	if err != nil {
		h.log.Error("create manual log failed", zap.String("email", entry.Email), zap.Error(err))
		response.InternalError(c, "Failed to create manual log")
		return
	}
	response.Success(c, gin.H{"manual_log_id": id})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	entry, ok := bindEntry(c)
	if !ok {
		return
	}
	affected, err := h.svc.Update(c.Request.Context(), id, entry)
	if err != nil {
		h.log.Error("update manual log failed", zap.Uint("id", id), zap.Error(err))
		response.InternalError(c, "Failed to update manual log")
		return
	}
	h.log.Debug("manual log updated", zap.Uint("id", id), zap.Int64("rows", affected))
	response.Success(c, gin.H{"updated_id": id})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	affected, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.log.Error("delete manual log failed", zap.Uint("id", id), zap.Error(err))
		response.InternalError(c, "Failed to delete manual log")
		return
	}
	h.log.Debug("manual log deleted", zap.Uint("id", id), zap.Int64("rows", affected))
	response.Success(c, gin.H{"deleted_id": id})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.UnprocessableEntity(c, "log id must be an integer")
		return 0, false
	}
	return uint(id), true
}

func bindEntry(c *gin.Context) (Entry, bool) {
	var dto ManualLogDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, "email, start_time and end_time are required")
		return Entry{}, false
	}
	start, err := timeutil.ParseTimestamp(dto.StartTime)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return Entry{}, false
	}
	end, err := timeutil.ParseTimestamp(dto.EndTime)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return Entry{}, false
	}
	return Entry{
		Email:     dto.Email,
		StartTime: start.Truncate(time.Second),
		EndTime:   end.Truncate(time.Second),
		Notes:     dto.Notes,
	}, true
}
