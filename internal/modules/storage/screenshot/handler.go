package screenshot

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/empmonitor/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartSlack covers boundaries and the user_email field on top of the file limit.
const (
	multipartSlack  = 64 << 10
	multipartMemory = 32 << 20
)

type Handler struct {
	svc      *Service
	log      *zap.Logger
	maxBytes int64
}

func NewHandler(svc *Service, log *zap.Logger, maxBytes int64) *Handler {
	return &Handler{svc: svc, log: log, maxBytes: maxBytes}
}

// RegisterRoutes mounts upload and fetch. guard runs before the upload handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	rg.POST("/upload-screenshot", append(guard, h.upload)...)
	rg.GET("/screenshot/:id", h.get)
}

func (h *Handler) upload(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartSlack)
	}
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(c, "screenshot exceeds the upload size limit")
			return
		}
		response.UnprocessableEntity(c, "screenshot file and user_email are required")
		return
	}

	email := strings.TrimSpace(c.PostForm(formEmailField))
	fileHeader, err := c.FormFile(formFileField)
	if err != nil || email == "" {
		response.UnprocessableEntity(c, "screenshot file and user_email are required")
		return
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		response.PayloadTooLarge(c, "screenshot exceeds the upload size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error("open uploaded screenshot failed", zap.Error(err))
		response.InternalError(c, "Screenshot upload failed")
		return
	}
	defer file.Close()
	payload, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("read uploaded screenshot failed", zap.Error(err))
		response.InternalError(c, "Screenshot upload failed")
		return
	}
	if len(payload) == 0 {
		response.UnprocessableEntity(c, "screenshot file is empty")
		return
	}

	id, err := h.svc.Save(c.Request.Context(), email, payload)
	if err != nil {
		h.log.Error("screenshot upload failed", zap.String("email", email), zap.Error(err))
		response.InternalError(c, "Screenshot upload failed")
		return
	}

	h.log.Info("screenshot saved", zap.Uint("screenshot_id", id), zap.String("email", email), zap.Int("bytes", len(payload)))
	response.OK(c, uploadResponse{Status: "saved", ScreenshotID: id})
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.UnprocessableEntity(c, "screenshot id must be an integer")
		return
	}

	data, err := h.svc.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Screenshot not found")
			return
		}
		h.log.Error("fetch screenshot failed", zap.Uint64("screenshot_id", id), zap.Error(err))
		response.InternalError(c, "Failed to load screenshot")
		return
	}
	c.Data(http.StatusOK, imageMediaType, data)
}
