package health

import (
	"time"

	"github.com/empmonitor/core/internal/database"
	"github.com/empmonitor/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pingTimeout = 3 * time.Second

type healthResponse struct {
	DBConnected bool   `json:"db_connected"`
	Status      string `json:"status"`
}

// RegisterRoutes mounts GET /health. It always answers 200; db_connected
// reports whether the database responded to a ping.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, log *zap.Logger) {
	rg.GET("/health", func(c *gin.Context) {
		ok := true
		if err := database.Ping(c.Request.Context(), db, pingTimeout); err != nil {
			log.Warn("health check database ping failed", zap.Error(err))
			ok = false
		}
		response.OK(c, healthResponse{DBConnected: ok, Status: "healthy"})
	})
}

