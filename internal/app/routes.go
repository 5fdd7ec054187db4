package app

import (
	"time"

	"github.com/empmonitor/core/internal/middleware"
	"github.com/empmonitor/core/internal/modules/auth/auth"
	"github.com/empmonitor/core/internal/modules/auth/user"
	"github.com/empmonitor/core/internal/modules/stats/aggregate"
	"github.com/empmonitor/core/internal/modules/storage/screenshot"
	"github.com/empmonitor/core/internal/modules/system/core/health"
	"github.com/empmonitor/core/internal/modules/tracking/manuallog"
	"github.com/empmonitor/core/internal/modules/tracking/session"
	"github.com/empmonitor/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	log := a.logger

	// Guards are disabled when redis is off; keep the interfaces untyped nil.
	var counter middleware.Counter
	var idem middleware.IdempotenceStore
	if a.redis != nil {
		counter = a.redis
		idem = a.redis
	}
	loginLimit := middleware.RateLimit(counter, "login", a.cfg.RateLimit.LoginPerMinute, time.Minute)
	uploadLimit := middleware.RateLimit(counter, "upload", a.cfg.RateLimit.UploadPerMinute, time.Minute)
	idempotence := middleware.Idempotence(idem)

	userSvc := user.NewService(db)
	authSvc := auth.NewService(userSvc, log.Named("auth"))
	sessionSvc := session.NewService(db)
	manualSvc := manuallog.NewService(db)
	shotSvc := screenshot.NewService(db, a.blobs, log.Named("screenshot"))
	aggSvc := aggregate.NewService(sessionSvc, manualSvc, shotSvc, aggregate.IsMissing(screenshot.ErrNotFound))

	root := &r.RouterGroup
	root.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{"message": "Employee Monitor API Running"})
	})
	health.RegisterRoutes(root, db, log.Named("health"))
	auth.NewHandler(authSvc, log.Named("auth")).RegisterRoutes(root, loginLimit)
	session.NewHandler(sessionSvc, log.Named("session")).RegisterRoutes(root, idempotence)
	screenshot.NewHandler(shotSvc, log.Named("screenshot"), a.cfg.UploadMaxBytes()).
		RegisterRoutes(root, uploadLimit, idempotence)

	api := r.Group("/api")
	aggregate.NewHandler(aggSvc, log.Named("aggregate")).RegisterRoutes(api)
	manuallog.NewHandler(manualSvc, log.Named("manuallog")).RegisterRoutes(api)
	user.NewHandler(userSvc).RegisterRoutes(api)
}
