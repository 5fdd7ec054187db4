package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/empmonitor/core/internal/config"
	"github.com/empmonitor/core/internal/database"
	"github.com/empmonitor/core/internal/middleware"
	"github.com/empmonitor/core/internal/pkg/blob"
	pkgredis "github.com/empmonitor/core/internal/pkg/redis"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	redis  *pkgredis.Client
	blobs  blob.Store
	logger *zap.Logger
}

// New initializes the application: config → DB → Redis → blob store → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.Redis.Enable {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Info("redis disabled, rate limiting and idempotence guards are off")
	}

	app, err := build(logger, cfg, db, rc)
	if err != nil {
		_ = database.Close(db)
		if rc != nil {
			_ = rc.Close()
		}
		return nil, err
	}
	return app, nil
}

// build wires an App from already opened connections. rc may be nil.
func build(logger *zap.Logger, cfg *config.AppConfig, db *gorm.DB, rc *pkgredis.Client) (*App, error) {
	blobs, err := blob.New(cfg.Storage, db)
	if err != nil {
		return nil, fmt.Errorf("blob store: %w", err)
	}

	switch {
	case cfg.IsDev():
		gin.SetMode(gin.DebugMode)
	case cfg.IsTest():
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{cfg: cfg, router: router, db: db, redis: rc, blobs: blobs, logger: logger}
	app.registerRoutes()
	return app, nil
}

// corsConfig allows the configured origins, which may carry one "*" wildcard
// (https://*.example.com, http://localhost:*). An empty list allows any
// origin without credentials.
func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Idempotence"},
		ExposeHeaders: []string{"Content-Length", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.AllowedOrigins
	c.AllowWildcard = true
	c.AllowCredentials = true
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases the database and redis connections.
func (a *App) Shutdown() {
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("close database", zap.Error(err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
}
