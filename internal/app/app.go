package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-rrhh/internal/bootstrap"
	"go-rrhh/internal/middleware"
	"go-rrhh/internal/shared/connection"
	"go-rrhh/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App owns the HTTP router and every connection opened for it.
type App struct {
	Router  *gin.Engine
	closers []func() error
}

type infrastructure struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
	files  storage.FileStore
}

func BuildApp(cfg bootstrap.Config, logger *zap.Logger) (*App, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	a := &App{}
	infra, err := a.connect(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	if err := bootstrap.Migrate(infra.gormDB); err != nil {
		a.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("database schema up to date")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.ContextLogger(logger))

	if err := registerModules(router, cfg, infra, logger); err != nil {
		a.Close()
		return nil, err
	}

	a.Router = router
	return a, nil
}

func (a *App) connect(cfg bootstrap.Config, logger *zap.Logger) (infrastructure, error) {
	var infra infrastructure

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, 5)
	if err != nil {
		return infra, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return infra, err
	}
	a.closers = append(a.closers, sqlDB.Close)
	infra.gormDB, infra.sqlDB = gormDB, sqlDB
	logger.Info("database connection established")

	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			return infra, err
		}
		a.closers = append(a.closers, rdb.Close)
		infra.rdb = rdb
	} else {
		logger.Warn("REDIS_ADDR not set; caches, idempotency and bulk locks are disabled")
	}

	if cfg.GCSBucket != "" {
		files, closeFn, err := storage.NewGCSStore(context.Background(), cfg.GCSBucket, cfg.GCSCredentials)
		if err != nil {
			return infra, fmt.Errorf("gcs store: %w", err)
		}
		a.closers = append(a.closers, closeFn)
		infra.files = files
		logger.Info("file storage on gcs", zap.String("bucket", cfg.GCSBucket))
	} else {
		files, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			return infra, err
		}
		infra.files = files
		logger.Info("file storage on local disk", zap.String("dir", cfg.UploadDir))
	}

	return infra, nil
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			zap.L().Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
