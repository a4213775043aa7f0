package main

import (
	"go-rrhh/internal/app"
	"go-rrhh/internal/bootstrap"
	"go-rrhh/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	cfg := bootstrap.LoadConfig()
	logger, err := bootstrap.NewLogger(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()

	if err := app.RunWorker(cfg, logger); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
