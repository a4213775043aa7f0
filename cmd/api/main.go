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

	application, err := app.BuildApp(cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		application.Router,
		cfg.Server,
		bootstrap.NewStdoutAuditLogger(logger),
		application.Close,
	)
}
