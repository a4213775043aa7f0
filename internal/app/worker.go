package app

import (
	"context"
	"fmt"

	"go-rrhh/internal/bootstrap"
	"go-rrhh/internal/messaging/kafka"
	"go-rrhh/internal/messaging/kafka/producer"
	"go-rrhh/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to kafka until the process is signalled.
func RunWorker(cfg bootstrap.Config, logger *zap.Logger) error {
	logger = logger.Named("app.worker")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, 5)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.OutboxPoll)
	}()

	sig := bootstrap.WaitForSignal()
	logger.Info("worker shutting down", zap.String("signal", sig.String()))
	cancel()
	<-done

	return nil
}
