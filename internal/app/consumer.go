package app

import (
	"context"
	"fmt"

	"go-rrhh/internal/bootstrap"
	"go-rrhh/internal/events"
	"go-rrhh/internal/messaging/kafka/consumer"
	"go-rrhh/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer emails employees when their leave requests are resolved.
func RunConsumer(cfg bootstrap.Config, logger *zap.Logger) error {
	logger = logger.Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required")
	}

	sender := notification.NewSMTPSender(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	notifier := notification.NewEmailNotifier(sender, cfg.SMTPFrom, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.LeaveResolvedTopic,
		GroupID:        cfg.KafkaGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeLeaveResolved(ctx, reader, notifier, logger)
	}()

	sig := bootstrap.WaitForSignal()
	logger.Info("consumer shutting down", zap.String("signal", sig.String()))
	cancel()
	<-done

	return nil
}
