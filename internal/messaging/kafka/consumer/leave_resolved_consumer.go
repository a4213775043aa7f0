package consumer

import (
	"context"
	"encoding/json"

	"go-rrhh/internal/events"
	"go-rrhh/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLeaveResolved emails the employee for every resolved leave request.
// Undecodable messages are committed and skipped; delivery failures are left
// uncommitted so the group redelivers them after a restart.
func ConsumeLeaveResolved(
	ctx context.Context,
	reader MessageReader,
	notifier notification.Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_resolved")
	log.Info("leave resolved consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave resolved consumer stopped")
				return
			}
			log.Error("fetch leave resolved message failed", zap.Error(err))
			continue
		}

		handleLeaveResolved(ctx, reader, notifier, log, msg)
	}
}

func handleLeaveResolved(
	ctx context.Context,
	reader MessageReader,
	notifier notification.Notifier,
	log *zap.Logger,
	msg kafkago.Message,
) {
	var event events.LeaveResolvedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave resolved event failed", zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	if err := notifier.NotifyLeaveResolved(ctx, event); err != nil {
		log.Error("notify leave resolved failed",
			zap.String("leave_id", event.LeaveID),
			zap.String("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit leave resolved message failed", zap.Error(err))
		return
	}

	log.Info("leave resolved notification delivered",
		zap.String("leave_id", event.LeaveID),
		zap.String("outcome", event.Outcome),
	)
}
