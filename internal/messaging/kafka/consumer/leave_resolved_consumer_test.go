package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-rrhh/internal/events"
	"go-rrhh/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeReader hands out queued messages, then cancels the consumer.
type fakeReader struct {
	queue     []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.queue) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

type fakeNotifier struct {
	err      error
	received []events.LeaveResolvedEvent
}

func (n *fakeNotifier) NotifyLeaveResolved(_ context.Context, event events.LeaveResolvedEvent) error {
	n.received = append(n.received, event)
	return n.err
}

func encode(t *testing.T, event events.LeaveResolvedEvent) []byte {
	t.Helper()
	body, err := json.Marshal(event)
	assert.NoError(t, err)
	return body
}

func TestConsumeLeaveResolved(t *testing.T) {
	t.Run("success commits after notifying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{
			{Value: encode(t, events.LeaveResolvedEvent{LeaveID: "l1", Outcome: "APPROVED"})},
		}}
		notifier := &fakeNotifier{}

		consumer.ConsumeLeaveResolved(ctx, reader, notifier, zap.NewNop())

		assert.Len(t, notifier.received, 1)
		assert.Equal(t, "l1", notifier.received[0].LeaveID)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("negative malformed payload is committed and skipped", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{{Value: []byte("not-json")}}}
		notifier := &fakeNotifier{}

		consumer.ConsumeLeaveResolved(ctx, reader, notifier, zap.NewNop())

		assert.Empty(t, notifier.received)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("negative notifier failure leaves message uncommitted", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{
			{Value: encode(t, events.LeaveResolvedEvent{LeaveID: "l2"})},
		}}
		notifier := &fakeNotifier{err: errors.New("smtp down")}

		consumer.ConsumeLeaveResolved(ctx, reader, notifier, zap.NewNop())

		assert.Len(t, notifier.received, 1)
		assert.Empty(t, reader.committed)
	})
}
