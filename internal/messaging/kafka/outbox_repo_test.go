package kafka_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-rrhh/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		event, err := kafka.NewOutboxEvent("rid", "leave_request", "agg-1", "leave.submitted", "hr.leave.submitted.v1", map[string]string{"k": "v"})
		assert.NoError(t, err)
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, kafka.OutboxStatusPending, event.Status)
		assert.JSONEq(t, `{"k":"v"}`, string(event.Payload))
	})

	t.Run("negative missing topic", func(t *testing.T) {
		_, err := kafka.NewOutboxEvent("rid", "leave_request", "agg-1", "leave.submitted", "", map[string]string{})
		assert.Error(t, err)
	})

	t.Run("negative unencodable payload", func(t *testing.T) {
		_, err := kafka.NewOutboxEvent("rid", "leave_request", "agg-1", "leave.submitted", "t", make(chan int))
		assert.Error(t, err)
	})
}

func TestOutboxRepository(t *testing.T) {
	t.Run("create runs inside the bound transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs("e1", "rid", "leave_request", "agg-1", "leave.submitted", "topic", []byte(`{}`), kafka.OutboxStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := kafka.NewOutboxRepository(db).WithTx(tx)
		err = repo.Create(context.Background(), kafka.OutboxEvent{
			ID: "e1", RequestID: "rid", AggregateType: "leave_request", AggregateID: "agg-1",
			EventType: "leave.submitted", Topic: "topic", Payload: []byte(`{}`), Status: kafka.OutboxStatusPending,
		})
		assert.NoError(t, err)
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative create rejects invalid event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		err = kafka.NewOutboxRepository(db).Create(context.Background(), kafka.OutboxEvent{ID: "e1"})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list pending scans rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
			AddRow("e1", "rid", "leave_request", "agg-1", "leave.resolved", "topic", []byte(`{}`), kafka.OutboxStatusFailed, 2, time.Now())
		mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
			WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
			WillReturnRows(rows)

		events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 0)
		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, 2, events[0].RetryCount)
		assert.Equal(t, "rid", events[0].RequestID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mark failed records reason", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
			WithArgs("e1", kafka.OutboxStatusFailed, "boom", 10).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "e1", "boom"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
