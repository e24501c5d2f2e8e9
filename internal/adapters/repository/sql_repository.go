package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// insertOutboxTx writes a notification event inside the caller's
// transaction and notifies the relay with the event ID. The event only
// becomes visible when the surrounding transaction commits, so an entity
// row and its announcement are atomic.
func insertOutboxTx(ctx context.Context, tx *sql.Tx, eventType string, payload []byte) error {
	eventID := uuid.NewString()

	_, err := tx.ExecContext(ctx,
		"INSERT INTO outbox_events (id, event_type, payload, created_at) VALUES ($1, $2, $3, $4)",
		eventID,
		eventType,
		payload,
		time.Now(),
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, "SELECT pg_notify('outbox_channel', $1)", eventID)
	return err
}
