package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/sony/gobreaker"

	"github.com/lifelink/bloodlink/donor-community-service/internal/config"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

const (
	outboxChannel        = "outbox_channel"
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute

	singleEventTimeout = 30 * time.Second
	sweepTimeout       = 60 * time.Second
	sweepInterval      = 90 * time.Second
	sweepBatchLimit    = 100

	staleThreshold = 5 * time.Minute
)

// Relay drains the outbox_events table into RabbitMQ. It reacts to
// pg_notify signals from the writing transactions and runs a periodic
// sweep for anything missed while disconnected.
type Relay struct {
	db            *sql.DB
	publisher     ports.NotificationPublisher
	listener      *pq.Listener
	dbURL         string
	dbCB          *gobreaker.CircuitBreaker
	lastProcessed time.Time
	isHealthy     bool
}

func NewRelay(db *sql.DB, dbURL string, publisher ports.NotificationPublisher) *Relay {
	return &Relay{
		db:            db,
		dbURL:         dbURL,
		publisher:     publisher,
		dbCB:          config.NewCircuitBreaker("Relay-PostgreSQL"),
		lastProcessed: time.Now(),
		isHealthy:     true,
	}
}

// IsHealthy is the liveness signal. An open circuit is degraded but
// recoverable and must not kill the pod, so it is not checked here.
func (r *Relay) IsHealthy() bool {
	return r.isHealthy
}

// IsReady reports whether the relay is currently able to drain events.
func (r *Relay) IsReady() bool {
	if r.dbCB.State() == gobreaker.StateOpen {
		return false
	}
	if time.Since(r.lastProcessed) > staleThreshold {
		return false
	}
	return r.isHealthy
}

// Start listens on the outbox channel and blocks until ctx is cancelled.
func (r *Relay) Start(ctx context.Context) error {
	r.listener = pq.NewListener(r.dbURL, listenerMinReconnect, listenerMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("outbox relay: listener error: %v", err)
		}
	})
	defer r.listener.Close()

	if err := r.listener.Listen(outboxChannel); err != nil {
		return err
	}

	log.Printf("outbox relay: listening on %q", outboxChannel)

	// Anything written while the relay was down.
	if err := r.sweep(ctx); err != nil {
		log.Printf("outbox relay: startup sweep failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("outbox relay: shutting down")
			return ctx.Err()

		case n := <-r.listener.Notify:
			if n == nil {
				// Connection dropped; the listener is reconnecting.
				r.isHealthy = false
				continue
			}
			if err := r.processOne(ctx, n.Extra); err != nil {
				log.Printf("outbox relay: event %s failed: %v", n.Extra, err)
				continue
			}
			r.lastProcessed = time.Now()
			r.isHealthy = true

		case <-time.After(sweepInterval):
			go r.listener.Ping()
			if err := r.sweep(ctx); err != nil {
				log.Printf("outbox relay: periodic sweep failed: %v", err)
				continue
			}
			r.lastProcessed = time.Now()
		}
	}
}

// processOne claims and delivers the event named in a notification.
func (r *Relay) processOne(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, singleEventTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		var id, eventType string
		var payload []byte
		err = tx.QueryRowContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE id = $1 AND processed_at IS NULL
			FOR UPDATE SKIP LOCKED`, eventID).Scan(&id, &eventType, &payload)
		if err == sql.ErrNoRows {
			// Already claimed by a sweep or another replica.
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		if err := r.deliver(ctx, tx, id, eventType, payload); err != nil {
			return nil, err
		}
		return nil, tx.Commit()
	})
	return err
}

// sweep claims a batch of undelivered events in creation order. Events
// that fail to publish stay unprocessed for the next pass.
func (r *Relay) sweep(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		rows, err := tx.QueryContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE processed_at IS NULL
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED`, sweepBatchLimit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		type pending struct {
			id        string
			eventType string
			payload   []byte
		}
		var batch []pending
		for rows.Next() {
			var p pending
			if err := rows.Scan(&p.id, &p.eventType, &p.payload); err != nil {
				return nil, err
			}
			batch = append(batch, p)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		for _, p := range batch {
			if err := r.deliver(ctx, tx, p.id, p.eventType, p.payload); err != nil {
				log.Printf("outbox relay: event %s failed: %v", p.id, err)
			}
		}
		return nil, tx.Commit()
	})
	return err
}

// deliver publishes one claimed event and marks it processed. Payloads
// that cannot be decoded are marked processed anyway; retrying bad data
// forever would wedge the queue.
func (r *Relay) deliver(ctx context.Context, tx *sql.Tx, id, eventType string, payload []byte) error {
	if eventType == ports.PushNotificationEventType {
		var evt ports.PushNotificationEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			log.Printf("outbox relay: dropping event %s with invalid payload: %v", id, err)
			return r.markProcessed(ctx, tx, id)
		}
		if err := r.publisher.PublishPushNotification(ctx, evt); err != nil {
			return err
		}
	}
	return r.markProcessed(ctx, tx, id)
}

func (r *Relay) markProcessed(ctx context.Context, tx *sql.Tx, id string) error {
	_, err := tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, id)
	return err
}
