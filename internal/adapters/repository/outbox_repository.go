package repository

import (
	"context"
	"database/sql"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

// OutboxRepository writes standalone notification events (ones not tied
// to an entity insert).
type OutboxRepository struct {
	db *sql.DB
}

var _ ports.OutboxRepository = (*OutboxRepository)(nil)

func NewOutboxRepository(db *sql.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Insert(ctx context.Context, eventType string, payload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertOutboxTx(ctx, tx, eventType, payload); err != nil {
		return err
	}
	return tx.Commit()
}
