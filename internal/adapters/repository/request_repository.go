package repository

import (
	"context"
	"database/sql"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

type RequestRepository struct {
	db *sql.DB
}

var _ ports.RequestRepository = (*RequestRepository)(nil)

func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts the blood request and its announcement in one
// transaction.
func (r *RequestRepository) Create(ctx context.Context, req domain.BloodRequest, outboxPayload []byte) (*domain.BloodRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO blood_requests (id, patient_name, blood_type, hospital, location, contact_number, urgency, notes, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		req.ID,
		req.PatientName,
		string(req.BloodType),
		req.Hospital,
		req.Location,
		req.ContactNumber,
		string(req.Urgency),
		nullable(req.Notes),
		nullable(req.CreatedBy),
		req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := insertOutboxTx(ctx, tx, ports.PushNotificationEventType, outboxPayload); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) List(ctx context.Context) ([]domain.BloodRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, patient_name, blood_type, hospital, location, contact_number, urgency, notes, created_by, created_at
		 FROM blood_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.BloodRequest
	for rows.Next() {
		var (
			req       domain.BloodRequest
			notes     sql.NullString
			createdBy sql.NullString
		)
		if err := rows.Scan(
			&req.ID,
			&req.PatientName,
			&req.BloodType,
			&req.Hospital,
			&req.Location,
			&req.ContactNumber,
			&req.Urgency,
			&notes,
			&createdBy,
			&req.CreatedAt,
		); err != nil {
			return nil, err
		}
		req.Notes = notes.String
		req.CreatedBy = createdBy.String
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
