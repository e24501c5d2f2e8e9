package repository

import (
	"context"
	"database/sql"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

type DonorRepository struct {
	db *sql.DB
}

var _ ports.DonorRepository = (*DonorRepository)(nil)

func NewDonorRepository(db *sql.DB) *DonorRepository {
	return &DonorRepository{db: db}
}

// Create inserts the donor and the community announcement in one
// transaction.
func (r *DonorRepository) Create(ctx context.Context, donor domain.Donor, outboxPayload []byte) (*domain.Donor, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO donors (id, name, blood_type, location, contact_number, last_donation, total_donations, available_for_emergency, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		donor.ID,
		donor.Name,
		string(donor.BloodType),
		donor.Location,
		donor.ContactNumber,
		donor.LastDonation,
		donor.TotalDonations,
		donor.AvailableForEmergency,
		donor.CreatedAt,
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
	return &donor, nil
}

func (r *DonorRepository) List(ctx context.Context) ([]domain.Donor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, blood_type, location, contact_number, last_donation, total_donations, available_for_emergency, created_at
		 FROM donors ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donors []domain.Donor
	for rows.Next() {
		var (
			donor        domain.Donor
			lastDonation sql.NullTime
		)
		if err := rows.Scan(
			&donor.ID,
			&donor.Name,
			&donor.BloodType,
			&donor.Location,
			&donor.ContactNumber,
			&lastDonation,
			&donor.TotalDonations,
			&donor.AvailableForEmergency,
			&donor.CreatedAt,
		); err != nil {
			return nil, err
		}
		if lastDonation.Valid {
			t := lastDonation.Time
			donor.LastDonation = &t
		}
		donors = append(donors, donor)
	}
	return donors, rows.Err()
}
