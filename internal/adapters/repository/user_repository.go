package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx,
		"SELECT id, name, email, avatar_url, verified, roles, password_hash, created_at FROM users WHERE email = $1",
		email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx,
		"SELECT id, name, email, avatar_url, verified, roles, password_hash, created_at FROM users WHERE id = $1",
		id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		user   domain.User
		avatar sql.NullString
		roles  []string
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&avatar,
		&user.Verified,
		pq.Array(&roles),
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user.AvatarURL = avatar.String
	user.Roles = make([]domain.Role, len(roles))
	for i, role := range roles {
		user.Roles[i] = domain.Role(role)
	}
	return &user, nil
}

// Create inserts the user and their welcome notification in one
// transaction.
func (r *UserRepository) Create(ctx context.Context, user domain.User, outboxPayload []byte) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO users (id, name, email, avatar_url, verified, roles, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		user.ID,
		user.Name,
		user.Email,
		nullable(user.AvatarURL),
		user.Verified,
		pq.Array(user.RoleStrings()),
		user.PasswordHash,
		user.CreatedAt,
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
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET name = $2, avatar_url = $3, verified = $4, roles = $5 WHERE id = $1",
		user.ID,
		user.Name,
		nullable(user.AvatarURL),
		user.Verified,
		pq.Array(user.RoleStrings()),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
