package ports

import (
	"context"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user domain.User, outboxPayload []byte) (*domain.User, error)
	Update(ctx context.Context, user domain.User) error
}

type DonorRepository interface {
	Create(ctx context.Context, donor domain.Donor, outboxPayload []byte) (*domain.Donor, error)
	List(ctx context.Context) ([]domain.Donor, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req domain.BloodRequest, outboxPayload []byte) (*domain.BloodRequest, error)
	List(ctx context.Context) ([]domain.BloodRequest, error)
}

// OutboxRepository writes standalone notification events, outside any
// entity transaction. Entity creation embeds its outbox row in the same
// transaction through the repositories above.
type OutboxRepository interface {
	Insert(ctx context.Context, eventType string, payload []byte) error
}
