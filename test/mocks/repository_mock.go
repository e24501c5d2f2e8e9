// Package mocks provides mock implementations of port interfaces for testing.
// In hexagonal architecture, ports define the contracts between the core domain
// and external adapters. Mocks implement these interfaces to enable isolated testing.
package mocks

import (
	"context"
	"sync"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

// MockUserRepository implements ports.UserRepository with in-memory
// storage, call tracking and error injection.
type MockUserRepository struct {
	mu sync.RWMutex

	usersByEmail map[string]*domain.User
	usersByID    map[string]*domain.User

	FindByEmailCalls []string
	FindByIDCalls    []string
	CreateCalls      []domain.User
	UpdateCalls      []domain.User

	FindByEmailError error
	FindByIDError    error
	CreateError      error
	UpdateError      error
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		usersByEmail: make(map[string]*domain.User),
		usersByID:    make(map[string]*domain.User),
	}
}

// SeedUser adds a user to the mock repository for test setup.
func (m *MockUserRepository) SeedUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindByEmailCalls = append(m.FindByEmailCalls, email)

	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}

	user, ok := m.usersByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindByIDCalls = append(m.FindByIDCalls, id)

	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	user, ok := m.usersByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User, outboxPayload []byte) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, user)

	if m.CreateError != nil {
		return nil, m.CreateError
	}

	m.usersByEmail[user.Email] = &user
	m.usersByID[user.ID] = &user
	return &user, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, user)

	if m.UpdateError != nil {
		return m.UpdateError
	}

	if _, ok := m.usersByID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	m.usersByEmail[user.Email] = &user
	m.usersByID[user.ID] = &user
	return nil
}

// UserCount returns the number of distinct stored users.
func (m *MockUserRepository) UserCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.usersByID)
}

// Reset clears all stored data and call tracking.
func (m *MockUserRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.usersByEmail = make(map[string]*domain.User)
	m.usersByID = make(map[string]*domain.User)
	m.FindByEmailCalls = nil
	m.FindByIDCalls = nil
	m.CreateCalls = nil
	m.UpdateCalls = nil
	m.FindByEmailError = nil
	m.FindByIDError = nil
	m.CreateError = nil
	m.UpdateError = nil
}

// MockDonorRepository implements ports.DonorRepository.
type MockDonorRepository struct {
	mu sync.RWMutex

	donors []domain.Donor

	CreateCalls []domain.Donor
	ListCalls   int

	CreateError error
	ListError   error
}

var _ ports.DonorRepository = (*MockDonorRepository)(nil)

func NewMockDonorRepository() *MockDonorRepository {
	return &MockDonorRepository{}
}

func (m *MockDonorRepository) Create(ctx context.Context, donor domain.Donor, outboxPayload []byte) (*domain.Donor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, donor)

	if m.CreateError != nil {
		return nil, m.CreateError
	}

	m.donors = append(m.donors, donor)
	return &donor, nil
}

func (m *MockDonorRepository) List(ctx context.Context) ([]domain.Donor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++

	if m.ListError != nil {
		return nil, m.ListError
	}

	out := make([]domain.Donor, len(m.donors))
	copy(out, m.donors)
	return out, nil
}

// MockRequestRepository implements ports.RequestRepository.
type MockRequestRepository struct {
	mu sync.RWMutex

	requests []domain.BloodRequest

	CreateCalls []domain.BloodRequest
	ListCalls   int

	CreateError error
	ListError   error
}

var _ ports.RequestRepository = (*MockRequestRepository)(nil)

func NewMockRequestRepository() *MockRequestRepository {
	return &MockRequestRepository{}
}

func (m *MockRequestRepository) Create(ctx context.Context, req domain.BloodRequest, outboxPayload []byte) (*domain.BloodRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, req)

	if m.CreateError != nil {
		return nil, m.CreateError
	}

	m.requests = append(m.requests, req)
	return &req, nil
}

func (m *MockRequestRepository) List(ctx context.Context) ([]domain.BloodRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++

	if m.ListError != nil {
		return nil, m.ListError
	}

	out := make([]domain.BloodRequest, len(m.requests))
	copy(out, m.requests)
	return out, nil
}

// OutboxInsert is one recorded outbox write.
type OutboxInsert struct {
	EventType string
	Payload   []byte
}

// MockOutboxRepository implements ports.OutboxRepository.
type MockOutboxRepository struct {
	mu sync.RWMutex

	Inserts     []OutboxInsert
	InsertError error
}

var _ ports.OutboxRepository = (*MockOutboxRepository)(nil)

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Insert(ctx context.Context, eventType string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertError != nil {
		return m.InsertError
	}

	m.Inserts = append(m.Inserts, OutboxInsert{EventType: eventType, Payload: payload})
	return nil
}

// InsertCount returns the number of recorded outbox writes.
func (m *MockOutboxRepository) InsertCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Inserts)
}
