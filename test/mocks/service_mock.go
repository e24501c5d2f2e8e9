package mocks

import (
	"context"
	"sync"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

// MockAuthService implements ports.AuthService for handler tests.
// Results and errors are injected per method.
type MockAuthService struct {
	mu sync.Mutex

	LoginResult    *ports.AuthSession
	LoginError     error
	RegisterResult *ports.AuthSession
	RegisterError  error
	LogoutError    error
	CurrentResult  *domain.User
	CurrentError   error
	UpdateResult   *domain.User
	UpdateError    error
	VerifyResult   *domain.User
	VerifyError    error
	ResendError    error
	RoleResult     *domain.User
	RoleError      error

	LoginCalls    []string
	RegisterCalls []string
	LogoutCalls   []string
	UpdateCalls   []ports.ProfilePatch
	VerifyCalls   []string
}

var _ ports.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls = append(m.LoginCalls, email)
	return m.LoginResult, m.LoginError
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*ports.AuthSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls = append(m.RegisterCalls, email)
	return m.RegisterResult, m.RegisterError
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogoutCalls = append(m.LogoutCalls, sessionID)
	return m.LogoutError
}

func (m *MockAuthService) CurrentUser(ctx context.Context, sessionID, userID string) (*domain.User, error) {
	return m.CurrentResult, m.CurrentError
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, sessionID string, patch ports.ProfilePatch) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, patch)
	return m.UpdateResult, m.UpdateError
}

func (m *MockAuthService) VerifyAccount(ctx context.Context, sessionID, code string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VerifyCalls = append(m.VerifyCalls, code)
	return m.VerifyResult, m.VerifyError
}

func (m *MockAuthService) RequestVerificationCode(ctx context.Context, sessionID string) error {
	return m.ResendError
}

func (m *MockAuthService) AssignRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	return m.RoleResult, m.RoleError
}

func (m *MockAuthService) RevokeRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	return m.RoleResult, m.RoleError
}
