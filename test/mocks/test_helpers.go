package mocks

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
)

// CreateTestUser builds a user with a bcrypt hash of the given password.
func CreateTestUser(t *testing.T, email, password string, roles ...domain.Role) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}

	return &domain.User{
		ID:           "user-" + email,
		Name:         "Test User",
		Email:        email,
		Roles:        roles,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
}
