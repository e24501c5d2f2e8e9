package ports

import (
	"context"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
)

// AuthSession is the result of a successful login or registration: the
// authenticated user, the session identifier, and the signed token the
// client presents on subsequent calls.
type AuthSession struct {
	User      domain.User `json:"user"`
	SessionID string      `json:"session_id"`
	Token     string      `json:"token"`
}

// ProfilePatch carries the fields a profile update may change. Nil means
// "leave as is". Roles are deliberately absent; they move only through
// AssignRole and RevokeRole.
type ProfilePatch struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthSession, error)
	Register(ctx context.Context, name, email, password string) (*AuthSession, error)
	Logout(ctx context.Context, sessionID, token string) error
	CurrentUser(ctx context.Context, sessionID, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, sessionID string, patch ProfilePatch) (*domain.User, error)
	VerifyAccount(ctx context.Context, sessionID, code string) (*domain.User, error)
	RequestVerificationCode(ctx context.Context, sessionID string) error
	AssignRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
	RevokeRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
}

type DonorService interface {
	RegisterDonor(ctx context.Context, donor domain.Donor) (*domain.Donor, error)
	ListDonors(ctx context.Context) ([]domain.Donor, error)
}

type RequestService interface {
	CreateRequest(ctx context.Context, req domain.BloodRequest) (*domain.BloodRequest, error)
	ListRequests(ctx context.Context) ([]domain.BloodRequest, error)
}

type NotificationService interface {
	SendPush(ctx context.Context, title, message string, target domain.TargetType, targetData map[string]string) error
	NotifyDonationResponse(ctx context.Context, donorName, patientName string) error
	NotifyNewRequest(ctx context.Context, req domain.BloodRequest) error
	NotifyEventAnnouncement(ctx context.Context, eventName, date, location string) error
	NotifyAchievement(ctx context.Context, userName, achievement string) error
}
