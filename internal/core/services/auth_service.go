package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

const (
	tokenLifetime       = 24 * time.Hour
	verifyCodeLifetime  = 15 * time.Minute
	verifyKeyPrefix     = "verify:"
	blacklistKeyPrefix  = "blacklist:"
	welcomeNotification = "Welcome to the donor community, %s!"
)

// AuthService owns the session state machine: Anonymous -> Authenticated
// on login/register, back to Anonymous on logout, and Authenticated ->
// Authenticated(verified) through the verification-code flow.
type AuthService struct {
	userRepo   ports.UserRepository
	sessions   ports.SessionStore
	redis      ports.RedisClient
	notifier   ports.NotificationService
	privateKey *rsa.PrivateKey
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	userRepo ports.UserRepository,
	sessions ports.SessionStore,
	redisClient ports.RedisClient,
	notifier ports.NotificationService,
	privateKey *rsa.PrivateKey,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		sessions:   sessions,
		redis:      redisClient,
		notifier:   notifier,
		privateKey: privateKey,
	}
}

// Login checks the credentials against the stored record. Only an exact
// match opens a session; any mismatch resolves to ErrInvalidCredentials
// with no state change.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	sess, err := s.openSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.notifyOutcome(ctx, user, "Login successful", fmt.Sprintf("Welcome back, %s!", user.Name))
	return sess, nil
}

// Register creates a new account. Email uniqueness is enforced: a second
// registration with the same email fails with ErrEmailTaken and writes
// nothing. New users start unverified with the single role "user".
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*ports.AuthSession, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Verified:     false,
		Roles:        []domain.Role{domain.RoleUser},
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	outboxPayload, err := json.Marshal(ports.PushNotificationEvent{
		Title:      "Account created",
		Message:    fmt.Sprintf(welcomeNotification, user.Name),
		TargetType: domain.TargetSpecificUsers,
		TargetData: map[string]string{"user_id": user.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user, outboxPayload)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if err := s.issueVerificationCode(ctx, created.ID); err != nil {
		// The account exists; the code can be re-requested later.
		log.Printf("auth service: failed to issue verification code for %s: %v", created.ID, err)
	}

	sess, err := s.openSession(ctx, created)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return sess, nil
}

// Logout is an unconditional transition to Anonymous: the token is
// blacklisted for its remaining lifetime and the session record cleared.
// Logging out an already-clear session still succeeds.
func (s *AuthService) Logout(ctx context.Context, sessionID, token string) error {
	user, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if token != "" {
		if err := s.blacklistToken(ctx, token); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}

	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if user != nil {
		s.notifyOutcome(ctx, user, "Logged out", "You have been logged out. See you soon!")
	}
	return nil
}

// CurrentUser returns the session's user. A valid token whose session
// record has expired or been lost is rehydrated from the database and
// re-persisted, so a Redis flush does not log everyone out mid-token.
func (s *AuthService) CurrentUser(ctx context.Context, sessionID, userID string) (*domain.User, error) {
	user, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user, err = s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	if err := s.sessions.Persist(ctx, sessionID, user); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// UpdateProfile merges the typed patch into the current user under the
// session lock and persists both the database row and the session
// snapshot. Anonymous sessions fail with ErrNotAuthenticated. Roles are
// not patchable here.
func (s *AuthService) UpdateProfile(ctx context.Context, sessionID string, patch ports.ProfilePatch) (*domain.User, error) {
	user, err := s.sessions.Update(ctx, sessionID, func(u *domain.User) error {
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.AvatarURL != nil {
			u.AvatarURL = *patch.AvatarURL
		}
		return s.userRepo.Update(ctx, *u)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.notifyOutcome(ctx, user, "Profile updated", "Your profile changes have been saved.")
	return user, nil
}

// VerifyAccount consumes the stored single-use code and marks the user
// verified. Verifying an already-verified account is an idempotent
// success. A wrong or expired code fails with ErrInvalidCode and changes
// nothing.
func (s *AuthService) VerifyAccount(ctx context.Context, sessionID, code string) (*domain.User, error) {
	user, err := s.sessions.Update(ctx, sessionID, func(u *domain.User) error {
		if u.Verified {
			return nil
		}

		stored, err := s.redis.Get(ctx, verifyKeyPrefix+u.ID).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return domain.ErrInvalidCode
			}
			return fmt.Errorf("read verification code: %w", err)
		}
		if stored != code {
			return domain.ErrInvalidCode
		}
		if err := s.redis.Del(ctx, verifyKeyPrefix+u.ID).Err(); err != nil {
			return fmt.Errorf("consume verification code: %w", err)
		}

		u.Verified = true
		return s.userRepo.Update(ctx, *u)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) || errors.Is(err, domain.ErrInvalidCode) {
			return nil, err
		}
		return nil, fmt.Errorf("verify account: %w", err)
	}

	s.notifyOutcome(ctx, user, "Account verified", "Your account has been verified. Thank you!")
	return user, nil
}

// RequestVerificationCode regenerates the expiring single-use code for
// the current user.
func (s *AuthService) RequestVerificationCode(ctx context.Context, sessionID string) error {
	user, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("request verification code: %w", err)
	}
	if user == nil {
		return domain.ErrNotAuthenticated
	}
	if err := s.issueVerificationCode(ctx, user.ID); err != nil {
		return fmt.Errorf("request verification code: %w", err)
	}
	return nil
}

// AssignRole grants a role to the user identified by email. Admin-only
// at the HTTP layer.
func (s *AuthService) AssignRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrUnknownRole
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("assign role: %w", err)
	}

	user.AddRole(role)
	if err := s.userRepo.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("assign role: %w", err)
	}

	s.notifyOutcome(ctx, user, "Role granted", fmt.Sprintf("You are now a %s on the platform.", role))
	return user, nil
}

// RevokeRole removes a role. The role set is never emptied; removing the
// last role fails with ErrLastRole.
func (s *AuthService) RevokeRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrUnknownRole
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("revoke role: %w", err)
	}

	if !user.RemoveRole(role) {
		return nil, domain.ErrLastRole
	}
	if err := s.userRepo.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("revoke role: %w", err)
	}

	s.notifyOutcome(ctx, user, "Role revoked", fmt.Sprintf("Your %s role has been removed.", role))
	return user, nil
}

// openSession persists the session snapshot and signs the token. The
// snapshot never includes the password hash (it is excluded from JSON).
func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*ports.AuthSession, error) {
	sessionID := uuid.NewString()

	if err := s.sessions.Persist(ctx, sessionID, user); err != nil {
		return nil, err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"sid":   sessionID,
		"roles": user.RoleStrings(),
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &ports.AuthSession{
		User:      *user,
		SessionID: sessionID,
		Token:     token,
	}, nil
}

// issueVerificationCode stores a fresh six-digit single-use code with a
// short TTL and hands it to the push pipeline for delivery. The code
// itself never reaches the logs.
func (s *AuthService) issueVerificationCode(ctx context.Context, userID string) error {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return err
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	if err := s.redis.Set(ctx, verifyKeyPrefix+userID, code, verifyCodeLifetime).Err(); err != nil {
		return err
	}

	message := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(verifyCodeLifetime.Minutes()))
	err = s.notifier.SendPush(ctx, "Verification code", message, domain.TargetSpecificUsers, map[string]string{"user_id": userID})
	if err != nil {
		return fmt.Errorf("dispatch verification code: %w", err)
	}

	log.Printf("auth service: verification code issued for user %s", userID)
	return nil
}

// blacklistToken records the token hash until the token would have
// expired anyway. Unparseable tokens get the full lifetime.
func (s *AuthService) blacklistToken(ctx context.Context, token string) error {
	ttl := tokenLifetime
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err == nil {
		if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
			if remaining := time.Until(exp.Time); remaining > 0 {
				ttl = remaining
			}
		}
	}

	return s.redis.Set(ctx, TokenBlacklistKey(token), "1", ttl).Err()
}

// TokenBlacklistKey is the Redis key a revoked token is recorded under.
// The auth middleware checks the same key on every request.
func TokenBlacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistKeyPrefix + hex.EncodeToString(sum[:])
}

// notifyOutcome emits the user-facing notification every mutating
// operation ends with. Dispatch failures are logged, never propagated;
// the operation itself already succeeded.
func (s *AuthService) notifyOutcome(ctx context.Context, user *domain.User, title, message string) {
	err := s.notifier.SendPush(ctx, title, message, domain.TargetSpecificUsers, map[string]string{"user_id": user.ID})
	if err != nil {
		log.Printf("auth service: notification %q for user %s failed: %v", title, user.ID, err)
	}
}
