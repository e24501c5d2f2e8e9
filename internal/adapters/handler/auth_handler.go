package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/lifelink/bloodlink/donor-community-service/internal/adapters/middleware"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: auth}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyRequest struct {
	Code string `json:"code"`
}

type RoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Printf("auth handler: login failed: %v", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		http.Error(w, "name, email and password are required", http.StatusBadRequest)
		return
	}

	sess, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			http.Error(w, "email is already registered", http.StatusConflict)
			return
		}
		log.Printf("auth handler: registration failed: %v", err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, sess)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(middleware.SessionIDKey).(string)
	token, _ := r.Context().Value(middleware.TokenKey).(string)

	if err := h.authService.Logout(r.Context(), sessionID, token); err != nil {
		log.Printf("auth handler: logout failed: %v", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Me returns the authenticated user's current profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID, _ := r.Context().Value(middleware.SessionIDKey).(string)
	userID, _ := r.Context().Value(middleware.UserIDKey).(string)

	user, err := h.authService.CurrentUser(r.Context(), sessionID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		log.Printf("auth handler: current user lookup failed: %v", err)
		http.Error(w, "could not load profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(middleware.SessionIDKey).(string)

	var patch ports.ProfilePatch
	if err := decodeStrict(r, &patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), sessionID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		log.Printf("auth handler: profile update failed: %v", err)
		http.Error(w, "profile update failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(middleware.SessionIDKey).(string)

	var req VerifyRequest
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.VerifyAccount(r.Context(), sessionID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotAuthenticated):
			http.Error(w, "not authenticated", http.StatusUnauthorized)
		case errors.Is(err, domain.ErrInvalidCode):
			http.Error(w, "invalid verification code", http.StatusBadRequest)
		default:
			log.Printf("auth handler: verification failed: %v", err)
			http.Error(w, "verification failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) ResendVerificationCode(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(middleware.SessionIDKey).(string)

	if err := h.authService.RequestVerificationCode(r.Context(), sessionID); err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		log.Printf("auth handler: resend verification code failed: %v", err)
		http.Error(w, "could not issue verification code", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Verification code sent"})
}

func (h *AuthHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	h.mutateRole(w, r, h.authService.AssignRole)
}

func (h *AuthHandler) RevokeRole(w http.ResponseWriter, r *http.Request) {
	h.mutateRole(w, r, h.authService.RevokeRole)
}

func (h *AuthHandler) mutateRole(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, email string, role domain.Role) (*domain.User, error),
) {
	var req RoleRequest
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := op(r.Context(), req.Email, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownRole):
			http.Error(w, "unknown role", http.StatusBadRequest)
		case errors.Is(err, domain.ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrLastRole):
			http.Error(w, "cannot remove the last role", http.StatusConflict)
		default:
			log.Printf("auth handler: role change failed: %v", err)
			http.Error(w, "role change failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}
