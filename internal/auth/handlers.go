package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"github.com/escaperoom/escaperoom-backend/internal/db/repository"
	"github.com/escaperoom/escaperoom-backend/internal/logging"
	httperrors "github.com/escaperoom/escaperoom-backend/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for authentication.
type HTTPHandlers struct {
	authSvc *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for auth endpoints.
func NewHTTPHandlers(authSvc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		authSvc: authSvc,
		logger:  logger.With().Str("component", "auth_http").Logger(),
	}
}

// Register handles POST /register
func (h *HTTPHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	if field := firstBlank(map[string]string{
		"username": req.Username,
		"email":    req.Email,
		"password": req.Password,
	}, "username", "email", "password"); field != "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "All fields must be filled and non-empty.", field)
		return
	}
	if !validEmail(req.Email) {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "Email address is not valid.", "email")
		return
	}

	if _, err := h.authSvc.Register(r.Context(), req); err != nil {
		if errors.Is(err, ErrUserExists) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeConflict, "Username or email already exists.")
			return
		}
		if errors.Is(err, repository.ErrTooLong) {
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "A field exceeds its maximum length.", "")
			return
		}
		logger := logging.FromContextOr(r.Context(), h.logger)
		logger.Error().Err(err).Msg("registration failed")
		httperrors.RespondInternalError(w, "Registration failed")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
	})
}

// Login handles POST /login
func (h *HTTPHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	if field := firstBlank(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}, "email", "password"); field != "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "All fields must be filled and non-empty.", field)
		return
	}

	user, tokens, err := h.authSvc.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized, "Invalid credentials")
			return
		}
		logger := logging.FromContextOr(r.Context(), h.logger)
		logger.Error().Err(err).Msg("login failed")
		httperrors.RespondInternalError(w, "Login failed")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Login successful",
		"user_id":      user.ID,
		"access_token": tokens.AccessToken,
		"token_type":   "Bearer",
		"expires_in":   tokens.ExpiresIn,
	})
}

// GetMe handles GET /users/me (requires auth middleware)
func (h *HTTPHandlers) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized, "Invalid or missing token")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"email":    claims.Email,
	})
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("encode response")
	}
}

// firstBlank returns the first field, in order, whose value is empty after trimming.
func firstBlank(values map[string]string, order ...string) string {
	for _, field := range order {
		if strings.TrimSpace(values[field]) == "" {
			return field
		}
	}
	return ""
}

// validEmail accepts a bare address only, rejecting display-name forms.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}
