package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/escaperoom/escaperoom-backend/pkg/http/errors"
)

func newTestHandlers(t *testing.T) (*HTTPHandlers, *Service) {
	t.Helper()
	svc := newTestService(t, &memoryUserStore{})
	return NewHTTPHandlers(svc, zerolog.Nop()), svc
}

func doJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httperrors.ErrorResponse {
	t.Helper()
	var body httperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegisterHandler(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := doJSON(h.Register, `{"username":"alice","password":"secret1","email":"a@x.com"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "User registered successfully")

	rec = doJSON(h.Register, `{"username":"bob","password":"secret1","email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httperrors.ErrCodeConflict, decodeError(t, rec).Error)
}

func TestRegisterHandlerValidation(t *testing.T) {
	h, _ := newTestHandlers(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"blank username", `{"username":"  ","password":"pw","email":"a@x.com"}`, "username"},
		{"missing email", `{"username":"alice","password":"pw"}`, "email"},
		{"blank password", `{"username":"alice","password":" ","email":"a@x.com"}`, "password"},
		{"invalid email", `{"username":"alice","password":"pw","email":"not-an-email"}`, "email"},
		{"display name email", `{"username":"alice","password":"pw","email":"Alice <a@x.com>"}`, "email"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(h.Register, tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, tc.field, decodeError(t, rec).Field)
		})
	}
}

func TestRegisterHandlerOverlongUsername(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := doJSON(h.Register, `{"username":"`+strings.Repeat("a", 60)+`","password":"secret1","email":"a@x.com"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, httperrors.ErrCodeValidationFailed, decodeError(t, rec).Error)
}

func TestRegisterHandlerInvalidJSON(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := doJSON(h.Register, `{"username":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httperrors.ErrCodeInvalidRequest, decodeError(t, rec).Error)
}

func TestLoginHandler(t *testing.T) {
	h, _ := newTestHandlers(t)
	require.Equal(t, http.StatusCreated, doJSON(h.Register, `{"username":"alice","password":"secret1","email":"a@x.com"}`).Code)

	rec := doJSON(h.Login, `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Message     string `json:"message"`
		UserID      int64  `json:"user_id"`
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Login successful", out.Message)
	assert.Equal(t, int64(1), out.UserID)
	assert.NotEmpty(t, out.AccessToken)

	wrong := doJSON(h.Login, `{"email":"a@x.com","password":"wrong"}`)
	unknown := doJSON(h.Login, `{"email":"z@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	blank := doJSON(h.Login, `{"email":"","password":"secret1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, blank.Code)
}

func TestGetMeRequiresToken(t *testing.T) {
	h, svc := newTestHandlers(t)
	handler := AuthMiddleware(svc, zerolog.Nop())(RequireAuth(http.HandlerFunc(h.GetMe)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httperrors.ErrCodeInvalidToken, decodeError(t, rec).Error)

	require.Equal(t, http.StatusCreated, doJSON(h.Register, `{"username":"alice","password":"secret1","email":"a@x.com"}`).Code)
	login := doJSON(h.Login, `{"email":"a@x.com","password":"secret1"}`)
	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &out))

	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+out.AccessToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}
