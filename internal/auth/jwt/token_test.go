package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	mgr := NewManager(TokenConfig{Secret: []byte("secret"), Issuer: "test"})

	token, err := mgr.GenerateAccessToken(User{ID: 7, Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	claims, err := mgr.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "7", claims.Subject)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	issuer := NewManager(TokenConfig{Secret: []byte("one"), Issuer: "test"})
	verifier := NewManager(TokenConfig{Secret: []byte("two"), Issuer: "test"})

	token, err := issuer.GenerateAccessToken(User{ID: 1})
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpired(t *testing.T) {
	mgr := NewManager(TokenConfig{Secret: []byte("secret"), AccessTTL: time.Minute})
	issued := time.Now().Add(-time.Hour)
	mgr.now = func() time.Time { return issued }

	token, err := mgr.GenerateAccessToken(User{ID: 1})
	require.NoError(t, err)

	mgr.now = time.Now
	_, err = mgr.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateGarbage(t *testing.T) {
	mgr := NewManager(TokenConfig{Secret: []byte("secret")})
	_, err := mgr.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
