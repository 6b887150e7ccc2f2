package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("password must not be empty")

// DefaultBcryptCost is used when no cost is configured.
const DefaultBcryptCost = 12

// legacyDigestLen is the length of a hex SHA-256 digest written by the
// previous, unsalted hashing scheme.
const legacyDigestLen = sha256.Size * 2

// HashPassword creates a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	return hashPasswordWithCost(password, DefaultBcryptCost)
}

func hashPasswordWithCost(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// ComparePassword reports whether password matches the stored hash.
// Stored values that look like a hex SHA-256 digest are checked with the
// legacy scheme so accounts created before bcrypt keep working.
func ComparePassword(password, storedHash string) bool {
	if isLegacyDigest(storedHash) {
		digest := legacyDigest(password)
		return subtle.ConstantTimeCompare([]byte(digest), []byte(storedHash)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

func legacyDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func isLegacyDigest(stored string) bool {
	if len(stored) != legacyDigestLen {
		return false
	}
	_, err := hex.DecodeString(stored)
	return err == nil
}
