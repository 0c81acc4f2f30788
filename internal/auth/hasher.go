package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptySecret is returned when attempting to hash an empty secret.
var ErrEmptySecret = errors.New("secret cannot be empty")

// SecretHasher hashes and verifies team secrets.
type SecretHasher interface {
	// Hash returns a salted one-way hash of secret. Every call uses a fresh salt.
	Hash(secret string) (string, error)

	// Verify reports whether secret matches hashed. A malformed hash is a mismatch.
	Verify(secret, hashed string) bool
}

// BcryptHasher implements SecretHasher with bcrypt. The salt is embedded in
// the encoded hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the given cost factor.
func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

// Hash produces a bcrypt hash of secret.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing secret: %w", err)
	}

	return string(hashBytes), nil
}

// Verify compares secret against a bcrypt hash in constant time.
func (h *BcryptHasher) Verify(secret, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}
