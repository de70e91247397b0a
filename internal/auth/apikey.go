package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const apiKeyBytes = 32

const bcryptCost = 12

// ErrInvalidKey is returned when an API key matches none of the provisioned
// key hashes.
var ErrInvalidKey = errors.New("invalid API key")

// GenerateAPIKey generates a cryptographically secure API key.
// The key is 32 random bytes, hex-encoded to 64 characters.
func GenerateAPIKey() (string, error) {
	b := make([]byte, apiKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate API key: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashAPIKey hashes a plaintext API key using bcrypt with cost factor 12.
// Only the hash is stored in configuration.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash API key: %w", err)
	}
	return string(hash), nil
}

// Keyring verifies presented API keys against a set of bcrypt hashes loaded
// from configuration. The hash set is fixed at construction.
type Keyring struct {
	hashes []string
}

// NewKeyring creates a Keyring from bcrypt hashes of provisioned keys.
func NewKeyring(hashes []string) *Keyring {
	return &Keyring{hashes: hashes}
}

// Verify checks a plaintext API key against every provisioned hash.
// Returns nil if any hash matches, ErrInvalidKey otherwise.
func (k *Keyring) Verify(key string) error {
	for _, hash := range k.hashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil {
			return nil
		}
	}
	return ErrInvalidKey
}
