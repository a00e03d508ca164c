package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 16
	keySize    = 32
	iterations = 10000
)

// HashPassword derives a PBKDF2-HMAC-SHA256 key from password under a fresh
// random salt and returns base64(salt || key).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)

	buf := make([]byte, 0, saltSize+keySize)
	buf = append(buf, salt...)
	buf = append(buf, key...)
	return base64.StdEncoding.EncodeToString(buf), nil
}

// VerifyPassword reports whether password matches a value produced by
// HashPassword or a legacy bcrypt hash. Anything else is a mismatch.
func VerifyPassword(password, stored string) bool {
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil || len(raw) != saltSize+keySize {
		return false
	}
	salt, want := raw[:saltSize], raw[saltSize:]
	got := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// NeedsRehash reports whether stored is in a legacy format that should be
// replaced with HashPassword output after the next successful login.
func NeedsRehash(stored string) bool {
	return isBcrypt(stored)
}

func isBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}
