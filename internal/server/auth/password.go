package auth

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing them invalidates every stored digest.
const (
	argonTime    = 2
	argonMemory  = 19 * 1024
	argonThreads = 1
	argonKeyLen  = 32
)

// PasswordHasher derives deterministic password digests from a fixed
// server-side salt.
type PasswordHasher struct {
	salt []byte
}

func NewPasswordHasher(salt string) *PasswordHasher {
	return &PasswordHasher{salt: []byte(salt)}
}

// Digest returns the hex-encoded argon2id digest of password.
func (h *PasswordHasher) Digest(password string) string {
	pw := []byte(password)
	defer wipe(pw)

	return hex.EncodeToString(argon2.IDKey(pw, h.salt, argonTime, argonMemory, argonThreads, argonKeyLen))
}

// Verify reports whether password produces digest. The comparison is
// constant-time.
func (h *PasswordHasher) Verify(password, digest string) bool {
	candidate := h.Digest(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}

// wipe overwrites b with zeros.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
