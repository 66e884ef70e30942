// Package password implements the salted, iterated hashing scheme used
// for stored broker credentials: PBKDF2 with HMAC-SHA512, a 16-byte
// random salt, and a per-record iteration count.
package password

import (
	"crypto"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	// Register SHA-512 with the crypto package registry.
	_ "crypto/sha512"
)

const (
	// SaltSize is the fixed salt length in bytes. Every stored record
	// carries exactly this much salt.
	SaltSize = 16

	// HashSize is the canonical derived hash length in bytes, matching
	// the SHA-512 digest size.
	HashSize = 64

	// DefaultIterations is the work factor applied when a new password
	// is set. The value in effect at set time is stored on the record,
	// so raising this default never invalidates existing hashes.
	DefaultIterations = 210000
)

var (
	// ErrInvalidIterations is returned when a stored iteration count is
	// below 1. Such a record is corrupt and must never verify.
	ErrInvalidIterations = errors.New("password: iteration count below 1")

	// ErrDigestUnavailable is returned when SHA-512 cannot be resolved
	// from the crypto registry.
	ErrDigestUnavailable = errors.New("password: SHA-512 digest not available")

	// ErrRandomSource is returned when the secure random source cannot
	// supply a fresh salt.
	ErrRandomSource = errors.New("password: secure random source unavailable")

	// ErrMismatch is returned when a password does not match the stored
	// hash.
	ErrMismatch = errors.New("password: mismatch")
)

// Hash is the stored derivation of one password: the salt and iteration
// count in effect when the password was set, and the resulting digest.
type Hash struct {
	Salt       []byte
	Digest     []byte
	Iterations int
}

// New derives storage material for a fresh password: a new random salt,
// the current default iteration count, and the digest of pw under both.
// The salt is never reused from a previous password. On error nothing
// partial is returned, so the caller's prior credential state stays
// untouched.
func New(pw string) (*Hash, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}

	h := &Hash{Salt: salt, Iterations: DefaultIterations}
	digest, err := h.Derive(pw, HashSize)
	if err != nil {
		return nil, err
	}
	h.Digest = digest
	return h, nil
}

// Derive recomputes the digest of pw using the stored salt and
// iteration count, producing length bytes. It never regenerates the
// salt or alters the iteration count; fresh material comes only from
// New.
func (h *Hash) Derive(pw string, length int) ([]byte, error) {
	if h.Iterations < 1 {
		return nil, ErrInvalidIterations
	}
	if !crypto.SHA512.Available() {
		return nil, ErrDigestUnavailable
	}
	return pbkdf2.Key([]byte(pw), h.Salt, h.Iterations, length, crypto.SHA512.New), nil
}

// Verify reports whether pw matches the stored digest. A mismatch
// returns ErrMismatch; any other error is an internal failure, not a
// verdict on the password.
func (h *Hash) Verify(pw string) error {
	derived, err := h.Derive(pw, HashSize)
	if err != nil {
		return err
	}
	if !ConstantTimeEqual(derived, h.Digest) {
		return ErrMismatch
	}
	return nil
}
