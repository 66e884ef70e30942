package authentication

import "github.com/kholes/mqcred/pkg/password"

// Verifier checks a supplied password against stored hash material. A
// mismatch is password.ErrMismatch; any other error is an internal
// failure.
type Verifier interface {
	Verify(h *password.Hash, pw string) error
}

// pbkdf2Verifier is the default Verifier: it recomputes the PBKDF2
// digest with the record's stored salt and iteration count and
// compares in constant time.
type pbkdf2Verifier struct{}

func (pbkdf2Verifier) Verify(h *password.Hash, pw string) error {
	return h.Verify(pw)
}
