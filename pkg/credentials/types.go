// Package credentials models broker client credential records and the
// stores that hold them.
package credentials

import "github.com/kholes/mqcred/pkg/password"

// Credential is one client record. ClientID, when set, pins the record
// to a single connecting client identifier; empty means any identifier
// is accepted. A nil Password means no password has ever been set, so
// this store cannot verify the client and authentication is left to
// another source.
//
// Records are treated as immutable values: updates replace the whole
// record rather than mutating fields in place, so a reader always sees
// salt, hash, iterations, disabled and clientid from the same version.
type Credential struct {
	Username string
	ClientID string
	Disabled bool
	Password *password.Hash
}

// Source is a read view of a credential store.
type Source interface {
	// LoadCredential returns the record for username, or ErrNotFound.
	// Returned records follow the immutability convention above: they
	// are never mutated in place, so callers may hold them without
	// copying.
	LoadCredential(username string) (*Credential, error)
}
