package authentication

import (
	"errors"
	"fmt"

	"github.com/kholes/mqcred/pkg/credentials"
	"github.com/kholes/mqcred/pkg/logging"
	"github.com/kholes/mqcred/pkg/password"
)

// Authenticator runs the per-connection authentication check. It is
// stateless apart from its collaborators, so one instance serves any
// number of concurrent connections.
type Authenticator struct {
	source   credentials.Source
	verifier Verifier
	notifier Notifier
}

// NewAuthenticator creates a new Authenticator. verifier may be nil to
// use the default PBKDF2 verifier; notifier may be nil for no
// post-accept notification.
func NewAuthenticator(source credentials.Source, verifier Verifier, notifier Notifier) (*Authenticator, error) {
	if source == nil {
		return nil, fmt.Errorf("credential source is required")
	}
	if verifier == nil {
		verifier = pbkdf2Verifier{}
	}

	return &Authenticator{
		source:   source,
		verifier: verifier,
		notifier: notifier,
	}, nil
}

// Authenticate decides the outcome for one connection attempt. An
// empty username or password means the attempt carries no credentials
// this store could judge, so it defers. The outcome never reveals
// which check failed; unknown user, wrong password and disabled
// account all look the same from outside.
func (a *Authenticator) Authenticate(username, pw string, client Client) Outcome {
	if username == "" || pw == "" {
		return Defer
	}

	cred, err := a.source.LoadCredential(username)
	if errors.Is(err, credentials.ErrNotFound) {
		return Defer
	}
	if err != nil {
		// Unreadable or corrupt store: fail closed.
		logging.App.Error("Credential lookup failed", "username", username, "error", err)
		logging.Access.LogAuth("login", username, "rejected", "reason", "lookup_failed")
		return Reject
	}

	if cred.Disabled {
		logging.Access.LogAuth("login", username, "rejected", "reason", "disabled")
		return Reject
	}

	if cred.ClientID != "" && (client.ID == "" || client.ID != cred.ClientID) {
		logging.Access.LogAuth("login", username, "rejected", "reason", "clientid_mismatch", "clientid", client.ID)
		return Reject
	}

	if cred.Password == nil {
		// No password ever set: this store cannot authenticate the
		// user.
		return Defer
	}

	if err := a.verifier.Verify(cred.Password, pw); err != nil {
		switch {
		case errors.Is(err, password.ErrMismatch):
			logging.Access.LogAuth("login", username, "rejected", "reason", "bad_password")
			return Reject
		case errors.Is(err, password.ErrInvalidIterations):
			// Corrupt record: fail closed rather than error out.
			logging.App.Error("Credential record has invalid iterations", "username", username)
			logging.Access.LogAuth("login", username, "rejected", "reason", "invalid_record")
			return Reject
		default:
			logging.App.Error("Password verification failed", "username", username, "error", err)
			logging.Access.LogAuth("login", username, "error")
			return Error
		}
	}

	logging.Access.LogAuth("login", username, "accepted", "clientid", client.ID, "addr", client.Addr)
	a.notify(client)
	return Accept
}

// notify runs the post-accept hook. The outcome is already final when
// this is called; the notifier's result is logged and otherwise
// ignored.
func (a *Authenticator) notify(client Client) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.ClientConnected(client.ID, client.Addr); err != nil {
		logging.App.Error("Connect notifier failed", "clientid", client.ID, "addr", client.Addr, "error", err)
		return
	}
	logging.App.Debug("Connect notifier completed", "clientid", client.ID, "addr", client.Addr)
}
