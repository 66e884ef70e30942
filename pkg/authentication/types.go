// Package authentication decides the outcome of broker connection
// attempts against a credential store.
package authentication

// Outcome is the verdict on one authentication attempt.
type Outcome int

const (
	// Defer means this credential source has no opinion and another
	// authority should decide.
	Defer Outcome = iota
	// Accept means the credentials verified against a stored record.
	Accept
	// Reject means the attempt must be refused: disabled record, client
	// identity mismatch, or wrong password.
	Reject
	// Error means an internal failure prevented a verdict. Distinct
	// from Reject so the host can alert on it rather than treat it as a
	// failed login.
	Error
)

// String returns the outcome name for logs and CLI output.
func (o Outcome) String() string {
	switch o {
	case Defer:
		return "defer"
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Client identifies the connecting session.
type Client struct {
	// ID is the session's client identifier; empty when the host cannot
	// determine it.
	ID string
	// Addr is the remote network address, carried only for the
	// post-accept notification.
	Addr string
}

// Notifier observes successful authentications for side effects such
// as logging or external notification. It runs only after the outcome
// is final; its error is recorded for diagnostics and never alters the
// decision, so an observer cannot veto an accepted connection.
type Notifier interface {
	ClientConnected(clientID, addr string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(clientID, addr string) error

// ClientConnected implements Notifier.
func (f NotifierFunc) ClientConnected(clientID, addr string) error {
	return f(clientID, addr)
}
