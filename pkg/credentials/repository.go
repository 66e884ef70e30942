package credentials

import (
	"errors"
	"sync"
	"time"

	"github.com/kholes/mqcred/pkg/logging"
)

// Repository provides cached access to a credential source. Cache
// entries are whole records replaced atomically under the lock, never
// mutated in place, so concurrent verifications always observe a
// consistent record version.
type Repository struct {
	source        Source
	cacheDuration time.Duration

	mu          sync.RWMutex
	cache       map[string]*Credential
	lastRefresh map[string]time.Time
}

// NewRepository creates a new Repository.
func NewRepository(source Source, cacheDuration time.Duration) *Repository {
	return &Repository{
		source:        source,
		cacheDuration: cacheDuration,
		cache:         make(map[string]*Credential),
		lastRefresh:   make(map[string]time.Time),
	}
}

// LoadCredential implements Source, using the cache when fresh.
func (r *Repository) LoadCredential(username string) (*Credential, error) {
	r.mu.RLock()
	cred, exists := r.cache[username]
	lastRefresh := r.lastRefresh[username]
	r.mu.RUnlock()

	if exists && time.Since(lastRefresh) < r.cacheDuration {
		logging.App.Debug("Using cached credential", "username", username, "cache_age", time.Since(lastRefresh))
		return cred, nil
	}

	cred, err := r.source.LoadCredential(username)
	if err != nil {
		logging.App.Debug("Failed to load credential from source", "username", username, "error", err)
		return nil, err
	}

	r.mu.Lock()
	r.cache[username] = cred
	r.lastRefresh[username] = time.Now()
	r.mu.Unlock()

	logging.App.Debug("Updated credential cache", "username", username)
	return cred, nil
}

// RefreshCredential drops any cached entry and reloads the record from
// the source. Call after a password change, disable or removal so the
// next verification sees the new version.
func (r *Repository) RefreshCredential(username string) error {
	cred, err := r.source.LoadCredential(username)
	if errors.Is(err, ErrNotFound) {
		r.mu.Lock()
		delete(r.cache, username)
		delete(r.lastRefresh, username)
		r.mu.Unlock()
		return nil
	}
	if err != nil {
		logging.App.Debug("Failed to refresh credential", "username", username, "error", err)
		return err
	}

	r.mu.Lock()
	r.cache[username] = cred
	r.lastRefresh[username] = time.Now()
	r.mu.Unlock()

	logging.App.Debug("Refreshed credential cache", "username", username)
	return nil
}

// CredentialExists checks whether a record exists for username.
func (r *Repository) CredentialExists(username string) (bool, error) {
	_, err := r.LoadCredential(username)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
