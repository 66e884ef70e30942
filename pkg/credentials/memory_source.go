package credentials

import "sync"

// MemorySource provides credential records from an in-memory map.
// Useful for tests and embedded setups.
type MemorySource struct {
	mu      sync.RWMutex
	records map[string]*Credential
}

// NewMemorySource creates a MemorySource with optional initial records.
func NewMemorySource(initial map[string]*Credential) *MemorySource {
	records := make(map[string]*Credential)
	for username, cred := range initial {
		records[username] = cred
	}
	return &MemorySource{records: records}
}

// LoadCredential implements Source.
func (s *MemorySource) LoadCredential(username string) (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.records[username]
	if !ok {
		return nil, ErrNotFound
	}
	return cred, nil
}

// AddCredential adds or replaces a record. The record is stored as
// given and must not be mutated by the caller afterwards.
func (s *MemorySource) AddCredential(cred *Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[cred.Username] = cred
}

// RemoveCredential removes a record.
func (s *MemorySource) RemoveCredential(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, username)
}
