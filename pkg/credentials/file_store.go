package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/kholes/mqcred/pkg/password"
)

// FileStore is a writable credential file. Every mutation loads the
// document, applies the change, and persists the result atomically via
// a temp file and rename, so readers never see a half-written file.
type FileStore struct {
	fs   afero.Fs
	path string

	mu sync.Mutex
}

// NewFileStore creates a FileStore on the local filesystem.
func NewFileStore(path string) *FileStore {
	return NewFileStoreFs(afero.NewOsFs(), path)
}

// NewFileStoreFs creates a FileStore on an explicit filesystem.
func NewFileStoreFs(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Init creates an empty credential file. It refuses to overwrite an
// existing one.
func (s *FileStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("checking credential file: %w", err)
	}
	if exists {
		return fmt.Errorf("credential file %s already exists", s.path)
	}
	return s.save(&storedDocument{Clients: []storedClient{}})
}

// LoadCredential implements Source.
func (s *FileStore) LoadCredential(username string) (*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Clients {
		if doc.Clients[i].Username == username {
			return decodeClient(&doc.Clients[i])
		}
	}
	return nil, ErrNotFound
}

// List returns all records in file order. Corrupt records are returned
// as username-only entries with Disabled set, so listings still work on
// a partially damaged file without ever presenting a verifiable record.
func (s *FileStore) List() ([]*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	creds := make([]*Credential, 0, len(doc.Clients))
	for i := range doc.Clients {
		cred, err := decodeClient(&doc.Clients[i])
		if err != nil {
			cred = &Credential{Username: doc.Clients[i].Username, Disabled: true}
		}
		creds = append(creds, cred)
	}
	return creds, nil
}

// Add creates a record with no password material. Until a password is
// set, authentication for the user defers to other sources.
func (s *FileStore) Add(username, clientID string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if findClient(doc, username) >= 0 {
		return fmt.Errorf("%w: %s", ErrExists, username)
	}
	doc.Clients = append(doc.Clients, storedClient{Username: username, ClientID: clientID})
	return s.save(doc)
}

// SetPassword replaces the password material for username with a fresh
// salt, the default iteration count, and the derived hash. If the
// derivation fails nothing is written, so the prior credential state
// stays in effect.
func (s *FileStore) SetPassword(username, pw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	i := findClient(doc, username)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}

	hash, err := password.New(pw)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	sc := encodeClient(&Credential{Password: hash})
	doc.Clients[i].Password = sc.Password
	doc.Clients[i].Salt = sc.Salt
	doc.Clients[i].Iterations = sc.Iterations
	return s.save(doc)
}

// SetDisabled flips the disabled flag for username. A disabled record
// still exists but always rejects.
func (s *FileStore) SetDisabled(username string, disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	i := findClient(doc, username)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	doc.Clients[i].Disabled = disabled
	return s.save(doc)
}

// Remove deletes the record for username.
func (s *FileStore) Remove(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	i := findClient(doc, username)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	doc.Clients = append(doc.Clients[:i], doc.Clients[i+1:]...)
	return s.save(doc)
}

func findClient(doc *storedDocument, username string) int {
	for i := range doc.Clients {
		if doc.Clients[i].Username == username {
			return i
		}
	}
	return -1
}

func (s *FileStore) load() (*storedDocument, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &storedDocument{}, nil
		}
		return nil, fmt.Errorf("reading credential file: %w", err)
	}

	doc := &storedDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing credential file: %w", err)
	}
	return doc, nil
}

func (s *FileStore) save(doc *storedDocument) error {
	data, err := json.MarshalIndent(doc, "", "\t")
	if err != nil {
		return fmt.Errorf("encoding credential file: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0600); err != nil {
		return fmt.Errorf("writing credential file: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing credential file: %w", err)
	}
	return nil
}
