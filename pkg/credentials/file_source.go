package credentials

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// FileSource loads credential records from a JSON credential file. The
// whole document is re-read on every lookup, so a record is always a
// consistent snapshot of one version of the file.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a FileSource reading from the local filesystem.
func NewFileSource(path string) *FileSource {
	return NewFileSourceFs(afero.NewOsFs(), path)
}

// NewFileSourceFs creates a FileSource on an explicit filesystem.
func NewFileSourceFs(fs afero.Fs, path string) *FileSource {
	return &FileSource{fs: fs, path: path}
}

// LoadCredential implements Source. A missing credential file means the
// store simply has no records, not a failure.
func (s *FileSource) LoadCredential(username string) (*Credential, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading credential file: %w", err)
	}

	var doc storedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing credential file: %w", err)
	}

	for i := range doc.Clients {
		if doc.Clients[i].Username == username {
			return decodeClient(&doc.Clients[i])
		}
	}
	return nil, ErrNotFound
}
