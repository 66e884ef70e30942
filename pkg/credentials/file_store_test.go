package credentials

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/kholes/mqcred/pkg/password"
)

func TestFileStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStoreFs(fs, "creds.json")

	t.Run("init", func(t *testing.T) {
		if err := store.Init(); err != nil {
			t.Fatalf("init failed: %v", err)
		}
		if err := store.Init(); err == nil {
			t.Error("expected error re-initializing existing file")
		}
	})

	t.Run("add", func(t *testing.T) {
		if err := store.Add("alice", ""); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := store.Add("alice", ""); !errors.Is(err, ErrExists) {
			t.Errorf("expected ErrExists, got %v", err)
		}
		if err := store.Add("", ""); err == nil {
			t.Error("expected error for empty username")
		}
	})

	t.Run("record without password defers verification", func(t *testing.T) {
		cred, err := store.LoadCredential("alice")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cred.Password != nil {
			t.Error("expected no password material before passwd")
		}
	})

	t.Run("set password", func(t *testing.T) {
		if err := store.SetPassword("alice", "Secret123!"); err != nil {
			t.Fatalf("set password failed: %v", err)
		}

		cred, err := store.LoadCredential("alice")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cred.Password == nil {
			t.Fatal("expected password material")
		}
		if cred.Password.Iterations != password.DefaultIterations {
			t.Errorf("expected default iterations, got %d", cred.Password.Iterations)
		}
		if err := cred.Password.Verify("Secret123!"); err != nil {
			t.Errorf("stored hash did not verify: %v", err)
		}
		if err := cred.Password.Verify("wrong"); !errors.Is(err, password.ErrMismatch) {
			t.Errorf("expected mismatch, got %v", err)
		}
	})

	t.Run("set password regenerates salt", func(t *testing.T) {
		before, err := store.LoadCredential("alice")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if err := store.SetPassword("alice", "Secret123!"); err != nil {
			t.Fatalf("set password failed: %v", err)
		}
		after, err := store.LoadCredential("alice")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if bytes.Equal(before.Password.Salt, after.Password.Salt) {
			t.Error("salt was reused across password changes")
		}
	})

	t.Run("set password for unknown user", func(t *testing.T) {
		if err := store.SetPassword("ghost", "x"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("disable and enable", func(t *testing.T) {
		if err := store.SetDisabled("alice", true); err != nil {
			t.Fatalf("disable failed: %v", err)
		}
		cred, err := store.LoadCredential("alice")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if !cred.Disabled {
			t.Error("expected disabled record")
		}

		if err := store.SetDisabled("alice", false); err != nil {
			t.Fatalf("enable failed: %v", err)
		}
		cred, err = store.LoadCredential("alice")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cred.Disabled {
			t.Error("expected enabled record")
		}
	})

	t.Run("client id binding round trips", func(t *testing.T) {
		if err := store.Add("carol", "dev-1"); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		cred, err := store.LoadCredential("carol")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cred.ClientID != "dev-1" {
			t.Errorf("expected clientid dev-1, got %q", cred.ClientID)
		}
	})

	t.Run("list", func(t *testing.T) {
		creds, err := store.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(creds) != 2 {
			t.Fatalf("expected 2 records, got %d", len(creds))
		}
		if creds[0].Username != "alice" || creds[1].Username != "carol" {
			t.Errorf("unexpected order: %q, %q", creds[0].Username, creds[1].Username)
		}
	})

	t.Run("remove", func(t *testing.T) {
		if err := store.Remove("carol"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if _, err := store.LoadCredential("carol"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := store.Remove("carol"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("no temp file left behind", func(t *testing.T) {
		exists, err := afero.Exists(fs, "creds.json.tmp")
		if err != nil {
			t.Fatalf("checking temp file: %v", err)
		}
		if exists {
			t.Error("temp file was not renamed away")
		}
	})
}

func TestFileStoreReadableByFileSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStoreFs(fs, "creds.json")

	if err := store.Add("alice", ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.SetPassword("alice", "Secret123!"); err != nil {
		t.Fatalf("set password failed: %v", err)
	}

	source := NewFileSourceFs(fs, "creds.json")
	cred, err := source.LoadCredential("alice")
	if err != nil {
		t.Fatalf("load via source failed: %v", err)
	}
	if err := cred.Password.Verify("Secret123!"); err != nil {
		t.Errorf("hash written by store did not verify via source: %v", err)
	}
}
