package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

// runCommand executes the root command with args, discarding output.
func runCommand(args ...string) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	return rootCmd.Execute()
}

// stubPasswords replaces the terminal prompt with a scripted sequence
// of entries for the duration of the test.
func stubPasswords(t *testing.T, entries ...string) {
	t.Helper()
	orig := readPassword
	i := 0
	readPassword = func(fd int) ([]byte, error) {
		if i >= len(entries) {
			return nil, fmt.Errorf("unexpected password prompt")
		}
		entry := entries[i]
		i++
		return []byte(entry), nil
	}
	t.Cleanup(func() { readPassword = orig })
}

func TestCLI(t *testing.T) {
	file := filepath.Join(t.TempDir(), "creds.json")

	t.Run("init and add", func(t *testing.T) {
		if err := runCommand("init", "--file", file); err != nil {
			t.Fatalf("init failed: %v", err)
		}
		if err := runCommand("add", "alice", "--file", file); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := runCommand("add", "alice", "--file", file); err == nil {
			t.Error("expected error adding duplicate user")
		}
		if err := runCommand("passwd", "alice", "--file", file, "--password", "Secret123!"); err != nil {
			t.Fatalf("passwd failed: %v", err)
		}
	})

	t.Run("check maps outcomes to exit status", func(t *testing.T) {
		if err := runCommand("check", "alice", "--file", file, "--password", "Secret123!"); err != nil {
			t.Errorf("expected success for correct password, got %v", err)
		}

		err := runCommand("check", "alice", "--file", file, "--password", "wrong")
		if err == nil || !strings.Contains(err.Error(), "reject") {
			t.Errorf("expected reject error for wrong password, got %v", err)
		}

		err = runCommand("check", "ghost", "--file", file, "--password", "x")
		if err == nil || !strings.Contains(err.Error(), "defer") {
			t.Errorf("expected defer error for unknown user, got %v", err)
		}
	})

	t.Run("check against disabled record", func(t *testing.T) {
		if err := runCommand("disable", "alice", "--file", file); err != nil {
			t.Fatalf("disable failed: %v", err)
		}
		err := runCommand("check", "alice", "--file", file, "--password", "Secret123!")
		if err == nil || !strings.Contains(err.Error(), "reject") {
			t.Errorf("expected reject error for disabled record, got %v", err)
		}

		if err := runCommand("enable", "alice", "--file", file); err != nil {
			t.Fatalf("enable failed: %v", err)
		}
		if err := runCommand("check", "alice", "--file", file, "--password", "Secret123!"); err != nil {
			t.Errorf("expected success after re-enable, got %v", err)
		}
	})

	t.Run("check with prompted password", func(t *testing.T) {
		stubPasswords(t, "Secret123!")
		if err := runCommand("check", "alice", "--file", file, "--password", ""); err != nil {
			t.Errorf("expected success with prompted password, got %v", err)
		}
	})

	t.Run("passwd prompt requires matching confirmation", func(t *testing.T) {
		stubPasswords(t, "NewPass1", "different")
		err := runCommand("passwd", "alice", "--file", file, "--password", "")
		if err == nil || !strings.Contains(err.Error(), "do not match") {
			t.Fatalf("expected mismatch error, got %v", err)
		}

		// The failed change must leave the old password in effect.
		if err := runCommand("check", "alice", "--file", file, "--password", "Secret123!"); err != nil {
			t.Errorf("old password no longer accepted after failed passwd: %v", err)
		}
	})

	t.Run("passwd prompt with matching confirmation", func(t *testing.T) {
		stubPasswords(t, "NewPass1", "NewPass1")
		if err := runCommand("passwd", "alice", "--file", file, "--password", ""); err != nil {
			t.Fatalf("passwd failed: %v", err)
		}
		if err := runCommand("check", "alice", "--file", file, "--password", "NewPass1"); err != nil {
			t.Errorf("new password not accepted: %v", err)
		}
		err := runCommand("check", "alice", "--file", file, "--password", "Secret123!")
		if err == nil || !strings.Contains(err.Error(), "reject") {
			t.Errorf("expected reject for old password, got %v", err)
		}
	})
}
