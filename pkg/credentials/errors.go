package credentials

import "errors"

var (
	// ErrNotFound is returned when no record exists for a username.
	ErrNotFound = errors.New("credential not found")

	// ErrExists is returned when adding a username that already has a
	// record.
	ErrExists = errors.New("credential already exists")

	// ErrInvalidRecord is returned when a stored record is corrupt:
	// undecodable salt or hash, wrong material lengths, or an iteration
	// count below 1. Such records must never authenticate anyone.
	ErrInvalidRecord = errors.New("invalid credential record")
)
