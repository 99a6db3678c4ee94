package repository

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when a username is already taken.
	// Usernames match case-sensitively, so "Alice" and "alice" may coexist.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrStorageCorrupt indicates the backing store holds data that cannot
	// be decoded. Surfaced instead of pretending the collection is empty.
	ErrStorageCorrupt = errors.New("storage corrupt")
)
