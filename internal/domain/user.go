package domain

import "time"

// User represents a registered account. PasswordHash holds a bcrypt digest,
// never the plaintext password.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
