package domain

import "time"

// Article is a piece of content owned by exactly one user. The Published
// flag controls whether anonymous readers can see it.
type Article struct {
	ID        int64
	Title     string
	Content   string
	Published bool
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
