package service

import (
	"errors"

	"article-server/internal/auth"
	"article-server/internal/domain"
)

var (
	// ErrUnauthenticated means the request carried no valid identity.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the identity is valid but not permitted. Mutations
	// on nonexistent articles also map here so callers cannot probe which
	// ids exist.
	ErrForbidden = errors.New("forbidden")
)

type operation int

const (
	opRead operation = iota
	opCreate
	opModify
	opListOwn
)

// authorize is the single decision point for article access. article may be
// nil for operations without a target (create, list) or when the target does
// not exist; requester is nil for anonymous requests.
func authorize(op operation, article *domain.Article, requester *auth.Identity) error {
	switch op {
	case opRead:
		if article.Published {
			return nil
		}
		if requester == nil {
			return ErrUnauthenticated
		}
		if requester.ID != article.OwnerID {
			return ErrForbidden
		}
		return nil

	case opCreate, opListOwn:
		if requester == nil {
			return ErrUnauthenticated
		}
		return nil

	case opModify:
		if requester == nil {
			return ErrUnauthenticated
		}
		if article == nil || requester.ID != article.OwnerID {
			return ErrForbidden
		}
		return nil
	}
	return ErrForbidden
}
