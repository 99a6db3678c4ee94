package repository

import (
	"context"

	"article-server/internal/domain"
)

// ArticleRepository exposes persistence operations for Article records.
// ListPublished and ListByOwner return articles in insertion order.
type ArticleRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, article *domain.Article) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	ListPublished(ctx context.Context) ([]domain.Article, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Article, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id int64) error
	DeleteAllByOwner(ctx context.Context, ownerID int64) error
}
