package service

import (
	"context"
	"errors"

	"article-server/internal/auth"
	"article-server/internal/domain"
	"article-server/internal/repository"
)

// ErrArticleNotFound is returned for reads of ids that do not exist.
var ErrArticleNotFound = errors.New("article not found")

// ArticleService coordinates article operations and enforces the ownership
// and visibility rules. The requester is nil for anonymous requests.
type ArticleService interface {
	Create(ctx context.Context, requester *auth.Identity, title, content string, published bool) (*domain.Article, error)
	Get(ctx context.Context, requester *auth.Identity, id int64) (*domain.Article, error)
	ListPublished(ctx context.Context) ([]domain.Article, error)
	ListVisible(ctx context.Context, requester *auth.Identity, published bool) ([]domain.Article, error)
	ListByOwner(ctx context.Context, requester *auth.Identity) ([]domain.Article, error)
	Update(ctx context.Context, requester *auth.Identity, id int64, title, content string, published bool) (*domain.Article, error)
	Delete(ctx context.Context, requester *auth.Identity, id int64) error
}

type articleService struct {
	articles repository.ArticleRepository
}

func NewArticleService(articles repository.ArticleRepository) ArticleService {
	return &articleService{articles: articles}
}

func (s *articleService) Create(ctx context.Context, requester *auth.Identity, title, content string, published bool) (*domain.Article, error) {
	if err := authorize(opCreate, nil, requester); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errors.New("title is required")
	}

	article := &domain.Article{
		Title:     title,
		Content:   content,
		Published: published,
		OwnerID:   requester.ID,
	}
	if _, err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) Get(ctx context.Context, requester *auth.Identity, id int64) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	if err := authorize(opRead, article, requester); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) ListPublished(ctx context.Context) ([]domain.Article, error) {
	return s.articles.ListPublished(ctx)
}

// ListVisible backs the published query flag: true yields the public list,
// false yields the requester's own unpublished articles. Anonymous callers
// asking for unpublished articles get an empty list.
func (s *articleService) ListVisible(ctx context.Context, requester *auth.Identity, published bool) ([]domain.Article, error) {
	if published {
		return s.articles.ListPublished(ctx)
	}
	if requester == nil {
		return nil, nil
	}
	own, err := s.articles.ListByOwner(ctx, requester.ID)
	if err != nil {
		return nil, err
	}
	var out []domain.Article
	for _, a := range own {
		if !a.Published {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *articleService) ListByOwner(ctx context.Context, requester *auth.Identity) ([]domain.Article, error) {
	if err := authorize(opListOwn, nil, requester); err != nil {
		return nil, err
	}
	return s.articles.ListByOwner(ctx, requester.ID)
}

// Update replaces title, content and published; id and owner are immutable.
func (s *articleService) Update(ctx context.Context, requester *auth.Identity, id int64, title, content string, published bool) (*domain.Article, error) {
	article, err := s.mutable(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	article.Title = title
	article.Content = content
	article.Published = published
	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, requester *auth.Identity, id int64) error {
	article, err := s.mutable(ctx, requester, id)
	if err != nil {
		return err
	}
	return s.articles.Delete(ctx, article.ID)
}

// mutable loads the target of an update or delete and authorizes the
// requester against it. A nonexistent id and a foreign owner both come back
// as ErrForbidden.
func (s *articleService) mutable(ctx context.Context, requester *auth.Identity, id int64) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err := authorize(opModify, article, requester); err != nil {
		return nil, err
	}
	return article, nil
}
