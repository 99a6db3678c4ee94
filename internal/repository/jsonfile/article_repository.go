package jsonfile

import (
	"context"
	"sync"
	"time"

	"article-server/internal/domain"
	"article-server/internal/repository"
)

type articleRecord struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleRepository keeps article records in an articles.json document.
type ArticleRepository struct {
	mu       sync.Mutex
	path     string
	articles []articleRecord
	nextID   int64
}

func NewArticleRepository(path string) repository.ArticleRepository {
	return &ArticleRepository{path: path}
}

func (r *ArticleRepository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.articles = nil
	if err := loadDocument(r.path, &r.articles); err != nil {
		return err
	}
	r.nextID = 1
	for _, a := range r.articles {
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}
	return nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	article.ID = r.nextID
	article.CreatedAt = now
	article.UpdatedAt = now

	r.articles = append(r.articles, articleToRecord(article))
	if err := saveDocument(r.path, r.articles); err != nil {
		r.articles = r.articles[:len(r.articles)-1]
		return 0, err
	}
	r.nextID++
	return article.ID, nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.articles {
		if a.ID == id {
			return recordToArticle(a), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ArticleRepository) ListPublished(ctx context.Context) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Article
	for _, a := range r.articles {
		if a.Published {
			out = append(out, *recordToArticle(a))
		}
	}
	return out, nil
}

func (r *ArticleRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Article
	for _, a := range r.articles {
		if a.OwnerID == ownerID {
			out = append(out, *recordToArticle(a))
		}
	}
	return out, nil
}

func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.articles {
		if a.ID == article.ID {
			article.OwnerID = a.OwnerID
			article.CreatedAt = a.CreatedAt
			article.UpdatedAt = time.Now().UTC()
			r.articles[i] = articleToRecord(article)
			return saveDocument(r.path, r.articles)
		}
	}
	return repository.ErrNotFound
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.articles {
		if a.ID == id {
			r.articles = append(r.articles[:i], r.articles[i+1:]...)
			return saveDocument(r.path, r.articles)
		}
	}
	return repository.ErrNotFound
}

func (r *ArticleRepository) DeleteAllByOwner(ctx context.Context, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.articles[:0]
	changed := false
	for _, a := range r.articles {
		if a.OwnerID == ownerID {
			changed = true
			continue
		}
		kept = append(kept, a)
	}
	r.articles = kept
	if !changed {
		return nil
	}
	return saveDocument(r.path, r.articles)
}

func articleToRecord(a *domain.Article) articleRecord {
	return articleRecord{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Published: a.Published,
		OwnerID:   a.OwnerID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func recordToArticle(a articleRecord) *domain.Article {
	return &domain.Article{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Published: a.Published,
		OwnerID:   a.OwnerID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
