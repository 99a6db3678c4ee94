package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"article-server/internal/domain"
	"article-server/internal/repository"
)

const createArticlesTable = `
CREATE TABLE IF NOT EXISTS articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	published INTEGER NOT NULL DEFAULT 1,
	owner_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
);
`

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createArticlesTable); err != nil {
		return fmt.Errorf("create articles table: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (int64, error) {
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO articles (title, content, published, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		article.Title,
		article.Content,
		article.Published,
		article.OwnerID,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("article last insert id: %w", err)
	}
	article.ID = id
	return id, nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, content, published, owner_id, created_at, updated_at
FROM articles
WHERE id = ?`,
		id,
	)
	return scanArticle(row)
}

func (r *ArticleRepository) ListPublished(ctx context.Context) ([]domain.Article, error) {
	return r.list(ctx, `
SELECT id, title, content, published, owner_id, created_at, updated_at
FROM articles
WHERE published = 1
ORDER BY id`)
}

func (r *ArticleRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Article, error) {
	return r.list(ctx, `
SELECT id, title, content, published, owner_id, created_at, updated_at
FROM articles
WHERE owner_id = ?
ORDER BY id`,
		ownerID)
}

func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	article.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE articles
SET title = ?, content = ?, published = ?, updated_at = ?
WHERE id = ?`,
		article.Title,
		article.Content,
		article.Published,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update article rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete article rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) DeleteAllByOwner(ctx context.Context, ownerID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("delete articles by owner: %w", err)
	}
	return nil
}

func (r *ArticleRepository) list(ctx context.Context, query string, args ...any) ([]domain.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var article domain.Article
		if err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Content,
			&article.Published,
			&article.OwnerID,
			&article.CreatedAt,
			&article.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return articles, nil
}

func scanArticle(row interface {
	Scan(dest ...any) error
}) (*domain.Article, error) {
	var article domain.Article
	if err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Published,
		&article.OwnerID,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	return &article, nil
}
