package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-server/internal/domain"
	"article-server/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func initRepos(t *testing.T, db *sql.DB) (repository.UserRepository, repository.ArticleRepository) {
	t.Helper()
	ctx := context.Background()
	users := NewUserRepository(db)
	articles := NewArticleRepository(db)
	require.NoError(t, users.Init(ctx))
	require.NoError(t, articles.Init(ctx))
	return users, articles
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	users, _ := initRepos(t, openTestDB(t))

	id, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h1"})
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	byName, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	byID, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = users.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	users, _ := initRepos(t, openTestDB(t))

	_, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h2"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
}

func TestArticleRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	users, articles := initRepos(t, openTestDB(t))

	ownerID, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	id, err := articles.Create(ctx, &domain.Article{
		Title:     "T",
		Content:   "C",
		Published: false,
		OwnerID:   ownerID,
	})
	require.NoError(t, err)

	got, err := articles.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "C", got.Content)
	assert.False(t, got.Published)
	assert.Equal(t, ownerID, got.OwnerID)
}

func TestArticleRepository_Lists(t *testing.T) {
	ctx := context.Background()
	users, articles := initRepos(t, openTestDB(t))

	ownerID, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = articles.Create(ctx, &domain.Article{Title: "pub", OwnerID: ownerID, Published: true})
	require.NoError(t, err)
	_, err = articles.Create(ctx, &domain.Article{Title: "draft", OwnerID: ownerID, Published: false})
	require.NoError(t, err)

	published, err := articles.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "pub", published[0].Title)

	mine, err := articles.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestArticleRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	users, articles := initRepos(t, openTestDB(t))

	ownerID, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	id, err := articles.Create(ctx, &domain.Article{Title: "a", OwnerID: ownerID, Published: true})
	require.NoError(t, err)

	err = articles.Update(ctx, &domain.Article{ID: id, Title: "b", Content: "c", Published: false})
	require.NoError(t, err)

	got, err := articles.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Title)
	assert.False(t, got.Published)

	assert.ErrorIs(t, articles.Update(ctx, &domain.Article{ID: 9999, Title: "x"}), repository.ErrNotFound)

	require.NoError(t, articles.Delete(ctx, id))
	assert.ErrorIs(t, articles.Delete(ctx, id), repository.ErrNotFound)
}

func TestUserDelete_CascadesToArticles(t *testing.T) {
	ctx := context.Background()
	users, articles := initRepos(t, openTestDB(t))

	ownerID, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = articles.Create(ctx, &domain.Article{Title: "a", OwnerID: ownerID, Published: true})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, ownerID))

	// foreign key cascade removes the owned rows
	remaining, err := articles.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
