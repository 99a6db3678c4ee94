package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-server/internal/domain"
	"article-server/internal/repository"
)

func newUserRepo(t *testing.T) (repository.UserRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	repo := NewUserRepository(path)
	require.NoError(t, repo.Init(context.Background()))
	return repo, path
}

func TestUserRepository_CreateAndReload(t *testing.T) {
	ctx := context.Background()
	repo, path := newUserRepo(t)

	id, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// a fresh repository over the same document sees the record
	reloaded := NewUserRepository(path)
	require.NoError(t, reloaded.Init(ctx))

	user, err := reloaded.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "h1", user.PasswordHash)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo, _ := newUserRepo(t)

	_, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h2"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	// usernames match case-sensitively
	_, err = repo.Create(ctx, &domain.User{Username: "Alice", PasswordHash: "h3"})
	assert.NoError(t, err)
}

func TestUserRepository_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewUserRepository(path)
	err := repo.Init(context.Background())
	assert.ErrorIs(t, err, repository.ErrStorageCorrupt)
}

func TestArticleRepository_IDsDoNotRecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewArticleRepository(filepath.Join(t.TempDir(), "articles.json"))
	require.NoError(t, repo.Init(ctx))

	first, err := repo.Create(ctx, &domain.Article{Title: "a", OwnerID: 1, Published: true})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &domain.Article{Title: "b", OwnerID: 1, Published: true})
	require.NoError(t, err)
	require.Greater(t, second, first)

	// deleting the highest id must not make the next create reuse it
	require.NoError(t, repo.Delete(ctx, second))
	third, err := repo.Create(ctx, &domain.Article{Title: "c", OwnerID: 1, Published: true})
	require.NoError(t, err)
	assert.Greater(t, third, second)
}

func TestArticleRepository_ListsAndCascade(t *testing.T) {
	ctx := context.Background()
	repo := NewArticleRepository(filepath.Join(t.TempDir(), "articles.json"))
	require.NoError(t, repo.Init(ctx))

	_, err := repo.Create(ctx, &domain.Article{Title: "pub", OwnerID: 1, Published: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Article{Title: "draft", OwnerID: 1, Published: false})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Article{Title: "other", OwnerID: 2, Published: true})
	require.NoError(t, err)

	published, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "pub", published[0].Title)
	assert.Equal(t, "other", published[1].Title)

	mine, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	require.NoError(t, repo.DeleteAllByOwner(ctx, 1))
	mine, err = repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mine)

	remaining, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, int64(2), remaining[0].OwnerID)
}

func TestArticleRepository_UpdatePreservesOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewArticleRepository(filepath.Join(t.TempDir(), "articles.json"))
	require.NoError(t, repo.Init(ctx))

	id, err := repo.Create(ctx, &domain.Article{Title: "a", Content: "c", OwnerID: 7, Published: true})
	require.NoError(t, err)

	err = repo.Update(ctx, &domain.Article{ID: id, Title: "b", Content: "d", Published: false, OwnerID: 99})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Title)
	assert.False(t, got.Published)
	assert.Equal(t, int64(7), got.OwnerID)
}

func TestArticleRepository_MissingFileIsEmpty(t *testing.T) {
	repo := NewArticleRepository(filepath.Join(t.TempDir(), "articles.json"))
	require.NoError(t, repo.Init(context.Background()))

	articles, err := repo.ListPublished(context.Background())
	require.NoError(t, err)
	assert.Empty(t, articles)
}
