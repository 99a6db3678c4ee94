package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-server/internal/repository"
	"article-server/internal/repository/jsonfile"
)

func newRepos(t *testing.T) (repository.UserRepository, repository.ArticleRepository) {
	t.Helper()
	dir := t.TempDir()
	users := jsonfile.NewUserRepository(filepath.Join(dir, "users.json"))
	articles := jsonfile.NewArticleRepository(filepath.Join(dir, "articles.json"))
	require.NoError(t, users.Init(context.Background()))
	require.NoError(t, articles.Init(context.Background()))
	return users, articles
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	users, articles := newRepos(t)
	svc := NewUserService(users, articles)

	first, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Empty(t, first.PasswordHash)

	_, err = svc.Register(ctx, "alice", "pw2")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// exact-match policy: different case is a different username
	_, err = svc.Register(ctx, "Alice", "pw3")
	assert.NoError(t, err)
}

func TestRegister_StoresDigestNotPlaintext(t *testing.T) {
	ctx := context.Background()
	users, articles := newRepos(t)
	svc := NewUserService(users, articles)

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	stored, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
}

func TestAuthenticate_CredentialParity(t *testing.T) {
	ctx := context.Background()
	users, articles := newRepos(t)
	svc := NewUserService(users, articles)

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate(ctx, "alice", "nope")
	_, unknownUser := svc.Authenticate(ctx, "bob", "pw1")

	// unknown username and wrong password are the same error
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
}

func TestAuthenticate_Success(t *testing.T) {
	ctx := context.Background()
	users, articles := newRepos(t)
	svc := NewUserService(users, articles)

	registered, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestDeleteAccount_Cascades(t *testing.T) {
	ctx := context.Background()
	users, articles := newRepos(t)
	userSvc := NewUserService(users, articles)
	articleSvc := NewArticleService(articles)

	alice, err := userSvc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	bob, err := userSvc.Register(ctx, "bob", "pw2")
	require.NoError(t, err)

	aliceID := identity(alice.ID, "alice")
	bobID := identity(bob.ID, "bob")

	_, err = articleSvc.Create(ctx, aliceID, "T1", "C1", true)
	require.NoError(t, err)
	_, err = articleSvc.Create(ctx, aliceID, "T2", "C2", false)
	require.NoError(t, err)
	kept, err := articleSvc.Create(ctx, bobID, "T3", "C3", true)
	require.NoError(t, err)

	require.NoError(t, userSvc.DeleteAccount(ctx, alice.ID))

	_, err = userSvc.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	remaining, err := articles.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// other owners are untouched
	got, err := articleSvc.Get(ctx, nil, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.OwnerID)
}
