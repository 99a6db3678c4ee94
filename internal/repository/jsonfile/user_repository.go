package jsonfile

import (
	"context"
	"sync"
	"time"

	"article-server/internal/domain"
	"article-server/internal/repository"
)

type userRecord struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRepository keeps user records in a users.json document. The mutex
// serializes writers so id assignment stays monotonic within the process.
type UserRepository struct {
	mu     sync.Mutex
	path   string
	users  []userRecord
	nextID int64
}

func NewUserRepository(path string) repository.UserRepository {
	return &UserRepository{path: path}
}

func (r *UserRepository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = nil
	if err := loadDocument(r.path, &r.users); err != nil {
		return err
	}
	r.nextID = 1
	for _, u := range r.users {
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return 0, repository.ErrDuplicateUsername
		}
	}

	now := time.Now().UTC()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users = append(r.users, userRecord{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err := saveDocument(r.path, r.users); err != nil {
		r.users = r.users[:len(r.users)-1]
		return 0, err
	}
	r.nextID++
	return user.ID, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return recordToUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return recordToUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return saveDocument(r.path, r.users)
		}
	}
	return repository.ErrNotFound
}

func recordToUser(u userRecord) *domain.User {
	return &domain.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
