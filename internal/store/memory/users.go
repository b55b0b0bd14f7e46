// Package memory implementa repository.UserRepository en memoria.
// Driver para desarrollo sin base de datos y fake para los tests de services.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/punkauth/internal/domain/repository"
)

type userRepo struct {
	mu    sync.RWMutex
	users map[string]*repository.User // por ID
}

// NewUserRepository crea un repositorio vacío.
func NewUserRepository() repository.UserRepository {
	return &userRepo{users: make(map[string]*repository.User)}
}

// clone evita que los callers muten el estado interno.
func clone(u *repository.User) *repository.User {
	cp := *u
	if u.DeletedAt != nil {
		t := *u.DeletedAt
		cp.DeletedAt = &t
	}
	return &cp
}

func (r *userRepo) Create(_ context.Context, input repository.CreateUserInput) (*repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(input.Email)
	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			return nil, repository.ErrConflict
		}
	}

	now := time.Now().UTC()
	u := &repository.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: input.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	return clone(u), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByID(_ context.Context, id string) (*repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *userRepo) Update(_ context.Context, id string, input repository.UpdateUserInput) (*repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	if input.Name != nil {
		u.Name = *input.Name
	}
	u.UpdatedAt = time.Now().UTC()
	return clone(u), nil
}

func (r *userRepo) UpdatePasswordHash(_ context.Context, id, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return repository.ErrNotFound
	}
	u.PasswordHash = newHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *userRepo) SetEmailVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return repository.ErrNotFound
	}
	u.IsVerified = true
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *userRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	u.DeletedAt = &now
	u.UpdatedAt = now
	return nil
}

func (r *userRepo) Ping(context.Context) error { return nil }
