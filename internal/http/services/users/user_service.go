// Package users contiene el service de gestión de perfil de usuario.
package users

import (
	"context"
	"errors"

	"github.com/dropDatabas3/punkauth/internal/domain/repository"
	dto "github.com/dropDatabas3/punkauth/internal/http/dto/users"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
	"github.com/dropDatabas3/punkauth/internal/security/password"
)

// Errores del dominio users.
var (
	ErrUserNotFound  = errors.New("users: user not found")
	ErrWrongPassword = errors.New("users: current password incorrect")
	ErrMissingFields = errors.New("users: missing required fields")
	ErrWeakPassword  = errors.New("users: password too short")
)

const minPasswordLen = 8

// Service expone las operaciones de perfil. Todas reciben el userID ya
// autenticado por el middleware; la autorización (solo el dueño) la resuelve
// el controller comparando contra el claim sub.
type Service interface {
	Get(ctx context.Context, id string) (*dto.UserDTO, error)
	Update(ctx context.Context, id string, in dto.UpdateRequest) (*dto.UserDTO, error)
	Delete(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, id string, in dto.ChangePasswordRequest) error
}

// Deps contiene las dependencias del service.
type Deps struct {
	Users  repository.UserRepository
	Hasher password.Hasher
}

type service struct {
	deps Deps
}

// NewService crea el service de usuarios.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

func (s *service) Get(ctx context.Context, id string) (*dto.UserDTO, error) {
	user, err := s.deps.Users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	out := dto.FromDomain(user)
	return &out, nil
}

func (s *service) Update(ctx context.Context, id string, in dto.UpdateRequest) (*dto.UserDTO, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("users"),
		logger.Op("Update"),
	)

	if in.Name == nil {
		return nil, ErrMissingFields
	}

	user, err := s.deps.Users.Update(ctx, id, repository.UpdateUserInput{Name: in.Name})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		log.Error("profile update failed", logger.UserID(id), logger.Err(err))
		return nil, err
	}

	out := dto.FromDomain(user)
	return &out, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("users"),
		logger.Op("Delete"),
	)

	if err := s.deps.Users.SoftDelete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		log.Error("soft delete failed", logger.UserID(id), logger.Err(err))
		return err
	}
	log.Info("user deleted", logger.UserID(id))
	return nil
}

func (s *service) ChangePassword(ctx context.Context, id string, in dto.ChangePasswordRequest) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("users"),
		logger.Op("ChangePassword"),
	)

	if in.CurrentPassword == "" || in.NewPassword == "" {
		return ErrMissingFields
	}
	if len(in.NewPassword) < minPasswordLen {
		return ErrWeakPassword
	}

	user, err := s.deps.Users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	if !s.deps.Hasher.Compare(in.CurrentPassword, user.PasswordHash) {
		log.Debug("current password check failed", logger.UserID(id))
		return ErrWrongPassword
	}

	hash, err := s.deps.Hasher.Hash(in.NewPassword)
	if err != nil {
		log.Error("password hashing failed", logger.UserID(id), logger.Err(err))
		return err
	}
	if err := s.deps.Users.UpdatePasswordHash(ctx, id, hash); err != nil {
		log.Error("password update failed", logger.UserID(id), logger.Err(err))
		return err
	}

	log.Info("password changed", logger.UserID(id))
	return nil
}
