package auth

import (
	"context"
	"strings"

	"github.com/dropDatabas3/punkauth/internal/domain/repository"
	dto "github.com/dropDatabas3/punkauth/internal/http/dto/auth"
	udto "github.com/dropDatabas3/punkauth/internal/http/dto/users"
	"github.com/dropDatabas3/punkauth/internal/metrics"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
)

// RegisterService crea usuarios nuevos y emite su primer par de tokens.
type RegisterService interface {
	Register(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error)
}

type registerService struct {
	deps Deps
}

// NewRegisterService crea el servicio de registro.
func NewRegisterService(deps Deps) RegisterService {
	return &registerService{deps: deps}
}

func (s *registerService) Register(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	if in.Email == "" || in.Name == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if len(in.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := s.deps.Hasher.Hash(in.Password)
	if err != nil {
		log.Error("password hashing failed", logger.Err(err))
		metrics.Signups.WithLabelValues("error").Inc()
		return nil, err
	}

	user, err := s.deps.Users.Create(ctx, repository.CreateUserInput{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
	})
	if err != nil {
		if repository.IsConflict(err) {
			log.Debug("email already registered", logger.Email(in.Email))
			metrics.Signups.WithLabelValues("conflict").Inc()
			return nil, ErrAlreadyRegistered
		}
		log.Error("user creation failed", logger.Err(err))
		metrics.Signups.WithLabelValues("error").Inc()
		return nil, err
	}

	pair, err := s.deps.Issuer.IssuePair(ctx, user)
	if err != nil {
		log.Error("token issuance failed", logger.UserID(user.ID), logger.Err(err))
		metrics.Signups.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.Signups.WithLabelValues("ok").Inc()
	metrics.TokensIssued.WithLabelValues("access").Inc()
	metrics.TokensIssued.WithLabelValues("refresh").Inc()
	log.Info("user registered", logger.UserID(user.ID))

	return &dto.AuthResponse{
		User:         udto.FromDomain(user),
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
