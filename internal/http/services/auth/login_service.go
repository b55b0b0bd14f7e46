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

// LoginService autentica credenciales y emite el par de tokens.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error)
}

type loginService struct {
	deps Deps
}

// NewLoginService crea el servicio de login.
func NewLoginService(deps Deps) LoginService {
	return &loginService{deps: deps}
}

func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	// Usuario inexistente (o soft-deleted) y password incorrecto responden lo
	// mismo: no filtramos qué emails existen.
	user, err := s.deps.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Debug("user not found", logger.Email(in.Email))
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			return nil, ErrInvalidCredentials
		}
		log.Error("user lookup failed", logger.Err(err))
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}

	if !s.deps.Hasher.Compare(in.Password, user.PasswordHash) {
		log.Debug("password check failed", logger.UserID(user.ID))
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}

	pair, err := s.deps.Issuer.IssuePair(ctx, user)
	if err != nil {
		log.Error("token issuance failed", logger.UserID(user.ID), logger.Err(err))
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	metrics.TokensIssued.WithLabelValues("access").Inc()
	metrics.TokensIssued.WithLabelValues("refresh").Inc()
	log.Info("login ok", logger.UserID(user.ID))

	return &dto.AuthResponse{
		User:         udto.FromDomain(user),
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
