package auth

import (
	"context"
	"time"

	"github.com/dropDatabas3/punkauth/internal/domain/repository"
	dto "github.com/dropDatabas3/punkauth/internal/http/dto/auth"
	udto "github.com/dropDatabas3/punkauth/internal/http/dto/users"
	jwtx "github.com/dropDatabas3/punkauth/internal/jwt"
	"github.com/dropDatabas3/punkauth/internal/metrics"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
)

// RefreshService rota el refresh token: emite un par nuevo y revoca el viejo.
type RefreshService interface {
	Refresh(ctx context.Context, rawToken string) (*dto.AuthResponse, error)
}

type refreshService struct {
	deps Deps
}

// NewRefreshService crea el servicio de refresh.
func NewRefreshService(deps Deps) RefreshService {
	return &refreshService{deps: deps}
}

func (s *refreshService) Refresh(ctx context.Context, rawToken string) (*dto.AuthResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.refresh"),
		logger.Op("Refresh"),
	)

	// El authenticator de refresh ya validó firma, expiración y blacklist;
	// acá volvemos a verificar para extraer claims de forma segura.
	claims, err := jwtx.Verify(rawToken, s.deps.Issuer.RefreshSecret)
	if err != nil {
		if err == jwtx.ErrTokenExpired {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if claims.JTI() == "" {
		return nil, ErrTokenMalformed
	}

	user, err := s.deps.Users.GetByID(ctx, claims.Subject)
	if err != nil {
		if repository.IsNotFound(err) {
			// Usuario borrado con refresh vigente: credencial inválida.
			log.Debug("user gone", logger.UserID(claims.Subject))
			return nil, ErrInvalidCredentials
		}
		log.Error("user lookup failed", logger.Err(err))
		return nil, err
	}

	pair, err := s.deps.Issuer.IssuePair(ctx, user)
	if err != nil {
		log.Error("token issuance failed", logger.UserID(user.ID), logger.Err(err))
		return nil, err
	}

	// Rotación: el refresh entrante muere acá. Si la escritura a la blacklist
	// falla NO devolvemos el par nuevo, el cliente debe reintentar.
	remaining := claims.RemainingTTL(time.Now().UTC())
	if remaining > 0 {
		if err := s.deps.Blacklist.Revoke(ctx, claims.JTI(), remaining); err != nil {
			log.Error("refresh rotation revoke failed", logger.JTI(claims.JTI()), logger.Err(err))
			return nil, err
		}
		metrics.Revocations.WithLabelValues("refresh_rotation").Inc()
	}

	metrics.TokensIssued.WithLabelValues("access").Inc()
	metrics.TokensIssued.WithLabelValues("refresh").Inc()
	log.Info("refresh rotated", logger.UserID(user.ID), logger.JTI(claims.JTI()))

	return &dto.AuthResponse{
		User:         udto.FromDomain(user),
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
