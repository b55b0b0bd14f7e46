package auth

import (
	"context"
	"time"

	jwtx "github.com/dropDatabas3/punkauth/internal/jwt"
	"github.com/dropDatabas3/punkauth/internal/metrics"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
)

// LogoutService revoca el token presentado por su vida restante.
type LogoutService interface {
	Logout(ctx context.Context, rawToken string) error
}

type logoutService struct {
	deps Deps
}

// NewLogoutService crea el servicio de logout.
func NewLogoutService(deps Deps) LogoutService {
	return &logoutService{deps: deps}
}

func (s *logoutService) Logout(ctx context.Context, rawToken string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.logout"),
		logger.Op("Logout"),
	)

	// Decodificación SIN verificar: un logout con token vencido o firmado con
	// otro secret igual es un logout. Solo necesitamos jti y exp.
	claims, err := jwtx.DecodeUnverified(rawToken)
	if err != nil {
		return ErrTokenMalformed
	}
	if claims.JTI() == "" {
		return ErrTokenMalformed
	}

	// Token ya vencido: no-op exitoso. La entrada de blacklist nunca debe
	// vivir más que el token que revoca.
	remaining := claims.RemainingTTL(time.Now().UTC())
	if remaining <= 0 {
		log.Debug("logout of expired token", logger.JTI(claims.JTI()))
		return nil
	}

	if err := s.deps.Blacklist.Revoke(ctx, claims.JTI(), remaining); err != nil {
		log.Error("logout revoke failed", logger.JTI(claims.JTI()), logger.Err(err))
		return err
	}

	metrics.Revocations.WithLabelValues("logout").Inc()
	log.Info("logout ok", logger.JTI(claims.JTI()))
	return nil
}
