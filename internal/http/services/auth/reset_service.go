package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dropDatabas3/punkauth/internal/domain/repository"
	jwtx "github.com/dropDatabas3/punkauth/internal/jwt"
	"github.com/dropDatabas3/punkauth/internal/metrics"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
)

// ResetService maneja el flujo de password olvidado: emisión del token
// single-use por email y su canje exactamente-una-vez.
type ResetService interface {
	// Forgot emite un token de reset y lo envía por email.
	Forgot(ctx context.Context, email string) error

	// Reset canjea el token y reemplaza el password.
	Reset(ctx context.Context, token, newPassword string) error
}

type resetService struct {
	deps Deps
}

// NewResetService crea el servicio de reset de password.
func NewResetService(deps Deps) ResetService {
	return &resetService{deps: deps}
}

func (s *resetService) Forgot(ctx context.Context, email string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.reset"),
		logger.Op("Forgot"),
	)

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ErrMissingFields
	}

	user, err := s.deps.Users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		log.Error("user lookup failed", logger.Err(err))
		return err
	}

	token, err := jwtx.Sign(user.ID, user.Email, uuid.NewString(), s.deps.ResetSecret, s.deps.ResetTTL)
	if err != nil {
		log.Error("reset token signing failed", logger.UserID(user.ID), logger.Err(err))
		return err
	}
	metrics.TokensIssued.WithLabelValues("reset").Inc()

	// Si el mail no sale, la operación falla: no reportamos éxito con un
	// token que el usuario nunca va a recibir.
	if err := s.deps.Mailer.SendPasswordReset(user.Email, user.Name, token, s.deps.ResetTTL); err != nil {
		log.Error("reset email delivery failed", logger.UserID(user.ID), logger.Err(err))
		return ErrEmailDelivery
	}

	log.Info("reset email sent", logger.UserID(user.ID))
	return nil
}

func (s *resetService) Reset(ctx context.Context, token, newPassword string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.reset"),
		logger.Op("Reset"),
	)

	if token == "" || newPassword == "" {
		return ErrMissingFields
	}
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}

	// Orden de los chequeos: expiración SIEMPRE antes que la blacklist. Un
	// token vencido reporta TokenExpired aunque además esté canjeado.
	claims, err := jwtx.Verify(token, s.deps.ResetSecret)
	if err != nil {
		if err == jwtx.ErrTokenExpired {
			metrics.Redemptions.WithLabelValues("reset", "expired").Inc()
			return ErrTokenExpired
		}
		metrics.Redemptions.WithLabelValues("reset", "invalid").Inc()
		return ErrTokenInvalid
	}
	if claims.JTI() == "" {
		metrics.Redemptions.WithLabelValues("reset", "invalid").Inc()
		return ErrTokenMalformed
	}

	revoked, err := s.deps.Blacklist.IsRevoked(ctx, claims.JTI())
	if err != nil {
		log.Error("blacklist lookup failed", logger.JTI(claims.JTI()), logger.Err(err))
		return err
	}
	if revoked {
		metrics.Redemptions.WithLabelValues("reset", "already_used").Inc()
		return ErrTokenAlreadyUsed
	}

	user, err := s.deps.Users.GetByID(ctx, claims.Subject)
	if err != nil {
		if repository.IsNotFound(err) {
			metrics.Redemptions.WithLabelValues("reset", "not_found").Inc()
			return ErrUserNotFound
		}
		log.Error("user lookup failed", logger.Err(err))
		return err
	}

	hash, err := s.deps.Hasher.Hash(newPassword)
	if err != nil {
		log.Error("password hashing failed", logger.UserID(user.ID), logger.Err(err))
		return err
	}
	if err := s.deps.Users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		log.Error("password update failed", logger.UserID(user.ID), logger.Err(err))
		return err
	}

	// El canje muta primero y revoca después: si la revocación falla, la
	// operación completa falla y el caller reintenta (el password ya quedó
	// cambiado, el reintento da AlreadyUsed solo cuando la escritura entre).
	if err := s.deps.Blacklist.Revoke(ctx, claims.JTI(), singleUseBlacklistTTL); err != nil {
		log.Error("redeem revoke failed", logger.JTI(claims.JTI()), logger.Err(err))
		return err
	}
	metrics.Revocations.WithLabelValues("single_use").Inc()
	metrics.Redemptions.WithLabelValues("reset", "ok").Inc()

	log.Info("password reset ok", logger.UserID(user.ID), logger.JTI(claims.JTI()))
	return nil
}
