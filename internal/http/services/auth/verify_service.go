package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/dropDatabas3/punkauth/internal/domain/repository"
	jwtx "github.com/dropDatabas3/punkauth/internal/jwt"
	"github.com/dropDatabas3/punkauth/internal/metrics"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
)

// VerifyService maneja la verificación de email: emisión del token single-use
// y su canje exactamente-una-vez.
type VerifyService interface {
	// Send emite un token de verificación y lo envía por email.
	// Si el usuario ya está verificado es un no-op exitoso.
	Send(ctx context.Context, userID string) error

	// Confirm canjea el token y marca el email como verificado. Si el usuario
	// ya estaba verificado (carrera entre dos canjes, o un token viejo)
	// devuelve already=true sin error y SIN quemar el token: re-canjear una
	// verificación ya aplicada es idempotente, no una falla.
	Confirm(ctx context.Context, token string) (already bool, err error)
}

type verifyService struct {
	deps Deps
}

// NewVerifyService crea el servicio de verificación de email.
func NewVerifyService(deps Deps) VerifyService {
	return &verifyService{deps: deps}
}

func (s *verifyService) Send(ctx context.Context, userID string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.verify"),
		logger.Op("Send"),
	)

	user, err := s.deps.Users.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		log.Error("user lookup failed", logger.Err(err))
		return err
	}

	if user.IsVerified {
		log.Debug("already verified", logger.UserID(user.ID))
		return nil
	}

	token, err := jwtx.Sign(user.ID, user.Email, uuid.NewString(), s.deps.VerifySecret, s.deps.VerifyTTL)
	if err != nil {
		log.Error("verify token signing failed", logger.UserID(user.ID), logger.Err(err))
		return err
	}
	metrics.TokensIssued.WithLabelValues("verify").Inc()

	if err := s.deps.Mailer.SendVerification(user.Email, user.Name, token, s.deps.VerifyTTL); err != nil {
		log.Error("verify email delivery failed", logger.UserID(user.ID), logger.Err(err))
		return ErrEmailDelivery
	}

	log.Info("verify email sent", logger.UserID(user.ID))
	return nil
}

func (s *verifyService) Confirm(ctx context.Context, token string) (bool, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.verify"),
		logger.Op("Confirm"),
	)

	if token == "" {
		return false, ErrMissingFields
	}

	// Mismo orden que el canje de reset: expiración antes que blacklist.
	claims, err := jwtx.Verify(token, s.deps.VerifySecret)
	if err != nil {
		if err == jwtx.ErrTokenExpired {
			metrics.Redemptions.WithLabelValues("verify", "expired").Inc()
			return false, ErrTokenExpired
		}
		metrics.Redemptions.WithLabelValues("verify", "invalid").Inc()
		return false, ErrTokenInvalid
	}
	if claims.JTI() == "" {
		metrics.Redemptions.WithLabelValues("verify", "invalid").Inc()
		return false, ErrTokenMalformed
	}

	revoked, err := s.deps.Blacklist.IsRevoked(ctx, claims.JTI())
	if err != nil {
		log.Error("blacklist lookup failed", logger.JTI(claims.JTI()), logger.Err(err))
		return false, err
	}
	if revoked {
		metrics.Redemptions.WithLabelValues("verify", "already_used").Inc()
		return false, ErrTokenAlreadyUsed
	}

	user, err := s.deps.Users.GetByID(ctx, claims.Subject)
	if err != nil {
		if repository.IsNotFound(err) {
			metrics.Redemptions.WithLabelValues("verify", "not_found").Inc()
			return false, ErrUserNotFound
		}
		log.Error("user lookup failed", logger.Err(err))
		return false, err
	}

	// Ya verificado: salida temprana idempotente. No se muta nada y el token
	// NO se quema — el canje repetido solo vuelve a reportar "ya verificado".
	if user.IsVerified {
		metrics.Redemptions.WithLabelValues("verify", "already_verified").Inc()
		log.Debug("already verified", logger.UserID(user.ID), logger.JTI(claims.JTI()))
		return true, nil
	}

	if err := s.deps.Users.SetEmailVerified(ctx, user.ID); err != nil {
		log.Error("verify flag update failed", logger.UserID(user.ID), logger.Err(err))
		return false, err
	}

	if err := s.deps.Blacklist.Revoke(ctx, claims.JTI(), singleUseBlacklistTTL); err != nil {
		log.Error("redeem revoke failed", logger.JTI(claims.JTI()), logger.Err(err))
		return false, err
	}
	metrics.Revocations.WithLabelValues("single_use").Inc()
	metrics.Redemptions.WithLabelValues("verify", "ok").Inc()

	log.Info("email verified", logger.UserID(user.ID), logger.JTI(claims.JTI()))
	return false, nil
}
