package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/punkauth/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/punkauth/internal/http/errors"
	"github.com/dropDatabas3/punkauth/internal/http/helpers"
	svc "github.com/dropDatabas3/punkauth/internal/http/services/auth"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
	"go.uber.org/zap"
)

// LogoutController maneja POST /auth/logout.
type LogoutController struct {
	service svc.LogoutService
}

// NewLogoutController crea el controller de logout.
func NewLogoutController(service svc.LogoutService) *LogoutController {
	return &LogoutController{service: service}
}

// Logout revoca el token presentado.
// POST /auth/logout — lee el bearer directamente: un token vencido también se
// puede "desloguear" (no-op exitoso), así que no pasa por el authenticator.
func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LogoutController.Logout"))

	raw := helpers.BearerToken(r)
	if raw == "" {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	if err := c.service.Logout(ctx, raw); err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

func (c *LogoutController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrTokenMalformed:
		httperrors.WriteError(w, httperrors.ErrTokenMalformed)
	default:
		log.Error("unexpected logout error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
