package auth

import (
	"net/http"

	httperrors "github.com/dropDatabas3/punkauth/internal/http/errors"
	"github.com/dropDatabas3/punkauth/internal/http/helpers"
	"github.com/dropDatabas3/punkauth/internal/http/middlewares"
	svc "github.com/dropDatabas3/punkauth/internal/http/services/auth"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
	"go.uber.org/zap"
)

// RefreshController maneja POST /auth/refresh.
type RefreshController struct {
	service svc.RefreshService
}

// NewRefreshController crea el controller de refresh.
func NewRefreshController(service svc.RefreshService) *RefreshController {
	return &RefreshController{service: service}
}

// Refresh rota el refresh token y devuelve un par nuevo.
// POST /auth/refresh — protegida por el authenticator de refresh, que deja el
// token crudo en el contexto.
func (c *RefreshController) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RefreshController.Refresh"))

	raw := middlewares.GetRawToken(ctx)
	if raw == "" {
		// Ruta mal cableada: acá siempre tiene que estar el middleware.
		log.Error("no raw token in context")
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	result, err := c.service.Refresh(ctx, raw)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, result)
}

func (c *RefreshController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrTokenExpired:
		httperrors.WriteError(w, httperrors.ErrTokenExpired)
	case svc.ErrTokenInvalid:
		httperrors.WriteError(w, httperrors.ErrTokenInvalid)
	case svc.ErrTokenMalformed:
		httperrors.WriteError(w, httperrors.ErrRefreshMalformed)
	case svc.ErrInvalidCredentials:
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
	default:
		log.Error("unexpected refresh error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
