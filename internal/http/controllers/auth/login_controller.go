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

// LoginController maneja POST /auth/login.
type LoginController struct {
	service svc.LoginService
}

// NewLoginController crea el controller de login.
func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

// Login autentica credenciales y devuelve el par de tokens.
// POST /auth/login
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	result, err := c.service.Login(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, result)
}

func (c *LoginController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrMissingFields:
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("email y password son requeridos"))
	case svc.ErrInvalidCredentials:
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
	default:
		log.Error("unexpected login error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
