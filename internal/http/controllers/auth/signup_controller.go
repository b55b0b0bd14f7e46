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

// SignupController maneja POST /auth/signup.
type SignupController struct {
	service svc.RegisterService
}

// NewSignupController crea el controller de registro.
func NewSignupController(service svc.RegisterService) *SignupController {
	return &SignupController{service: service}
}

// Signup registra un usuario nuevo y devuelve su primer par de tokens.
// POST /auth/signup
func (c *SignupController) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("SignupController.Signup"))

	var req dto.SignupRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	result, err := c.service.Register(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, result)
}

func (c *SignupController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrMissingFields:
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("name, email y password son requeridos"))
	case svc.ErrWeakPassword:
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("el password debe tener al menos 8 caracteres"))
	case svc.ErrAlreadyRegistered:
		httperrors.WriteError(w, httperrors.ErrEmailTaken)
	default:
		log.Error("unexpected signup error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
