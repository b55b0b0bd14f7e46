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

// PasswordResetController maneja el flujo de password olvidado.
type PasswordResetController struct {
	service svc.ResetService
}

// NewPasswordResetController crea el controller de reset.
func NewPasswordResetController(service svc.ResetService) *PasswordResetController {
	return &PasswordResetController{service: service}
}

// Forgot emite el token de reset y lo envía por email.
// POST /auth/forgot-password
func (c *PasswordResetController) Forgot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PasswordResetController.Forgot"))

	var req dto.ForgotPasswordRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	if err := c.service.Forgot(ctx, req.Email); err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Password reset email sent"})
}

// Reset canjea el token y reemplaza el password.
// PATCH /auth/reset-password
func (c *PasswordResetController) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PasswordResetController.Reset"))

	var req dto.ResetPasswordRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	if err := c.service.Reset(ctx, req.Token, req.NewPassword); err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}

func (c *PasswordResetController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrMissingFields:
		httperrors.WriteError(w, httperrors.ErrMissingFields)
	case svc.ErrWeakPassword:
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("el password debe tener al menos 8 caracteres"))
	case svc.ErrUserNotFound:
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
	case svc.ErrTokenExpired:
		httperrors.WriteError(w, httperrors.ErrLinkTokenExpired)
	case svc.ErrTokenInvalid, svc.ErrTokenMalformed:
		httperrors.WriteError(w, httperrors.ErrLinkTokenInvalid)
	case svc.ErrTokenAlreadyUsed:
		httperrors.WriteError(w, httperrors.ErrTokenAlreadyUsed)
	case svc.ErrEmailDelivery:
		httperrors.WriteError(w, httperrors.ErrEmailDeliveryFailed)
	default:
		log.Error("unexpected password reset error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
