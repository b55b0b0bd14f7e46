package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	adto "github.com/dropDatabas3/punkauth/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/punkauth/internal/http/errors"
	"github.com/dropDatabas3/punkauth/internal/http/helpers"
	"github.com/dropDatabas3/punkauth/internal/http/middlewares"
	svc "github.com/dropDatabas3/punkauth/internal/http/services/auth"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
	"go.uber.org/zap"
)

// VerifyController maneja la verificación de email.
type VerifyController struct {
	service svc.VerifyService
}

// NewVerifyController crea el controller de verificación.
func NewVerifyController(service svc.VerifyService) *VerifyController {
	return &VerifyController{service: service}
}

// Send emite y envía el token de verificación.
// GET /users/{id}/verify — autenticada, solo para el dueño.
func (c *VerifyController) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("VerifyController.Send"))

	id := chi.URLParam(r, "id")
	if id == "" || id != middlewares.GetUserID(ctx) {
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
		return
	}

	if err := c.service.Send(ctx, id); err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, adto.MessageResponse{Message: "Verification email sent"})
}

// Confirm canjea el token de verificación.
// POST /users/verify-email — pública, el token es la credencial.
func (c *VerifyController) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("VerifyController.Confirm"))

	var req adto.VerifyEmailRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	already, err := c.service.Confirm(ctx, req.Token)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	msg := "Email verified successfully"
	if already {
		msg = "Email is already verified"
	}
	helpers.WriteJSON(w, http.StatusOK, adto.MessageResponse{Message: msg})
}

func (c *VerifyController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrMissingFields:
		httperrors.WriteError(w, httperrors.ErrMissingFields)
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
		log.Error("unexpected verify error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
