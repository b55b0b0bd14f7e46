package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/punkauth/internal/http/dto/users"
	httperrors "github.com/dropDatabas3/punkauth/internal/http/errors"
	"github.com/dropDatabas3/punkauth/internal/http/helpers"
	"github.com/dropDatabas3/punkauth/internal/http/middlewares"
	svc "github.com/dropDatabas3/punkauth/internal/http/services/users"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
	"go.uber.org/zap"
)

// ProfileController maneja las rutas /users/{id} autenticadas.
type ProfileController struct {
	service svc.Service
}

// NewProfileController crea el controller de perfil.
func NewProfileController(service svc.Service) *ProfileController {
	return &ProfileController{service: service}
}

// ownID valida que el id de la ruta sea el del token. Un usuario autenticado
// pidiendo otro id recibe 404: no confirmamos qué ids existen.
func (c *ProfileController) ownID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" || id != middlewares.GetUserID(r.Context()) {
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
		return "", false
	}
	return id, true
}

// Get devuelve el perfil del usuario autenticado.
// GET /users/{id}
func (c *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ProfileController.Get"))

	id, ok := c.ownID(w, r)
	if !ok {
		return
	}

	user, err := c.service.Get(ctx, id)
	if err != nil {
		c.handleError(w, err, log)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// Update actualiza el perfil.
// PATCH /users/{id}
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ProfileController.Update"))

	id, ok := c.ownID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	user, err := c.service.Update(ctx, id, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// Delete hace soft delete de la cuenta.
// DELETE /users/{id}
func (c *ProfileController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ProfileController.Delete"))

	id, ok := c.ownID(w, r)
	if !ok {
		return
	}

	if err := c.service.Delete(ctx, id); err != nil {
		c.handleError(w, err, log)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// ChangePassword cambia el password verificando el actual.
// PATCH /users/{id}/password
func (c *ProfileController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ProfileController.ChangePassword"))

	id, ok := c.ownID(w, r)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	if err := c.service.ChangePassword(ctx, id, req); err != nil {
		c.handleError(w, err, log)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (c *ProfileController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrUserNotFound:
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
	case svc.ErrMissingFields:
		httperrors.WriteError(w, httperrors.ErrMissingFields)
	case svc.ErrWeakPassword:
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("el password debe tener al menos 8 caracteres"))
	case svc.ErrWrongPassword:
		httperrors.WriteError(w, httperrors.ErrWrongPassword)
	default:
		log.Error("unexpected profile error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
