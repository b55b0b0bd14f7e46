// Package health contiene los endpoints de liveness y readiness.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/punkauth/internal/cache"
	"github.com/dropDatabas3/punkauth/internal/domain/repository"
	"github.com/dropDatabas3/punkauth/internal/http/helpers"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
)

// Controller expone /healthz y /readyz.
type Controller struct {
	users repository.UserRepository
	cache cache.Client
}

// NewController crea el controller de health.
func NewController(users repository.UserRepository, c cache.Client) *Controller {
	return &Controller{users: users, cache: c}
}

// Healthz es el liveness probe: el proceso responde.
// GET /healthz
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz es el readiness probe: store y cache accesibles.
// GET /readyz
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("Readyz"))

	checks := map[string]string{"store": "ok", "cache": "ok"}
	status := http.StatusOK

	if err := c.users.Ping(ctx); err != nil {
		log.Warn("store not ready", logger.Err(err))
		checks["store"] = "down"
		status = http.StatusServiceUnavailable
	}
	if err := c.cache.Ping(ctx); err != nil {
		log.Warn("cache not ready", logger.Err(err))
		checks["cache"] = "down"
		status = http.StatusServiceUnavailable
	}

	helpers.WriteJSON(w, status, checks)
}
