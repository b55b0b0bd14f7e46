// Package metrics expone los contadores Prometheus del servicio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LoginAttempts cuenta logins por resultado ("ok", "invalid_credentials", "error").
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "punkauth_login_attempts_total",
		Help: "Intentos de login por resultado.",
	}, []string{"outcome"})

	// Signups cuenta registros por resultado ("ok", "conflict", "error").
	Signups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "punkauth_signups_total",
		Help: "Registros de usuarios por resultado.",
	}, []string{"outcome"})

	// TokensIssued cuenta tokens emitidos por tipo ("access", "refresh", "reset", "verify").
	TokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "punkauth_tokens_issued_total",
		Help: "Tokens firmados por tipo.",
	}, []string{"type"})

	// Revocations cuenta escrituras a la blacklist por motivo
	// ("logout", "refresh_rotation", "single_use").
	Revocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "punkauth_revocations_total",
		Help: "Entradas escritas en la blacklist por motivo.",
	}, []string{"reason"})

	// Redemptions cuenta canjes de tokens single-use por flujo y resultado
	// ("reset"|"verify",
	//  "ok"|"expired"|"invalid"|"already_used"|"already_verified"|"not_found").
	Redemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "punkauth_single_use_redemptions_total",
		Help: "Canjes de tokens single-use por flujo y resultado.",
	}, []string{"flow", "outcome"})
)

// Handler devuelve el handler de /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
