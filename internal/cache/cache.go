// Package cache provee el key-value store con TTL por key que usa el servicio
// como blacklist de revocación.
//
// Backends:
//   - memory (go-cache, in-process): desarrollo y tests.
//   - redis: producción, compartido entre réplicas.
//
// El cliente se inyecta siempre como dependencia, nunca se accede como global:
// la visibilidad de las escrituras depende únicamente del backend elegido.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client define las operaciones de cache que necesita el servicio.
type Client interface {
	// Get obtiene un valor. Retorna ErrNotFound si la key no existe o expiró.
	Get(ctx context.Context, key string) (string, error)

	// Set guarda un valor con TTL. Si ttl es 0 la key no expira.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete elimina una key. No falla si no existe.
	Delete(ctx context.Context, key string) error

	// Exists verifica si una key existe (y no expiró).
	Exists(ctx context.Context, key string) (bool, error)

	// Ping verifica la conexión (para readiness).
	Ping(ctx context.Context) error

	// Close cierra la conexión.
	Close() error
}

// ErrNotFound indica que la key no existe.
var ErrNotFound = errors.New("cache: key not found")

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Config configura el backend de cache.
type Config struct {
	Kind     string // "memory" | "redis"
	Addr     string // host:port (redis)
	Password string
	DB       int
	Prefix   string // prefijo para todas las keys
}

// New crea un cliente según la configuración.
func New(cfg Config) (Client, error) {
	switch cfg.Kind {
	case "redis":
		return NewRedis(cfg)
	case "memory", "":
		return NewMemory(cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("cache: backend desconocido %q", cfg.Kind)
	}
}
