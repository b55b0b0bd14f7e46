// Package blacklist implementa la revocación de tokens por jti.
//
// Un token firmado no puede "borrarse": lo que se registra es su jti en un
// store con TTL. Mientras la entrada exista, todo autenticador debe rechazar
// ese jti aunque la firma siga siendo válida. La entrada nunca necesita vivir
// más que el token que revoca (vencido, el token se rechaza solo).
package blacklist

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/punkauth/internal/cache"
)

const keyPrefix = "blacklist:"

// Blacklist registra y consulta jtis revocados sobre un cache.Client.
// Se inyecta como dependencia; nunca es un singleton.
type Blacklist struct {
	cache cache.Client
}

// New crea una Blacklist sobre el cliente de cache dado.
func New(c cache.Client) *Blacklist {
	return &Blacklist{cache: c}
}

// Revoke marca el jti como revocado durante ttl.
// ttl debe cubrir al menos la vida restante del token; un ttl mayor solo
// desperdicia memoria, nunca afecta la corrección.
func (b *Blacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return fmt.Errorf("blacklist: jti vacío")
	}
	if err := b.cache.Set(ctx, keyPrefix+jti, "1", ttl); err != nil {
		return fmt.Errorf("blacklist: revocando jti: %w", err)
	}
	return nil
}

// IsRevoked consulta si el jti está revocado.
// Un error del store se propaga: ante un cache caído NO se asume "no revocado".
func (b *Blacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	ok, err := b.cache.Exists(ctx, keyPrefix+jti)
	if err != nil {
		return false, fmt.Errorf("blacklist: consultando jti: %w", err)
	}
	return ok, nil
}
