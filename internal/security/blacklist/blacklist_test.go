package blacklist

import (
	"context"
	"testing"
	"time"

	"github.com/dropDatabas3/punkauth/internal/cache"
)

func TestRevokeAndIsRevoked(t *testing.T) {
	ctx := context.Background()
	bl := New(cache.NewMemory(""))

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Fatal("jti nunca revocado no debería figurar")
	}

	if err := bl.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, _ = bl.IsRevoked(ctx, "jti-1")
	if !revoked {
		t.Fatal("jti revocado debería figurar")
	}
}

func TestRevokeEmptyJTI(t *testing.T) {
	bl := New(cache.NewMemory(""))
	if err := bl.Revoke(context.Background(), "", time.Minute); err == nil {
		t.Fatal("Revoke con jti vacío debería fallar")
	}
}

func TestRevocationExpires(t *testing.T) {
	ctx := context.Background()
	bl := New(cache.NewMemory(""))

	_ = bl.Revoke(ctx, "jti-corto", 30*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	revoked, err := bl.IsRevoked(ctx, "jti-corto")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Fatal("la entrada debería haber vencido junto con el token")
	}
}
