package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBasicOps(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("test")

	if _, err := c.Get(ctx, "nope"); !IsNotFound(err) {
		t.Fatalf("esperaba ErrNotFound, obtuve %v", err)
	}

	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || got != "v" {
		t.Fatalf("Get = (%q, %v)", got, err)
	}

	ok, _ := c.Exists(ctx, "k")
	if !ok {
		t.Fatal("Exists debería ser true")
	}

	_ = c.Delete(ctx, "k")
	if ok, _ := c.Exists(ctx, "k"); ok {
		t.Fatal("Exists debería ser false tras Delete")
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("")

	if err := c.Set(ctx, "corta", "1", 30*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ok, _ := c.Exists(ctx, "corta"); !ok {
		t.Fatal("la key debería existir antes de vencer")
	}

	time.Sleep(60 * time.Millisecond)
	if ok, _ := c.Exists(ctx, "corta"); ok {
		t.Fatal("la key debería haber vencido")
	}
}

func TestMemoryPrefixIsolation(t *testing.T) {
	ctx := context.Background()
	a := NewMemory("a")
	_ = a.Set(ctx, "k", "v", 0)

	// Otro cliente con otro prefijo no ve la key (instancias separadas igual,
	// pero verifica que el prefijo forma parte de la key efectiva).
	if _, err := a.Get(ctx, "a:k"); !IsNotFound(err) {
		t.Fatal("la key cruda con prefijo no debería resolverse dos veces")
	}
}
