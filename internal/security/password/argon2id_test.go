package password

import (
	"strings"
	"testing"
)

// Parámetros bajos para no quemar CPU en tests.
var testParams = Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLen: 16, KeyLen: 32}

func TestHashAndCompare(t *testing.T) {
	h := NewArgon2idWithParams(testParams)

	phc, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$") {
		t.Fatalf("formato PHC inesperado: %q", phc)
	}
	if !h.Compare("s3cret-pass", phc) {
		t.Fatal("Compare debería aceptar el password correcto")
	}
	if h.Compare("otro-pass", phc) {
		t.Fatal("Compare aceptó un password incorrecto")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	h := NewArgon2idWithParams(testParams)
	if _, err := h.Hash(""); err != ErrEmptyPassword {
		t.Fatalf("esperaba ErrEmptyPassword, obtuve %v", err)
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewArgon2idWithParams(testParams)
	a, _ := h.Hash("mismo-password")
	b, _ := h.Hash("mismo-password")
	if a == b {
		t.Fatal("dos hashes del mismo password no deberían coincidir (salt aleatorio)")
	}
}

func TestCompareMalformedDigest(t *testing.T) {
	h := NewArgon2idWithParams(testParams)
	for _, digest := range []string{
		"",
		"no-es-un-phc",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$a2V5",
	} {
		if h.Compare("x", digest) {
			t.Fatalf("Compare aceptó digest malformado: %q", digest)
		}
	}
}

func TestCompareAcceptsOldWorkFactor(t *testing.T) {
	// Un hash generado con otros parámetros se sigue verificando:
	// los parámetros viajan en el PHC.
	old := NewArgon2idWithParams(Params{Memory: 4 * 1024, Time: 1, Parallelism: 1, SaltLen: 16, KeyLen: 16})
	phc, err := old.Hash("legacy")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h := NewArgon2idWithParams(testParams)
	if !h.Compare("legacy", phc) {
		t.Fatal("Compare debería aceptar hashes con work factor distinto")
	}
}
