// Package password provee el hashing one-way de credenciales.
//
// El hasher se inyecta como capability (interfaz Hasher) para que el work
// factor sea swappable y los tests puedan usar un stub rápido.
package password

import "errors"

// Hasher hashea y compara passwords.
type Hasher interface {
	// Hash devuelve el digest del password en claro. Falla con ErrEmptyPassword
	// si el password está vacío.
	Hash(plain string) (string, error)

	// Compare verifica el password en claro contra un digest almacenado.
	// Devuelve false ante digests malformados, nunca error: un hash corrupto
	// se trata igual que un password incorrecto.
	Compare(plain, digest string) bool
}

// ErrEmptyPassword indica un password vacío.
var ErrEmptyPassword = errors.New("password: empty password")
