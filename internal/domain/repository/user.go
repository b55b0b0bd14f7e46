// Package repository define los contratos de persistencia del dominio.
// Los adapters concretos viven en internal/store.
package repository

import (
	"context"
	"time"
)

// User representa un usuario del sistema.
//
// Invariante de unicidad: a lo sumo un usuario ACTIVO (DeletedAt == nil) por
// email. El borrado es soft: DeletedAt marca la fila como eliminada y la saca
// de todas las búsquedas.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// CreateUserInput contiene los datos para crear un usuario.
// PasswordHash ya viene hasheado; este paquete nunca ve passwords en claro.
type CreateUserInput struct {
	Email        string
	Name         string
	PasswordHash string
}

// UpdateUserInput contiene los campos actualizables de un usuario.
// Punteros nil = no tocar.
type UpdateUserInput struct {
	Name *string
}

// UserRepository define operaciones sobre usuarios.
//
// Todas las búsquedas filtran usuarios soft-deleted: un usuario borrado se
// comporta como inexistente (ErrNotFound).
type UserRepository interface {
	// Create crea un usuario. Retorna ErrConflict si ya existe un usuario
	// activo con ese email (la unicidad la garantiza el store, no la app).
	Create(ctx context.Context, input CreateUserInput) (*User, error)

	// GetByEmail busca un usuario activo por email (ya normalizado).
	// Retorna ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID busca un usuario activo por ID.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*User, error)

	// Update actualiza campos del perfil y retorna el usuario actualizado.
	Update(ctx context.Context, id string, input UpdateUserInput) (*User, error)

	// UpdatePasswordHash reemplaza el hash de password del usuario.
	UpdatePasswordHash(ctx context.Context, id, newHash string) error

	// SetEmailVerified marca el email del usuario como verificado.
	SetEmailVerified(ctx context.Context, id string) error

	// SoftDelete marca el usuario como eliminado (setea DeletedAt).
	SoftDelete(ctx context.Context, id string) error

	// Ping verifica la conexión al store (para readiness).
	Ping(ctx context.Context) error
}
