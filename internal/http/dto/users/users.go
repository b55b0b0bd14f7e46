// Package users contiene los DTOs de usuarios expuestos por la API.
package users

import (
	"time"

	"github.com/dropDatabas3/punkauth/internal/domain/repository"
)

// UserDTO es la representación pública de un usuario.
// Nunca incluye el hash del password.
type UserDTO struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FromDomain sanitiza un usuario del dominio para la respuesta HTTP.
func FromDomain(u *repository.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// UpdateRequest representa la solicitud de actualización de perfil.
type UpdateRequest struct {
	Name *string `json:"name"`
}

// ChangePasswordRequest representa el cambio de password autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
