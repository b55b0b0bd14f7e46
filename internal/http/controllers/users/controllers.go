// Package users contiene los controllers de gestión de usuarios.
package users

import (
	authsvc "github.com/dropDatabas3/punkauth/internal/http/services/auth"
	userssvc "github.com/dropDatabas3/punkauth/internal/http/services/users"
)

// Controllers agrupa los controllers del dominio users.
type Controllers struct {
	Profile *ProfileController
	Verify  *VerifyController
}

// NewControllers crea el agregador de controllers users.
func NewControllers(users userssvc.Service, verify authsvc.VerifyService) *Controllers {
	return &Controllers{
		Profile: NewProfileController(users),
		Verify:  NewVerifyController(verify),
	}
}
