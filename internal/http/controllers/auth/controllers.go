// Package auth contiene los controllers de autenticación.
package auth

import svc "github.com/dropDatabas3/punkauth/internal/http/services/auth"

// Controllers agrupa todos los controllers del dominio auth.
type Controllers struct {
	Signup        *SignupController
	Login         *LoginController
	Refresh       *RefreshController
	Logout        *LogoutController
	PasswordReset *PasswordResetController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Signup:        NewSignupController(s.Register),
		Login:         NewLoginController(s.Login),
		Refresh:       NewRefreshController(s.Refresh),
		Logout:        NewLogoutController(s.Logout),
		PasswordReset: NewPasswordResetController(s.Reset),
	}
}
