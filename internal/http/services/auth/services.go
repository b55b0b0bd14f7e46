// Package auth contiene los services del ciclo de vida de tokens:
// registro, login, refresh, logout y los flujos single-use (reset y verify).
package auth

import (
	"errors"
	"time"

	"github.com/dropDatabas3/punkauth/internal/domain/repository"
	"github.com/dropDatabas3/punkauth/internal/email"
	jwtx "github.com/dropDatabas3/punkauth/internal/jwt"
	"github.com/dropDatabas3/punkauth/internal/security/blacklist"
	"github.com/dropDatabas3/punkauth/internal/security/password"
)

// singleUseBlacklistTTL es el TTL de la entrada de blacklist al canjear un
// token single-use. Debe cubrir el TTL máximo de emisión de esos tokens
// (verify: 24h); 7 días deja margen de sobra y la entrada expira sola.
const singleUseBlacklistTTL = 7 * 24 * time.Hour

// Errores del dominio auth. Los controllers los mapean a AppErrors.
var (
	ErrMissingFields      = errors.New("auth: missing required fields")
	ErrWeakPassword       = errors.New("auth: password too short")
	ErrAlreadyRegistered  = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrTokenInvalid       = errors.New("auth: token invalid")
	ErrTokenExpired       = errors.New("auth: token expired")
	ErrTokenAlreadyUsed   = errors.New("auth: token already used")
	ErrTokenMalformed     = errors.New("auth: token has no id")
	ErrEmailDelivery      = errors.New("auth: email delivery failed")
)

// minPasswordLen es el largo mínimo aceptado para passwords nuevos.
const minPasswordLen = 8

// Deps contiene las dependencias compartidas de los services auth.
type Deps struct {
	Users     repository.UserRepository
	Hasher    password.Hasher
	Issuer    *jwtx.Issuer
	Blacklist *blacklist.Blacklist
	Mailer    *email.Mailer

	// Secrets y TTLs de los tokens single-use.
	ResetSecret  []byte
	VerifySecret []byte
	ResetTTL     time.Duration
	VerifyTTL    time.Duration
}

// Services agrupa todos los services del dominio auth.
type Services struct {
	Register RegisterService
	Login    LoginService
	Refresh  RefreshService
	Logout   LogoutService
	Reset    ResetService
	Verify   VerifyService
}

// NewServices crea el agregador de services auth.
func NewServices(d Deps) Services {
	return Services{
		Register: NewRegisterService(d),
		Login:    NewLoginService(d),
		Refresh:  NewRefreshService(d),
		Logout:   NewLogoutService(d),
		Reset:    NewResetService(d),
		Verify:   NewVerifyService(d),
	}
}
