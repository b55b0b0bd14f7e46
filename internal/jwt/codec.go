// Package jwt firma y verifica los tokens del servicio (HS256).
//
// Cada propósito (access, refresh, password-reset, email-verify) usa su propio
// secret, así un token nunca puede reutilizarse en otro flujo. La expiración
// la valida este paquete, nunca el caller.
package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired indica que el token venció.
	ErrTokenExpired = errors.New("jwt: token expired")

	// ErrTokenInvalid indica firma incorrecta o claims malformadas.
	ErrTokenInvalid = errors.New("jwt: token invalid")
)

// Claims son las claims firmadas en todos los tokens del servicio.
// El jti (RegisteredClaims.ID) es el único handle de revocación: se genera en
// la emisión y nunca se reutiliza.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwtv5.RegisteredClaims
}

// JTI devuelve el identificador único del token ("" si no tiene).
func (c *Claims) JTI() string { return c.ID }

// RemainingTTL devuelve cuánta vida le queda al token respecto de now.
// Si no hay claim exp (o ya venció) devuelve <= 0.
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Time.Sub(now)
}

// Sign firma claims {sub, email, jti} con el secret dado y TTL acotado.
func Sign(sub, email, jti string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   sub,
			ID:        jti,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(secret)
}

// Verify valida firma y expiración contra el secret dado.
// Falla con ErrTokenExpired si venció y ErrTokenInvalid en cualquier otro caso
// (firma incorrecta, algoritmo inesperado, claims malformadas).
func Verify(token string, secret []byte) (*Claims, error) {
	var claims Claims
	tok, err := jwtv5.ParseWithClaims(token, &claims,
		func(t *jwtv5.Token) (any, error) { return secret, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

// DecodeUnverified extrae las claims SIN validar firma ni expiración.
//
// Solo para logout: ahí necesitamos el jti y la vida restante de un token que
// puede estar vencido o firmado con otro secret. Nunca usar el resultado para
// autenticar.
func DecodeUnverified(token string) (*Claims, error) {
	var claims Claims
	if _, _, err := jwtv5.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}
