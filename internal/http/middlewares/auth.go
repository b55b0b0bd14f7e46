package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/punkauth/internal/http/errors"
	"github.com/dropDatabas3/punkauth/internal/http/helpers"
	"github.com/dropDatabas3/punkauth/internal/jwt"
	"github.com/dropDatabas3/punkauth/internal/security/blacklist"
)

// authenticate hace el pipeline común: bearer -> verificar firma/expiración ->
// consultar blacklist -> inyectar claims y user ID en el contexto.
// malformedErr es el 401 a devolver si el token válido no trae jti.
func authenticate(next http.Handler, secret []byte, bl *blacklist.Blacklist, malformedErr *errors.AppError, keepRaw bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := helpers.BearerToken(r)
		if raw == "" {
			errors.WriteError(w, errors.ErrTokenMissing)
			return
		}

		claims, err := jwt.Verify(raw, secret)
		if err != nil {
			// Expirado gana sobre cualquier otra condición: ni siquiera
			// consultamos la blacklist.
			if err == jwt.ErrTokenExpired {
				errors.WriteError(w, errors.ErrTokenExpired)
				return
			}
			errors.WriteError(w, errors.ErrTokenInvalid)
			return
		}

		jti := claims.JTI()
		if jti == "" {
			errors.WriteError(w, malformedErr)
			return
		}

		revoked, err := bl.IsRevoked(r.Context(), jti)
		if err != nil {
			errors.WriteError(w, errors.ErrServiceUnavailable.WithCause(err))
			return
		}
		if revoked {
			errors.WriteError(w, errors.ErrTokenRevoked)
			return
		}

		ctx := WithClaims(r.Context(), claims)
		ctx = WithUserID(ctx, claims.Subject)
		if keepRaw {
			ctx = withRawToken(ctx, raw)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithAccessAuth protege rutas con el access token.
func WithAccessAuth(secret []byte, bl *blacklist.Blacklist) Middleware {
	return func(next http.Handler) http.Handler {
		return authenticate(next, secret, bl, errors.ErrTokenInvalid, false)
	}
}

// WithRefreshAuth protege el endpoint de refresh con el refresh token.
// Deja además el token crudo en el contexto: el service necesita el jti y la
// expiración del token entrante para rotarlo (revocarlo al emitir el nuevo par).
func WithRefreshAuth(secret []byte, bl *blacklist.Blacklist) Middleware {
	return func(next http.Handler) http.Handler {
		return authenticate(next, secret, bl, errors.ErrRefreshMalformed, true)
	}
}
