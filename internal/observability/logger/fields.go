package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar HTTP.

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field { return zap.String("request_id", v) }

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field { return zap.String("method", v) }

// Path crea un campo para el path del request.
func Path(v string) zap.Field { return zap.String("path", v) }

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field { return zap.Int("status", v) }

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }

// Bytes crea un campo para los bytes escritos en la respuesta.
func Bytes(v int) zap.Field { return zap.Int("bytes", v) }

// Campos estándar de negocio.

// UserID crea un campo para el ID del usuario.
func UserID(v string) zap.Field { return zap.String("user_id", v) }

// Email crea un campo para el email del usuario.
func Email(v string) zap.Field { return zap.String("email", v) }

// JTI crea un campo para el identificador de un token.
func JTI(v string) zap.Field { return zap.String("jti", v) }

// Campos de diagnóstico.

// Layer identifica la capa que emite el log ("controller", "service", "store").
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Component identifica el componente ("auth.login", "email.smtp", ...).
func Component(v string) zap.Field { return zap.String("component", v) }

// Op identifica la operación en curso.
func Op(v string) zap.Field { return zap.String("op", v) }

// Err crea un campo de error estándar.
func Err(err error) zap.Field { return zap.Error(err) }

// Genéricos (shortcuts de zap para no importar zap en los call sites).

func String(key, v string) zap.Field           { return zap.String(key, v) }
func Int(key string, v int) zap.Field          { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field        { return zap.Bool(key, v) }
func Any(key string, v any) zap.Field          { return zap.Any(key, v) }
func Duration(v time.Duration) zap.Field       { return zap.Duration("duration", v) }
func Time(key string, v time.Time) zap.Field   { return zap.Time(key, v) }
