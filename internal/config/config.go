// Package config carga la configuración del servicio: YAML opcional +
// overrides por variables de entorno. Los secrets SOLO viven en el entorno
// (o .env en dev, cargado por godotenv en main).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env string `yaml:"env"`
		// Nivel de log: debug | info | warn | error
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Frontend struct {
		// Base pública del frontend; arma los links de reset/verify.
		BaseURL string `yaml:"base_url"`
	} `yaml:"frontend"`

	Storage struct {
		// "postgres" | "memory"
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxConns        int32  `yaml:"max_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		// "redis" | "memory"
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	JWT struct {
		AccessTTL  string `yaml:"access_ttl"`  // default 15m
		RefreshTTL string `yaml:"refresh_ttl"` // default 168h
		ResetTTL   string `yaml:"reset_ttl"`   // default 1h
		VerifyTTL  string `yaml:"verify_ttl"`  // default 24h
	} `yaml:"jwt"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		From     string `yaml:"from"`
		Username string `yaml:"username"`
		TLSMode  string `yaml:"tls_mode"`
	} `yaml:"smtp"`

	// Secrets: nunca en YAML.
	Secrets Secrets `yaml:"-"`
}

// Secrets agrupa el material sensible leído del entorno.
type Secrets struct {
	JWTAccess    string // JWT_SECRET
	JWTRefresh   string // JWT_REFRESH_SECRET
	JWTReset     string // JWT_RESET_PASSWORD_SECRET
	JWTVerify    string // JWT_VERIFY_EMAIL_SECRET
	SMTPPassword string // SMTP_PASSWORD
	RedisPass    string // REDIS_PASSWORD
}

// Load lee el YAML (si existe) y aplica defaults y overrides de entorno.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("config: parseando %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Sin archivo: solo entorno + defaults.
		default:
			return nil, fmt.Errorf("config: leyendo %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	overrideStr(&cfg.App.Env, "APP_ENV")
	overrideStr(&cfg.App.LogLevel, "LOG_LEVEL")
	overrideStr(&cfg.Server.Addr, "SERVER_ADDR")
	overrideStr(&cfg.Frontend.BaseURL, "FRONTEND_URL")
	overrideStr(&cfg.Storage.Driver, "STORAGE_DRIVER")
	overrideStr(&cfg.Storage.DSN, "DATABASE_URL")
	overrideStr(&cfg.Cache.Kind, "CACHE_KIND")
	overrideStr(&cfg.Cache.Redis.Addr, "REDIS_ADDR")
	overrideInt(&cfg.Cache.Redis.DB, "REDIS_DB")
	overrideStr(&cfg.JWT.AccessTTL, "JWT_EXPIRATION")
	overrideStr(&cfg.JWT.RefreshTTL, "JWT_REFRESH_EXPIRATION")
	overrideStr(&cfg.JWT.ResetTTL, "JWT_RESET_PASSWORD_EXPIRATION")
	overrideStr(&cfg.JWT.VerifyTTL, "JWT_VERIFY_EMAIL_EXPIRATION")
	overrideStr(&cfg.SMTP.Host, "SMTP_HOST")
	overrideInt(&cfg.SMTP.Port, "SMTP_PORT")
	overrideStr(&cfg.SMTP.From, "EMAIL_FROM")
	overrideStr(&cfg.SMTP.Username, "SMTP_USERNAME")

	cfg.Secrets = Secrets{
		JWTAccess:    os.Getenv("JWT_SECRET"),
		JWTRefresh:   os.Getenv("JWT_REFRESH_SECRET"),
		JWTReset:     os.Getenv("JWT_RESET_PASSWORD_SECRET"),
		JWTVerify:    os.Getenv("JWT_VERIFY_EMAIL_SECRET"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
	}
}

func applyDefaults(cfg *Config) {
	def(&cfg.App.Env, "dev")
	def(&cfg.App.LogLevel, "info")
	def(&cfg.Server.Addr, ":8080")
	def(&cfg.Frontend.BaseURL, "http://localhost:3000")
	def(&cfg.Storage.Driver, "memory")
	def(&cfg.Cache.Kind, "memory")
	def(&cfg.Cache.Redis.Prefix, "punkauth")
	def(&cfg.JWT.AccessTTL, "15m")
	def(&cfg.JWT.RefreshTTL, "168h")
	def(&cfg.JWT.ResetTTL, "1h")
	def(&cfg.JWT.VerifyTTL, "24h")
	def(&cfg.SMTP.TLSMode, "starttls")
}

func validate(cfg *Config) error {
	if cfg.Storage.Driver == "postgres" && cfg.Storage.DSN == "" {
		return fmt.Errorf("config: storage.driver=postgres requiere DATABASE_URL")
	}
	for name, v := range map[string]string{
		"JWT_SECRET":                cfg.Secrets.JWTAccess,
		"JWT_REFRESH_SECRET":        cfg.Secrets.JWTRefresh,
		"JWT_RESET_PASSWORD_SECRET": cfg.Secrets.JWTReset,
		"JWT_VERIFY_EMAIL_SECRET":   cfg.Secrets.JWTVerify,
	} {
		if v == "" {
			return fmt.Errorf("config: falta el secret %s en el entorno", name)
		}
	}
	return nil
}

// Duraciones parseadas con fallback: los TTLs ya vienen validados por defaults.

func (c *Config) AccessTTL() time.Duration  { return durOr(c.JWT.AccessTTL, 15*time.Minute) }
func (c *Config) RefreshTTL() time.Duration { return durOr(c.JWT.RefreshTTL, 168*time.Hour) }
func (c *Config) ResetTTL() time.Duration   { return durOr(c.JWT.ResetTTL, time.Hour) }
func (c *Config) VerifyTTL() time.Duration  { return durOr(c.JWT.VerifyTTL, 24*time.Hour) }

func (c *Config) PostgresConnMaxLifetime() time.Duration {
	return durOr(c.Storage.Postgres.ConnMaxLifetime, 30*time.Minute)
}

func durOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func overrideStr(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func overrideInt[T int | int32](dst *T, env string) {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = T(n)
		}
	}
}

func def(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
