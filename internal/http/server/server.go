// Package server cablea la aplicación: config -> adapters -> services ->
// controllers -> router.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/punkauth/internal/cache"
	"github.com/dropDatabas3/punkauth/internal/config"
	"github.com/dropDatabas3/punkauth/internal/domain/repository"
	"github.com/dropDatabas3/punkauth/internal/email"
	authctrl "github.com/dropDatabas3/punkauth/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/punkauth/internal/http/controllers/health"
	usersctrl "github.com/dropDatabas3/punkauth/internal/http/controllers/users"
	"github.com/dropDatabas3/punkauth/internal/http/router"
	authsvc "github.com/dropDatabas3/punkauth/internal/http/services/auth"
	userssvc "github.com/dropDatabas3/punkauth/internal/http/services/users"
	jwtx "github.com/dropDatabas3/punkauth/internal/jwt"
	"github.com/dropDatabas3/punkauth/internal/observability/logger"
	"github.com/dropDatabas3/punkauth/internal/security/blacklist"
	"github.com/dropDatabas3/punkauth/internal/security/password"
	"github.com/dropDatabas3/punkauth/internal/store/memory"
	"github.com/dropDatabas3/punkauth/internal/store/pg"
)

// Build arma el handler HTTP completo a partir de la configuración.
// El cleanup devuelto cierra pool y cache; llamarlo al apagar.
func Build(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	log := logger.L().With(logger.Component("server"))

	// Store de usuarios.
	var users repository.UserRepository
	var pool *pgxpool.Pool
	switch cfg.Storage.Driver {
	case "postgres":
		var err error
		pool, err = pg.NewPool(ctx, pg.PoolConfig{
			DSN:             cfg.Storage.DSN,
			MaxConns:        cfg.Storage.Postgres.MaxConns,
			ConnMaxLifetime: cfg.PostgresConnMaxLifetime(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("server: conectando a postgres: %w", err)
		}
		users = pg.NewUserRepository(pool)
		log.Info("storage ready", logger.String("driver", "postgres"))
	case "memory":
		users = memory.NewUserRepository()
		log.Warn("storage en memoria: solo para desarrollo")
	default:
		return nil, nil, fmt.Errorf("server: storage driver desconocido %q", cfg.Storage.Driver)
	}

	// Cache (blacklist de revocación).
	cacheClient, err := cache.New(cache.Config{
		Kind:     cfg.Cache.Kind,
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Secrets.RedisPass,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   cfg.Cache.Redis.Prefix,
	})
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, nil, fmt.Errorf("server: creando cache: %w", err)
	}
	bl := blacklist.New(cacheClient)

	// Emisión y seguridad.
	issuer := jwtx.NewIssuer(
		[]byte(cfg.Secrets.JWTAccess),
		[]byte(cfg.Secrets.JWTRefresh),
		cfg.AccessTTL(),
		cfg.RefreshTTL(),
	)
	hasher := password.NewArgon2id()

	// Email.
	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.From,
		Username: cfg.SMTP.Username,
		Password: cfg.Secrets.SMTPPassword,
		TLSMode:  cfg.SMTP.TLSMode,
	})
	mailer := email.NewMailer(sender, cfg.Frontend.BaseURL)

	// Services.
	authServices := authsvc.NewServices(authsvc.Deps{
		Users:        users,
		Hasher:       hasher,
		Issuer:       issuer,
		Blacklist:    bl,
		Mailer:       mailer,
		ResetSecret:  []byte(cfg.Secrets.JWTReset),
		VerifySecret: []byte(cfg.Secrets.JWTVerify),
		ResetTTL:     cfg.ResetTTL(),
		VerifyTTL:    cfg.VerifyTTL(),
	})
	usersService := userssvc.NewService(userssvc.Deps{Users: users, Hasher: hasher})

	// Controllers y router.
	handler := router.New(router.Deps{
		Auth:          authctrl.NewControllers(authServices),
		Users:         usersctrl.NewControllers(usersService, authServices.Verify),
		Health:        healthctrl.NewController(users, cacheClient),
		AccessSecret:  []byte(cfg.Secrets.JWTAccess),
		RefreshSecret: []byte(cfg.Secrets.JWTRefresh),
		Blacklist:     bl,
	})

	cleanup := func() {
		_ = cacheClient.Close()
		if pool != nil {
			pool.Close()
		}
	}
	return handler, cleanup, nil
}
