package jwt

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/punkauth/internal/domain/repository"
)

// TokenPair es el resultado de una emisión dual: access + refresh.
// DTO transitorio, no se persiste; los jtis quedan como handles de revocación.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessJTI    string
	RefreshJTI   string
}

// Issuer emite pares access/refresh ligados a un usuario.
type Issuer struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration // corto (ej: 15m)
	RefreshTTL    time.Duration // largo (ej: 168h)
}

// NewIssuer crea un Issuer con los TTLs dados.
func NewIssuer(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
}

// IssuePair firma un access y un refresh token para el usuario, cada uno con
// su propio jti (uuid v4, nunca reutilizado) y su propio secret.
//
// Las dos firmas no comparten estado mutable, así que corren en paralelo.
func (i *Issuer) IssuePair(ctx context.Context, user *repository.User) (*TokenPair, error) {
	pair := &TokenPair{
		AccessJTI:  uuid.NewString(),
		RefreshJTI: uuid.NewString(),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		tok, err := Sign(user.ID, user.Email, pair.AccessJTI, i.AccessSecret, i.AccessTTL)
		pair.AccessToken = tok
		return err
	})
	g.Go(func() error {
		tok, err := Sign(user.ID, user.Email, pair.RefreshJTI, i.RefreshSecret, i.RefreshTTL)
		pair.RefreshToken = tok
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pair, nil
}
