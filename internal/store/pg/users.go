package pg

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/punkauth/internal/domain/repository"
)

// userRepo implementa repository.UserRepository.
// Todas las queries filtran deleted_at IS NULL: un usuario soft-deleted es
// indistinguible de uno inexistente.
type userRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository crea el repositorio de usuarios sobre el pool dado.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepo{pool: pool}
}

const userColumns = `id, email, name, password_hash, is_verified, created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var u repository.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsVerified,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	id := uuid.NewString()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO app_user (id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		id, strings.ToLower(input.Email), input.Name, input.PasswordHash,
	)
	u, err := scanUser(row)
	if err != nil {
		// 23505 = unique_violation sobre el índice parcial de emails activos
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM app_user
		WHERE email = $1 AND deleted_at IS NULL`,
		strings.ToLower(email),
	)
	return scanUser(row)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM app_user
		WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	return scanUser(row)
}

func (r *userRepo) Update(ctx context.Context, id string, input repository.UpdateUserInput) (*repository.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE app_user
		   SET name = COALESCE($2, name), updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+userColumns,
		id, input.Name,
	)
	return scanUser(row)
}

func (r *userRepo) UpdatePasswordHash(ctx context.Context, id, newHash string) error {
	return r.exec(ctx, `
		UPDATE app_user SET password_hash = $2, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id, newHash,
	)
}

func (r *userRepo) SetEmailVerified(ctx context.Context, id string) error {
	return r.exec(ctx, `
		UPDATE app_user SET is_verified = TRUE, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
}

func (r *userRepo) SoftDelete(ctx context.Context, id string) error {
	return r.exec(ctx, `
		UPDATE app_user SET deleted_at = now(), updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
}

func (r *userRepo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.pool.Ping(ctx)
}

// exec corre un UPDATE que debe afectar exactamente una fila activa.
func (r *userRepo) exec(ctx context.Context, sql string, args ...any) error {
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
