package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/punkauth/internal/domain/repository"
	dto "github.com/dropDatabas3/punkauth/internal/http/dto/users"
	"github.com/dropDatabas3/punkauth/internal/store/memory"
)

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	return "plain:" + plain, nil
}

func (plainHasher) Compare(plain, digest string) bool {
	return digest == "plain:"+plain
}

func newFixture(t *testing.T) (Service, repository.UserRepository, *repository.User) {
	t.Helper()
	repo := memory.NewUserRepository()
	user, err := repo.Create(context.Background(), repository.CreateUserInput{
		Email:        "ana@example.com",
		Name:         "Ana",
		PasswordHash: "plain:pw123456",
	})
	require.NoError(t, err)
	return NewService(Deps{Users: repo, Hasher: plainHasher{}}), repo, user
}

func TestGet(t *testing.T) {
	svc, _, user := newFixture(t)

	got, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "Ana", got.Name)
}

func TestGet_Inexistente(t *testing.T) {
	svc, _, _ := newFixture(t)
	_, err := svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdate_Nombre(t *testing.T) {
	svc, _, user := newFixture(t)

	name := "Ana María"
	got, err := svc.Update(context.Background(), user.ID, dto.UpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)
}

func TestUpdate_SinCampos(t *testing.T) {
	svc, _, user := newFixture(t)
	_, err := svc.Update(context.Background(), user.ID, dto.UpdateRequest{})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestDelete_SacaAlUsuarioDeLasBusquedas(t *testing.T) {
	svc, repo, user := newFixture(t)

	require.NoError(t, svc.Delete(context.Background(), user.ID))

	_, err := repo.GetByID(context.Background(), user.ID)
	assert.True(t, repository.IsNotFound(err))
	_, err = repo.GetByEmail(context.Background(), "ana@example.com")
	assert.True(t, repository.IsNotFound(err))
}

func TestDelete_LiberaElEmail(t *testing.T) {
	svc, repo, user := newFixture(t)
	require.NoError(t, svc.Delete(context.Background(), user.ID))

	// El mismo email puede registrarse de nuevo tras el soft delete.
	_, err := repo.Create(context.Background(), repository.CreateUserInput{
		Email:        "ana@example.com",
		Name:         "Ana 2",
		PasswordHash: "plain:otra",
	})
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, repo, user := newFixture(t)

	err := svc.ChangePassword(context.Background(), user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "pw123456",
		NewPassword:     "nuevo1234",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "plain:nuevo1234", got.PasswordHash)
}

func TestChangePassword_ActualIncorrecto(t *testing.T) {
	svc, _, user := newFixture(t)

	err := svc.ChangePassword(context.Background(), user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "equivocado",
		NewPassword:     "nuevo1234",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangePassword_NuevoCorto(t *testing.T) {
	svc, _, user := newFixture(t)

	err := svc.ChangePassword(context.Background(), user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "pw123456",
		NewPassword:     "corto",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
}
