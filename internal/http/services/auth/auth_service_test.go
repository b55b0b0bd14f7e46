package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/punkauth/internal/cache"
	"github.com/dropDatabas3/punkauth/internal/email"
	dto "github.com/dropDatabas3/punkauth/internal/http/dto/auth"
	jwtx "github.com/dropDatabas3/punkauth/internal/jwt"
	"github.com/dropDatabas3/punkauth/internal/security/blacklist"
	"github.com/dropDatabas3/punkauth/internal/store/memory"
)

// plainHasher evita pagar argon2 en cada test. El contrato es el mismo.
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

// fakeSender acumula los envíos; con fail=true simula SMTP caído.
type fakeSender struct {
	sent []struct{ to, subject, html, text string }
	fail bool
}

func (f *fakeSender) Send(to, subject, html, text string) error {
	if f.fail {
		return fmt.Errorf("smtp down")
	}
	f.sent = append(f.sent, struct{ to, subject, html, text string }{to, subject, html, text})
	return nil
}

type fixture struct {
	svcs   Services
	deps   Deps
	sender *fakeSender
	bl     *blacklist.Blacklist
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	c := cache.NewMemory("test")
	t.Cleanup(func() { _ = c.Close() })
	bl := blacklist.New(c)

	sender := &fakeSender{}
	deps := Deps{
		Users:        memory.NewUserRepository(),
		Hasher:       plainHasher{},
		Issuer:       jwtx.NewIssuer([]byte("acc-secret"), []byte("ref-secret"), 15*time.Minute, 168*time.Hour),
		Blacklist:    bl,
		Mailer:       email.NewMailer(sender, "https://app.example.com"),
		ResetSecret:  []byte("reset-secret"),
		VerifySecret: []byte("verify-secret"),
		ResetTTL:     time.Hour,
		VerifyTTL:    24 * time.Hour,
	}
	return &fixture{svcs: NewServices(deps), deps: deps, sender: sender, bl: bl}
}

func (f *fixture) signup(t *testing.T, name, mail, pass string) *dto.AuthResponse {
	t.Helper()
	res, err := f.svcs.Register.Register(context.Background(), dto.SignupRequest{
		Name: name, Email: mail, Password: pass,
	})
	require.NoError(t, err)
	return res
}

// Busca el token en el último mail enviado (link ...?token=<jwt>).
func (f *fixture) lastToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sender.sent)
	body := f.sender.sent[len(f.sender.sent)-1].text
	i := strings.Index(body, "token=")
	require.GreaterOrEqual(t, i, 0, "no token link in email body")
	tok := body[i+len("token="):]
	if j := strings.IndexAny(tok, " \r\n"); j >= 0 {
		tok = tok[:j]
	}
	return tok
}

// ─────────────── Signup / Login ───────────────

func TestRegister_YLuegoLogin(t *testing.T) {
	f := newFixture(t)

	res := f.signup(t, "Alice", "a@b.com", "pw123456")
	assert.Equal(t, "a@b.com", res.User.Email)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.RefreshToken)

	got, err := f.svcs.Login.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, got.User.ID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Alice", "a@b.com", "pw123456")

	_, err := f.svcs.Register.Register(context.Background(), dto.SignupRequest{
		Name: "Alice2", Email: "a@b.com", Password: "pw223344",
	})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegister_NormalizaEmail(t *testing.T) {
	f := newFixture(t)
	res := f.signup(t, "Alice", "  A@B.Com ", "pw123456")
	assert.Equal(t, "a@b.com", res.User.Email)

	_, err := f.svcs.Login.Login(context.Background(), dto.LoginRequest{Email: "A@B.COM", Password: "pw123456"})
	assert.NoError(t, err)
}

func TestRegister_PasswordCorto(t *testing.T) {
	f := newFixture(t)
	_, err := f.svcs.Register.Register(context.Background(), dto.SignupRequest{
		Name: "Alice", Email: "a@b.com", Password: "corto",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Alice", "a@b.com", "pw123456")

	_, err := f.svcs.Login.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "otra-cosa"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UsuarioInexistenteMismoError(t *testing.T) {
	f := newFixture(t)
	_, err := f.svcs.Login.Login(context.Background(), dto.LoginRequest{Email: "nadie@b.com", Password: "pw123456"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// login seguido de verify del access token: claims con el mismo subject.
func TestLogin_AccessTokenVerificable(t *testing.T) {
	f := newFixture(t)
	res := f.signup(t, "Alice", "a@b.com", "pw123456")

	claims, err := jwtx.Verify(res.Token, f.deps.Issuer.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.Subject)
	assert.NotEmpty(t, claims.JTI())
}

// ─────────────── Logout ───────────────

func TestLogout_RevocaElJTI(t *testing.T) {
	f := newFixture(t)
	res := f.signup(t, "Alice", "a@b.com", "pw123456")

	require.NoError(t, f.svcs.Logout.Logout(context.Background(), res.Token))

	claims, err := jwtx.DecodeUnverified(res.Token)
	require.NoError(t, err)
	revoked, err := f.bl.IsRevoked(context.Background(), claims.JTI())
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogout_TokenVencidoEsNoOp(t *testing.T) {
	f := newFixture(t)

	jti := uuid.NewString()
	tok, err := jwtx.Sign(uuid.NewString(), "a@b.com", jti, []byte("acc-secret"), -time.Minute)
	require.NoError(t, err)

	require.NoError(t, f.svcs.Logout.Logout(context.Background(), tok))

	// No debe haber escrito nada en la blacklist.
	revoked, err := f.bl.IsRevoked(context.Background(), jti)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestLogout_SinJTIEsMalformed(t *testing.T) {
	f := newFixture(t)
	tok, err := jwtx.Sign(uuid.NewString(), "a@b.com", "", []byte("acc-secret"), time.Minute)
	require.NoError(t, err)

	err = f.svcs.Logout.Logout(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestLogout_BasuraEsMalformed(t *testing.T) {
	f := newFixture(t)
	err := f.svcs.Logout.Logout(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

// ─────────────── Refresh ───────────────

func TestRefresh_RotaYRevocaElViejo(t *testing.T) {
	f := newFixture(t)
	res := f.signup(t, "Alice", "a@b.com", "pw123456")

	got, err := f.svcs.Refresh.Refresh(context.Background(), res.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, res.RefreshToken, got.RefreshToken)

	// El refresh viejo quedó en la blacklist.
	old, err := jwtx.Verify(res.RefreshToken, f.deps.Issuer.RefreshSecret)
	require.NoError(t, err)
	revoked, err := f.bl.IsRevoked(context.Background(), old.JTI())
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRefresh_UsuarioBorrado(t *testing.T) {
	f := newFixture(t)
	res := f.signup(t, "Alice", "a@b.com", "pw123456")
	require.NoError(t, f.deps.Users.SoftDelete(context.Background(), res.User.ID))

	_, err := f.svcs.Refresh.Refresh(context.Background(), res.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ─────────────── Forgot / Reset ───────────────

func TestForgot_EnviaMailConToken(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Alice", "a@b.com", "pw123456")

	require.NoError(t, f.svcs.Reset.Forgot(context.Background(), "a@b.com"))
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "a@b.com", f.sender.sent[0].to)

	tok := f.lastToken(t)
	claims, err := jwtx.Verify(tok, f.deps.ResetSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.JTI())
}

func TestForgot_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.svcs.Reset.Forgot(context.Background(), "nadie@b.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestForgot_SMTPCaidoNoReportaExito(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Alice", "a@b.com", "pw123456")
	f.sender.fail = true

	err := f.svcs.Reset.Forgot(context.Background(), "a@b.com")
	assert.ErrorIs(t, err, ErrEmailDelivery)
}

func TestReset_CambiaPasswordYSegundoCanjeFalla(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Alice", "a@b.com", "pw123456")
	require.NoError(t, f.svcs.Reset.Forgot(context.Background(), "a@b.com"))
	tok := f.lastToken(t)

	require.NoError(t, f.svcs.Reset.Reset(context.Background(), tok, "newpw1234"))

	// Password viejo ya no sirve, el nuevo sí.
	_, err := f.svcs.Login.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "pw123456"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svcs.Login.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "newpw1234"})
	assert.NoError(t, err)

	// Segundo canje con el mismo token: AlreadyUsed, aunque el password sea otro.
	err = f.svcs.Reset.Reset(context.Background(), tok, "other12345")
	assert.ErrorIs(t, err, ErrTokenAlreadyUsed)
}

func TestReset_TokenVencidoGanaAAlreadyUsed(t *testing.T) {
	f := newFixture(t)
	res := f.signup(t, "Alice", "a@b.com", "pw123456")

	jti := uuid.NewString()
	tok, err := jwtx.Sign(res.User.ID, "a@b.com", jti, f.deps.ResetSecret, -time.Minute)
	require.NoError(t, err)

	// Aunque el jti esté revocado, el vencimiento se reporta primero.
	require.NoError(t, f.bl.Revoke(context.Background(), jti, time.Hour))

	err = f.svcs.Reset.Reset(context.Background(), tok, "newpw1234")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestReset_TokenDeOtroSecret(t *testing.T) {
	f := newFixture(t)
	res := f.signup(t, "Alice", "a@b.com", "pw123456")

	// Un access token no sirve como token de reset.
	err := f.svcs.Reset.Reset(context.Background(), res.Token, "newpw1234")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

// ─────────────── Verify ───────────────

func TestVerify_FlujoCompleto(t *testing.T) {
	f := newFixture(t)
	res := f.signup(t, "Alice", "a@b.com", "pw123456")
	assert.False(t, res.User.IsVerified)

	require.NoError(t, f.svcs.Verify.Send(context.Background(), res.User.ID))
	tok := f.lastToken(t)

	already, err := f.svcs.Verify.Confirm(context.Background(), tok)
	require.NoError(t, err)
	assert.False(t, already)

	user, err := f.deps.Users.GetByID(context.Background(), res.User.ID)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// El token que efectivamente verificó queda quemado.
	_, err = f.svcs.Verify.Confirm(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenAlreadyUsed)
}

// Dos tokens de verificación vigentes para el mismo usuario: el segundo canje
// llega con el flag ya prendido y reporta "ya verificado" sin error, sin
// re-mutar y sin quemar ese token.
func TestVerify_ConfirmYaVerificadoEsIdempotente(t *testing.T) {
	f := newFixture(t)
	res := f.signup(t, "Alice", "a@b.com", "pw123456")
	require.NoError(t, f.deps.Users.SetEmailVerified(context.Background(), res.User.ID))

	jti := uuid.NewString()
	tok, err := jwtx.Sign(res.User.ID, "a@b.com", jti, f.deps.VerifySecret, 24*time.Hour)
	require.NoError(t, err)

	already, err := f.svcs.Verify.Confirm(context.Background(), tok)
	require.NoError(t, err)
	assert.True(t, already)

	// El token NO se quemó: el canje repetido vuelve a reportar lo mismo.
	revoked, err := f.bl.IsRevoked(context.Background(), jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	already, err = f.svcs.Verify.Confirm(context.Background(), tok)
	require.NoError(t, err)
	assert.True(t, already)
}

func TestVerify_SendYaVerificadoEsNoOp(t *testing.T) {
	f := newFixture(t)
	res := f.signup(t, "Alice", "a@b.com", "pw123456")
	require.NoError(t, f.deps.Users.SetEmailVerified(context.Background(), res.User.ID))

	require.NoError(t, f.svcs.Verify.Send(context.Background(), res.User.ID))
	assert.Empty(t, f.sender.sent)
}

func TestVerify_ConfirmTokenVencido(t *testing.T) {
	f := newFixture(t)
	res := f.signup(t, "Alice", "a@b.com", "pw123456")

	tok, err := jwtx.Sign(res.User.ID, "a@b.com", uuid.NewString(), f.deps.VerifySecret, -time.Minute)
	require.NoError(t, err)

	_, err = f.svcs.Verify.Confirm(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_SendUsuarioInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.svcs.Verify.Send(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// Sanity: los sentinels no se pisan entre sí.
func TestSentinelsSonDistintos(t *testing.T) {
	sentinels := []error{
		ErrMissingFields, ErrWeakPassword, ErrAlreadyRegistered, ErrInvalidCredentials,
		ErrUserNotFound, ErrTokenInvalid, ErrTokenExpired, ErrTokenAlreadyUsed,
		ErrTokenMalformed, ErrEmailDelivery,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b))
			}
		}
	}
}
