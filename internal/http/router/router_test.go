package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/punkauth/internal/cache"
	"github.com/dropDatabas3/punkauth/internal/email"
	authctrl "github.com/dropDatabas3/punkauth/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/punkauth/internal/http/controllers/health"
	usersctrl "github.com/dropDatabas3/punkauth/internal/http/controllers/users"
	dto "github.com/dropDatabas3/punkauth/internal/http/dto/auth"
	authsvc "github.com/dropDatabas3/punkauth/internal/http/services/auth"
	userssvc "github.com/dropDatabas3/punkauth/internal/http/services/users"
	jwtx "github.com/dropDatabas3/punkauth/internal/jwt"
	"github.com/dropDatabas3/punkauth/internal/security/blacklist"
	"github.com/dropDatabas3/punkauth/internal/security/password"
	"github.com/dropDatabas3/punkauth/internal/store/memory"
)

type fakeSender struct {
	sent []string // cuerpos de texto
}

func (f *fakeSender) Send(to, subject, html, text string) error {
	f.sent = append(f.sent, text)
	return nil
}

type fastHasher struct{}

func (fastHasher) Hash(plain string) (string, error) { return "h:" + plain, nil }
func (fastHasher) Compare(plain, digest string) bool { return digest == "h:"+plain }

var _ password.Hasher = fastHasher{}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	users := memory.NewUserRepository()
	c := cache.NewMemory("test")
	t.Cleanup(func() { _ = c.Close() })
	bl := blacklist.New(c)

	accessSecret := []byte("acc-secret")
	refreshSecret := []byte("ref-secret")

	deps := authsvc.Deps{
		Users:        users,
		Hasher:       fastHasher{},
		Issuer:       jwtx.NewIssuer(accessSecret, refreshSecret, 15*time.Minute, 168*time.Hour),
		Blacklist:    bl,
		Mailer:       email.NewMailer(&fakeSender{}, "https://app.example.com"),
		ResetSecret:  []byte("reset-secret"),
		VerifySecret: []byte("verify-secret"),
		ResetTTL:     time.Hour,
		VerifyTTL:    24 * time.Hour,
	}
	svcs := authsvc.NewServices(deps)
	usvc := userssvc.NewService(userssvc.Deps{Users: users, Hasher: fastHasher{}})

	h := New(Deps{
		Auth:          authctrl.NewControllers(svcs),
		Users:         usersctrl.NewControllers(usvc, svcs.Verify),
		Health:        healthctrl.NewController(users, c),
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		Blacklist:     bl,
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any, bearer string) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getWithBearer(t *testing.T, url, bearer string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeAuth(t *testing.T, resp *http.Response) dto.AuthResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signup(t *testing.T, ts *httptest.Server, mail string) dto.AuthResponse {
	t.Helper()
	resp := postJSON(t, ts.URL+"/auth/signup", dto.SignupRequest{
		Name: "Ana", Email: mail, Password: "pw123456",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeAuth(t, resp)
}

func TestSignupLoginYRutaProtegida(t *testing.T) {
	ts := newTestServer(t)
	res := signup(t, ts, "ana@example.com")

	resp := postJSON(t, ts.URL+"/auth/login", dto.LoginRequest{
		Email: "ana@example.com", Password: "pw123456",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeAuth(t, resp)
	assert.Equal(t, res.User.ID, login.User.ID)

	resp = getWithBearer(t, ts.URL+"/users/"+res.User.ID, login.Token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-referrer", resp.Header.Get("Referrer-Policy"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRutaProtegidaSinToken(t *testing.T) {
	ts := newTestServer(t)
	res := signup(t, ts, "ana@example.com")

	resp := getWithBearer(t, ts.URL+"/users/"+res.User.ID, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPerfilDeOtroUsuarioEs404(t *testing.T) {
	ts := newTestServer(t)
	a := signup(t, ts, "ana@example.com")
	b := signup(t, ts, "beto@example.com")

	resp := getWithBearer(t, ts.URL+"/users/"+b.User.ID, a.Token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRefreshRotaYElViejoQuedaRevocado(t *testing.T) {
	ts := newTestServer(t)
	res := signup(t, ts, "ana@example.com")

	resp := postJSON(t, ts.URL+"/auth/refresh", struct{}{}, res.RefreshToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rotated := decodeAuth(t, resp)
	assert.NotEqual(t, res.RefreshToken, rotated.RefreshToken)

	// Reusar el refresh viejo: revocado.
	resp = postJSON(t, ts.URL+"/auth/refresh", struct{}{}, res.RefreshToken)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "TOKEN_REVOKED", body["code"])
}

func TestLogoutRevocaElAccessToken(t *testing.T) {
	ts := newTestServer(t)
	res := signup(t, ts, "ana@example.com")

	resp := postJSON(t, ts.URL+"/auth/logout", struct{}{}, res.Token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getWithBearer(t, ts.URL+"/users/"+res.User.ID, res.Token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "TOKEN_REVOKED", body["code"])
}

func TestAuthNoStore(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/auth/signup", dto.SignupRequest{
		Name: "Ana", Email: "ana@example.com", Password: "pw123456",
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestRutaDesconocidaEs404JSON(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/no-existe")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadyz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsExpuestas(t *testing.T) {
	ts := newTestServer(t)
	signup(t, ts, "ana@example.com")

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestContentTypeIncorrecto(t *testing.T) {
	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/auth/login", bytes.NewReader([]byte("email=x")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
