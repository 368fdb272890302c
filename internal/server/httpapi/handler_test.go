package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/cryptox"
	"github.com/dmitrijs2005/educloud/internal/logging"
	"github.com/dmitrijs2005/educloud/internal/server/config"
	"github.com/dmitrijs2005/educloud/internal/server/models"
	"github.com/dmitrijs2005/educloud/internal/server/replay"
	"github.com/dmitrijs2005/educloud/internal/server/users"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	keysOnce sync.Once
	privPEM  string
	pubPEM   string
	keysErr  error
)

type fixture struct {
	router *echo.Echo
	enc    *cryptox.RSAEncryptor
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	keysOnce.Do(func() { privPEM, pubPEM, keysErr = cryptox.GenerateRSAKeyPairPEM(1024) })
	require.NoError(t, keysErr)

	pub, err := cryptox.LoadRSAPublicKey(pubPEM)
	require.NoError(t, err)
	priv, err := cryptox.LoadRSAPrivateKey(privPEM)
	require.NoError(t, err)
	enc, err := cryptox.NewRSAEncryptor(pub, cryptox.PaddingPKCS1v15)
	require.NoError(t, err)
	dec, err := cryptox.NewRSADecryptor(priv, cryptox.PaddingPKCS1v15)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	f := &fixture{enc: enc, now: time.Now()}
	us := users.NewService(users.NewMemoryRepository(), cfg, users.WithBcryptCost(bcrypt.MinCost))
	guard := replay.NewGuard(cfg.NonceWindow, func() time.Time { return f.now })
	h := NewHandler(us, dec, guard, logging.Discard(), "test")
	f.router = NewRouter(cfg.BasePath, h)
	return f
}

func (f *fixture) nonce(offset time.Duration) string {
	return strconv.FormatInt(f.now.Add(offset).UnixMilli(), 10)
}

func (f *fixture) encrypt(t *testing.T, s string) string {
	t.Helper()
	ct, err := f.enc.Encrypt(s)
	require.NoError(t, err)
	return ct
}

func (f *fixture) do(t *testing.T, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, models.AuthResponse) {
	t.Helper()
	var rd *strings.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = strings.NewReader(string(b))
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var resp models.AuthResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func (f *fixture) register(t *testing.T, email, password string) (*httptest.ResponseRecorder, models.AuthResponse) {
	n := f.nonce(0)
	return f.do(t, http.MethodPost, "/api/auth/register", models.RegisterRequest{
		Nombre:    "Ana",
		Apellido1: "García",
		Email:     email,
		Password:  f.encrypt(t, password),
		UserType:  models.UserTypeStudent,
		Nonce:     n,
	}, map[string]string{common.NonceHeaderName: n})
}

func TestRegisterLoginLogout(t *testing.T) {
	f := newFixture(t)

	rec, resp := f.register(t, "ana@edu.es", "s3cret")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "ana@edu.es", resp.User.Email)
	assert.NotEmpty(t, resp.Token)

	f.now = f.now.Add(time.Millisecond)
	n := f.nonce(0)
	rec, resp = f.do(t, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Email: "ana@edu.es", Password: f.encrypt(t, "s3cret"), Nonce: n},
		map[string]string{common.NonceHeaderName: n})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	assert.Equal(t, "Login successful", resp.Message)
	token := resp.Token

	rec, resp = f.do(t, http.MethodPost, "/api/auth/logout", nil,
		map[string]string{common.AuthorizationHeaderName: "Bearer " + token})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, resp = f.do(t, http.MethodPost, "/api/auth/logout", nil,
		map[string]string{common.AuthorizationHeaderName: "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
}

func TestLogin_Rejections(t *testing.T) {
	f := newFixture(t)
	_, resp := f.register(t, "ana@edu.es", "s3cret")
	require.True(t, resp.Success)

	f.now = f.now.Add(time.Second)
	fresh := f.nonce(0)

	tests := []struct {
		name     string
		body     models.LoginRequest
		header   string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "wrong password",
			body:     models.LoginRequest{Email: "ana@edu.es", Password: f.encrypt(t, "nope"), Nonce: fresh},
			header:   fresh,
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Invalid email or password",
		},
		{
			name:     "plaintext password",
			body:     models.LoginRequest{Email: "ana@edu.es", Password: "s3cret", Nonce: f.nonce(time.Millisecond)},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Password envelope cannot be opened",
		},
		{
			name:     "header mismatch",
			body:     models.LoginRequest{Email: "ana@edu.es", Password: f.encrypt(t, "s3cret"), Nonce: fresh},
			header:   "123",
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid request nonce",
		},
		{
			name:     "stale nonce",
			body:     models.LoginRequest{Email: "ana@edu.es", Password: f.encrypt(t, "s3cret"), Nonce: f.nonce(-10 * time.Minute)},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Request expired or already processed",
		},
		{
			name:     "missing nonce",
			body:     models.LoginRequest{Email: "ana@edu.es", Password: f.encrypt(t, "s3cret")},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid request nonce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers[common.NonceHeaderName] = tt.header
			}
			rec, resp := f.do(t, http.MethodPost, "/api/auth/login", tt.body, headers)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.Empty(t, resp.Token)
		})
	}
}

func TestLogin_ReplayRejected(t *testing.T) {
	f := newFixture(t)
	_, resp := f.register(t, "ana@edu.es", "s3cret")
	require.True(t, resp.Success)

	n := f.nonce(time.Millisecond)
	body := models.LoginRequest{Email: "ana@edu.es", Password: f.encrypt(t, "s3cret"), Nonce: n}
	headers := map[string]string{common.NonceHeaderName: n}

	rec, _ := f.do(t, http.MethodPost, "/api/auth/login", body, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = f.do(t, http.MethodPost, "/api/auth/login", body, headers)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
}

func TestRegister_DuplicateAndInvalid(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.register(t, "ana@edu.es", "s3cret")
	require.Equal(t, http.StatusCreated, rec.Code)

	f.now = f.now.Add(time.Millisecond)
	rec, resp := f.register(t, "ana@edu.es", "other")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", resp.Message)

	f.now = f.now.Add(time.Millisecond)
	rec, resp = f.register(t, "not-an-email", "x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid registration data", resp.Message)
}

func TestLogout_MissingToken(t *testing.T) {
	f := newFixture(t)

	rec, resp := f.do(t, http.MethodPost, "/api/auth/logout", nil, map[string]string{common.AuthorizationHeaderName: ""})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing token", resp.Message)
}

func TestMalformedBody(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@edu.es", "s3cret")

	for _, path := range []string{"/api/api/health", "/api/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var hr models.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hr))
		assert.Equal(t, "UP", hr.Status)
		assert.Equal(t, "in-memory (1 users)", hr.Details.Database)
		assert.Equal(t, "test", hr.Details.Version)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(common.RequestIDHeaderName, "req-1")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", rec.Header().Get(common.RequestIDHeaderName))
}
