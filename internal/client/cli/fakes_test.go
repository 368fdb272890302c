package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/educloud/internal/client/models"
	"github.com/dmitrijs2005/educloud/internal/logging"
)

// fakeAuth implements services.AuthService for CLI tests.
type fakeAuth struct {
	mu sync.Mutex

	LoginRes    models.AuthResult
	RegisterRes models.AuthResult
	LogoutRes   models.AuthResult
	HealthRes   models.HealthStatus
	User        *models.Profile
	UserErr     error
	Claims      *models.TokenClaims
	ClaimsErr   error
	Authed      bool
	CloseErr    error

	LastEmail    string
	LastPassword string
	LastFields   models.RegisterFields
	LogoutCalls  int
	HealthCalls  int
	CloseCalls   int
}

func (f *fakeAuth) Login(_ context.Context, email, password string) models.AuthResult {
	f.LastEmail, f.LastPassword = email, password
	return f.LoginRes
}

func (f *fakeAuth) Register(_ context.Context, fields models.RegisterFields, password string) models.AuthResult {
	f.LastFields, f.LastPassword = fields, password
	return f.RegisterRes
}

func (f *fakeAuth) Logout(context.Context) models.AuthResult {
	f.LogoutCalls++
	f.Authed = false
	return f.LogoutRes
}

func (f *fakeAuth) Health(context.Context) models.HealthStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HealthCalls++
	return f.HealthRes
}

func (f *fakeAuth) CurrentUser(context.Context) (*models.Profile, error) { return f.User, f.UserErr }
func (f *fakeAuth) IsAuthenticated(context.Context) bool                 { return f.Authed }
func (f *fakeAuth) TokenClaims(context.Context) (*models.TokenClaims, error) {
	return f.Claims, f.ClaimsErr
}

func (f *fakeAuth) Close(context.Context) error {
	f.CloseCalls++
	return f.CloseErr
}

// fakeAPI implements client.API.
type fakeAPI struct {
	LastPath string
	Reply    any
	Err      error
}

func (f *fakeAPI) Get(_ context.Context, path string, out any) error {
	f.LastPath = path
	if f.Err != nil {
		return f.Err
	}
	if p, ok := out.(*any); ok {
		*p = f.Reply
	}
	return nil
}
func (f *fakeAPI) Post(context.Context, string, any, any) error { return nil }
func (f *fakeAPI) Put(context.Context, string, any, any) error  { return nil }
func (f *fakeAPI) Delete(context.Context, string, any) error    { return nil }

func newTestApp(auth *fakeAuth, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		authService: auth,
		api:         &fakeAPI{},
		log:         logging.Discard(),
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         &out,
	}, &out
}

func stubInputs(t *testing.T, answers []string, password []byte) {
	t.Helper()
	origST, origCH, origGP := getSimpleText, getChoice, getPassword
	t.Cleanup(func() {
		getSimpleText, getChoice, getPassword = origST, origCH, origGP
	})

	i := 0
	next := func() string {
		if i >= len(answers) {
			return ""
		}
		v := answers[i]
		i++
		return v
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getChoice = func(_ *bufio.Reader, _ string, _ []string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
}
