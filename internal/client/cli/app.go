package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/educloud/internal/client/client"
	"github.com/dmitrijs2005/educloud/internal/client/config"
	"github.com/dmitrijs2005/educloud/internal/client/envelope"
	"github.com/dmitrijs2005/educloud/internal/client/nonce"
	"github.com/dmitrijs2005/educloud/internal/client/repositories/kv"
	"github.com/dmitrijs2005/educloud/internal/client/services"
	"github.com/dmitrijs2005/educloud/internal/client/storage"
	"github.com/dmitrijs2005/educloud/internal/client/vault"
	"github.com/dmitrijs2005/educloud/internal/cryptox"
	"github.com/dmitrijs2005/educloud/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	api         client.API
	db          *sql.DB
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer

	mu       sync.Mutex
	mode     Mode
	userName string
}

// NewApp validates the configuration and wires key material, local storage,
// the credential envelope and the HTTP client. Invalid key material is
// fatal: no App is returned.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	pub, err := cryptox.LoadRSAPublicKey(c.RSAPublicKey)
	if err != nil {
		return nil, err
	}
	padding, err := cryptox.ParsePadding(c.RSAPadding)
	if err != nil {
		return nil, err
	}
	enc, err := cryptox.NewRSAEncryptor(pub, padding)
	if err != nil {
		return nil, err
	}
	vc, err := cryptox.NewVaultCipher(c.AESSecretKey)
	if err != nil {
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	v := vault.New(vc, kv.NewSQLiteRepository(db), log)
	env := envelope.New(enc, nonce.New(nil), v, db, log)

	httpClient := client.NewHTTPClient(c.APIBaseURL, client.Options{
		Timeout:       c.RequestTimeout,
		HealthTimeout: c.HealthTimeout,
		Tokens:        env.Token,
		Logger:        log,
	})

	return &App{
		config:      c,
		authService: services.NewAuthService(httpClient, env, log),
		api:         httpClient,
		db:          db,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	a.userName = name
	a.mu.Unlock()
}

// Run starts the REPL and releases resources when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.authService.Close(ctx); err != nil {
			a.log.Warn(ctx, "closing client failed", "error", err)
		}
		if a.db != nil {
			if err := a.db.Close(); err != nil {
				a.log.Warn(ctx, "closing database failed", "error", err)
			}
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.IsAuthenticated(ctx)
}

// checkOnline probes the backend once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	if a.authService.Health(ctx).Up() {
		a.setMode(ModeOnline)
		return
	}
	a.setMode(ModeOffline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
