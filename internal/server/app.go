// Package server wires the development backend: key material, account
// service, replay guard and the HTTP endpoint.
package server

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/educloud/internal/cryptox"
	"github.com/dmitrijs2005/educloud/internal/filex"
	"github.com/dmitrijs2005/educloud/internal/logging"
	"github.com/dmitrijs2005/educloud/internal/server/config"
	"github.com/dmitrijs2005/educloud/internal/server/httpapi"
	"github.com/dmitrijs2005/educloud/internal/server/replay"
	"github.com/dmitrijs2005/educloud/internal/server/users"
)

const ephemeralKeyBits = 2048

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	privPEM, err := privateKey(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	priv, err := cryptox.LoadRSAPrivateKey(privPEM)
	if err != nil {
		return nil, err
	}
	padding, err := cryptox.ParsePadding(cfg.RSAPadding)
	if err != nil {
		return nil, err
	}
	dec, err := cryptox.NewRSADecryptor(priv, padding)
	if err != nil {
		return nil, err
	}

	us := users.NewService(users.NewMemoryRepository(), cfg)
	guard := replay.NewGuard(cfg.NonceWindow, nil)
	h := httpapi.NewHandler(us, dec, guard, logger, cfg.Version)

	return &App{
		config: cfg,
		logger: logger,
		server: httpapi.NewServer(cfg.ListenAddr, cfg.BasePath, h, logger),
	}, nil
}

// privateKey returns the configured PEM, or generates a throwaway pair and
// writes the public half to cfg.PublicKeyOut for the client to pick up.
func privateKey(ctx context.Context, cfg *config.Config, logger logging.Logger) (string, error) {
	if cfg.RSAPrivateKey != "" {
		return cfg.RSAPrivateKey, nil
	}

	priv, pub, err := cryptox.GenerateRSAKeyPairPEM(ephemeralKeyBits)
	if err != nil {
		return "", fmt.Errorf("generate key pair: %w", err)
	}
	if cfg.PublicKeyOut != "" {
		if err := filex.WriteFileAtomic(cfg.PublicKeyOut, []byte(pub), 0o644); err != nil {
			return "", fmt.Errorf("write public key: %w", err)
		}
	}
	logger.Warn(ctx, "No RSA private key configured, generated an ephemeral pair", "public_key_out", cfg.PublicKeyOut)
	return priv, nil
}

func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...", "base_path", app.config.BasePath, "nonce_window", app.config.NonceWindow)
	return app.server.Run(ctx)
}
