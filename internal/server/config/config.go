// Package config handles configuration for the development server,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/cryptox"
)

// Config holds runtime settings for the EduCloud development server.
//
// Fields:
//   - ListenAddr: bind address of the HTTP endpoint.
//   - BasePath: prefix the auth routes are mounted under; it matches the
//     path part of the client's API base URL.
//   - RSAPrivateKey / RSAPrivateKeyFile: PEM used to open password envelopes.
//     The file wins when both are set. With neither, an ephemeral pair is
//     generated and its public half written to PublicKeyOut.
//   - RSAPadding: pkcs1v15 or oaep; must match the client.
//   - SecretKey: HMAC secret for signing session JWTs (HS256).
//   - TokenValidityDuration: lifetime of a session token.
//   - NonceWindow: how far a request nonce may drift from server time.
type Config struct {
	ListenAddr            string
	BasePath              string
	RSAPrivateKey         string
	RSAPrivateKeyFile     string
	RSAPadding            string
	PublicKeyOut          string
	SecretKey             string
	TokenValidityDuration time.Duration
	NonceWindow           time.Duration
	Version               string
	LogLevel              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden outside local use.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.BasePath = "/api"
	c.RSAPadding = string(cryptox.PaddingPKCS1v15)
	c.PublicKeyOut = "server_public.pem"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.NonceWindow = 5 * time.Minute
	c.Version = "dev"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reads the private key file if one is configured and checks the
// remaining settings. Every failure wraps common.ErrConfiguration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("%w: listen address is required", common.ErrConfiguration)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("%w: secret key is required", common.ErrConfiguration)
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("%w: token validity must be positive", common.ErrConfiguration)
	}
	if c.NonceWindow <= 0 {
		return fmt.Errorf("%w: nonce window must be positive", common.ErrConfiguration)
	}
	if _, err := cryptox.ParsePadding(c.RSAPadding); err != nil {
		return err
	}

	if c.RSAPrivateKeyFile != "" {
		b, err := os.ReadFile(c.RSAPrivateKeyFile)
		if err != nil {
			return fmt.Errorf("%w: read private key file: %v", common.ErrConfiguration, err)
		}
		c.RSAPrivateKey = string(b)
	}
	if c.RSAPrivateKey != "" {
		if _, err := cryptox.LoadRSAPrivateKey(c.RSAPrivateKey); err != nil {
			return err
		}
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		c.BasePath = "/" + c.BasePath
	}
	c.BasePath = strings.TrimRight(c.BasePath, "/")
	return nil
}
