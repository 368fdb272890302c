package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/cryptox"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func publicKeyPEM(t *testing.T) string {
	t.Helper()
	_, pub, err := cryptox.GenerateRSAKeyPairPEM(1024)
	require.NoError(t, err)
	return pub
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Config{
		APIBaseURL:          "http://localhost:8080/api",
		RSAPadding:          "pkcs1v15",
		DatabasePath:        "educloud.db",
		OnlineCheckInterval: 3 * time.Second,
		HealthTimeout:       5 * time.Second,
		LogLevel:            "info",
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	withArgs(t)
	for _, k := range []string{EnvAPIBaseURL, EnvDatabasePath, EnvLogLevel} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
		// json overrides env
		"api_base_url": "http://json:8080/api",
		"database_path": "json.db",
	}`), 0o600))

	t.Setenv(EnvAPIBaseURL, "http://env:8080/api")
	t.Setenv(EnvDatabasePath, "env.db")
	t.Setenv(EnvLogLevel, "debug")
	withArgs(t, "-c", jsonPath, "-d", "flag.db")

	cfg := LoadConfig()
	assert.Equal(t, "http://json:8080/api", cfg.APIBaseURL)
	assert.Equal(t, "flag.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	c := &Config{}
	c.LoadDefaults()
	c.AESSecretKey = "k1"
	c.RSAPublicKey = publicKeyPEM(t)
	return c
}

func TestValidate(t *testing.T) {
	pub := publicKeyPEM(t)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing base url", func(c *Config) { c.APIBaseURL = " " }, true},
		{"missing secret", func(c *Config) { c.AESSecretKey = "" }, true},
		{"missing key", func(c *Config) { c.RSAPublicKey = "" }, true},
		{"garbage key", func(c *Config) { c.RSAPublicKey = "not a key" }, true},
		{"unknown padding", func(c *Config) { c.RSAPadding = "none" }, true},
		{"oaep padding", func(c *Config) { c.RSAPadding = "oaep" }, false},
		{"zero interval", func(c *Config) { c.OnlineCheckInterval = 0 }, true},
		{"escaped newlines", func(c *Config) { c.RSAPublicKey = escapeNewlines(pub) }, false},
		{"missing key file", func(c *Config) { c.RSAPublicKeyFile = filepath.Join(t.TempDir(), "absent.pem") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig(t)
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrConfiguration)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidate_KeyFileWins(t *testing.T) {
	pub := publicKeyPEM(t)
	path := filepath.Join(t.TempDir(), "public.pem")
	require.NoError(t, os.WriteFile(path, []byte(pub), 0o600))

	c := validConfig(t)
	c.RSAPublicKey = "stale"
	c.RSAPublicKeyFile = path

	require.NoError(t, c.Validate())
	assert.Equal(t, pub, c.RSAPublicKey)
}

func escapeNewlines(s string) string {
	out := make([]byte, 0, len(s)+16)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, '\\', 'n')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
