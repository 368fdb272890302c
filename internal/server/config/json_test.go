package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"listen_addr":             "www.example:9000",
		"base_path":               "/edu",
		"rsa_private_key_file":    "key.pem",
		"rsa_padding":             "oaep",
		"public_key_out":          "pub.pem",
		"secret_key":              "my_secret_key",
		"token_validity_duration": "2h",
		"nonce_window":            "90s",
		"version":                 "1.2.3",
		"log_level":               "debug",
	})

	t.Run("loads from json", func(t *testing.T) {
		withArgs(t, "-config", pathFlag)

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.ListenAddr)
		assert.Equal(t, "/edu", cfg.BasePath)
		assert.Equal(t, "key.pem", cfg.RSAPrivateKeyFile)
		assert.Equal(t, "oaep", cfg.RSAPadding)
		assert.Equal(t, "pub.pem", cfg.PublicKeyOut)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 2*time.Hour, cfg.TokenValidityDuration)
		assert.Equal(t, 90*time.Second, cfg.NonceWindow)
		assert.Equal(t, "1.2.3", cfg.Version)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("no config flag leaves values alone", func(t *testing.T) {
		withArgs(t)

		cfg := defaults()
		parseJson(&cfg)
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("partial file keeps earlier values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"secret_key": "s"})
		withArgs(t, "-c", partial)

		cfg := defaults()
		parseJson(&cfg)
		assert.Equal(t, "s", cfg.SecretKey)
		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.Equal(t, 5*time.Minute, cfg.NonceWindow)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		withArgs(t, "-config", bad)

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("invalid duration panics", func(t *testing.T) {
		bad := writeTempJSON(t, dir, "dur.json", map[string]any{"nonce_window": "forever"})
		withArgs(t, "-c", bad)

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
