package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "127.0.0.1:9090", "-b", "/v1", "-k", "key.pem", "-p", "oaep",
				"-s", "secret", "-t", "90", "-w", "30s"},
			expected: &Config{
				ListenAddr:            "127.0.0.1:9090",
				BasePath:              "/v1",
				RSAPrivateKeyFile:     "key.pem",
				RSAPadding:            "oaep",
				SecretKey:             "secret",
				TokenValidityDuration: 90 * time.Minute,
				NonceWindow:           30 * time.Second,
			},
		},
		{
			name:        "bad duration",
			args:        []string{"-w", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)

			config := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestLoadConfig_SubMinuteValidityFromJSONSurvivesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token_validity_duration": "90s"}`), 0o600))

	withArgs(t, "-c", path)
	c := LoadConfig()
	assert.Equal(t, 90*time.Second, c.TokenValidityDuration)
	require.NoError(t, c.Validate())

	withArgs(t, "-c", path, "-t", "5")
	c = LoadConfig()
	assert.Equal(t, 5*time.Minute, c.TokenValidityDuration)
}
