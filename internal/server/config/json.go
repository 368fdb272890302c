package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/educloud/internal/flagx"
	"github.com/tidwall/jsonc"
)

// JsonConfig is the on-disk shape of the server configuration. Durations are
// strings accepted by time.ParseDuration ("24h", "5m").
type JsonConfig struct {
	ListenAddr            string `json:"listen_addr"`
	BasePath              string `json:"base_path"`
	RSAPrivateKeyFile     string `json:"rsa_private_key_file"`
	RSAPadding            string `json:"rsa_padding"`
	PublicKeyOut          string `json:"public_key_out"`
	SecretKey             string `json:"secret_key"`
	TokenValidityDuration string `json:"token_validity_duration"`
	NonceWindow           string `json:"nonce_window"`
	Version               string `json:"version"`
	LogLevel              string `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config into cfg. Without the flag nothing is loaded. Keys missing from the
// file keep their previous values. Read and parse errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		panic(err)
	}

	for dst, v := range map[*string]string{
		&cfg.ListenAddr:        jc.ListenAddr,
		&cfg.BasePath:          jc.BasePath,
		&cfg.RSAPrivateKeyFile: jc.RSAPrivateKeyFile,
		&cfg.RSAPadding:        jc.RSAPadding,
		&cfg.PublicKeyOut:      jc.PublicKeyOut,
		&cfg.SecretKey:         jc.SecretKey,
		&cfg.Version:           jc.Version,
		&cfg.LogLevel:          jc.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}

	for dst, v := range map[*time.Duration]string{
		&cfg.TokenValidityDuration: jc.TokenValidityDuration,
		&cfg.NonceWindow:           jc.NonceWindow,
	} {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		*dst = d
	}
}
