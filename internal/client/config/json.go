package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/educloud/internal/flagx"
	"github.com/tidwall/jsonc"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// strings accepted by time.ParseDuration ("3s", "500ms").
type JsonConfig struct {
	APIBaseURL          string `json:"api_base_url"`
	RSAPublicKeyFile    string `json:"rsa_public_key_file"`
	RSAPadding          string `json:"rsa_padding"`
	DatabasePath        string `json:"database_path"`
	OnlineCheckInterval string `json:"online_check_interval"`
	RequestTimeout      string `json:"request_timeout"`
	HealthTimeout       string `json:"health_timeout"`
	LogLevel            string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from -c or -config; without it nothing is loaded.
// Comments and trailing commas are allowed. Only keys present in the file
// override earlier values. Read, parse and duration errors panic.
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

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.RSAPublicKeyFile, jc.RSAPublicKeyFile)
	setString(&cfg.RSAPadding, jc.RSAPadding)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.HealthTimeout, jc.HealthTimeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string) {
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
