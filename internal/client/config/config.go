package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/cryptox"
)

// Config holds runtime settings for the EduCloud CLI.
//
// Key material (RSAPublicKey, AESSecretKey) normally arrives through the
// environment or a dotenv file; everything else can also come from JSON or
// flags.
type Config struct {
	APIBaseURL          string
	RSAPublicKey        string
	RSAPublicKeyFile    string
	RSAPadding          string
	AESSecretKey        string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	HealthTimeout       time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.RSAPadding = string(cryptox.PaddingPKCS1v15)
	c.DatabasePath = "educloud.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 0
	c.HealthTimeout = 5 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and dotenv file), JSON (if present) and command-line flags
// (if present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate loads the public key file, which takes precedence over inline key
// text when both are set, and checks that the key material
// needed at startup is present and usable. Every failure wraps
// common.ErrConfiguration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("%w: API base URL is required", common.ErrConfiguration)
	}
	if c.AESSecretKey == "" {
		return fmt.Errorf("%w: AES secret key is required", common.ErrConfiguration)
	}

	if c.RSAPublicKeyFile != "" {
		b, err := os.ReadFile(c.RSAPublicKeyFile)
		if err != nil {
			return fmt.Errorf("%w: read public key file: %v", common.ErrConfiguration, err)
		}
		c.RSAPublicKey = string(b)
	}
	if c.RSAPublicKey == "" {
		return fmt.Errorf("%w: RSA public key is required", common.ErrConfiguration)
	}
	if _, err := cryptox.LoadRSAPublicKey(c.RSAPublicKey); err != nil {
		return err
	}
	if _, err := cryptox.ParsePadding(c.RSAPadding); err != nil {
		return err
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("%w: online check interval must be positive", common.ErrConfiguration)
	}
	return nil
}
