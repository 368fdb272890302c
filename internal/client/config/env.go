package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/educloud/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIBaseURL       = "EDUCLOUD_API_BASE_URL"
	EnvRSAPublicKey     = "EDUCLOUD_RSA_PUBLIC_KEY"
	EnvRSAPublicKeyFile = "EDUCLOUD_RSA_PUBLIC_KEY_FILE"
	EnvRSAPadding       = "EDUCLOUD_RSA_PADDING"
	EnvAESSecretKey     = "EDUCLOUD_AES_SECRET_KEY"
	EnvDatabasePath     = "EDUCLOUD_DB_PATH"
	EnvLogLevel         = "EDUCLOUD_LOG_LEVEL"
)

const defaultEnvFile = ".env"

// loadEnvFile loads a dotenv file into the process environment without
// overriding variables that are already set. The file named by -e/-env must
// exist; the default .env is optional.
func loadEnvFile() {
	path := flagx.EnvFileFlags()
	if path == "" {
		if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

// parseEnv overlays Config with non-empty environment variables.
func parseEnv(cfg *Config) {
	loadEnvFile()

	set := func(dst *string, name string) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}

	set(&cfg.APIBaseURL, EnvAPIBaseURL)
	set(&cfg.RSAPublicKey, EnvRSAPublicKey)
	set(&cfg.RSAPublicKeyFile, EnvRSAPublicKeyFile)
	set(&cfg.RSAPadding, EnvRSAPadding)
	set(&cfg.AESSecretKey, EnvAESSecretKey)
	set(&cfg.DatabasePath, EnvDatabasePath)
	set(&cfg.LogLevel, EnvLogLevel)
}
