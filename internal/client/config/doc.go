// Package config loads runtime configuration for the EduCloud CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables (EDUCLOUD_*), after loading a dotenv file given
//     with -e/-env, or ./.env when present. Variables already set in the
//     process environment win over the file.
//  3. Optional JSON file with comments, selected with -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     API base URL
//	-k string     RSA public key PEM file
//	-d string     local database path
//	-i int        online status check interval (seconds)
//	-t duration   request timeout
//
// # JSON schema
//
//	{
//	  // backend
//	  "api_base_url": "https://educloud.example/api",
//	  "rsa_public_key_file": "keys/public.pem",
//	  "rsa_padding": "pkcs1v15",
//	  "database_path": "educloud.db",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "health_timeout": "5s",
//	  "log_level": "info",
//	}
//
// The AES secret and the public key text are deliberately not read from
// JSON. Call (*Config).Validate before use; the CLI refuses to start when it
// fails.
package config
