package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/educloud/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-b string     route prefix (e.g., "/api")
//	-k string     RSA private key PEM file
//	-p string     RSA padding, pkcs1v15 or oaep
//	-s string     JWT HMAC secret key
//	-t int        session token validity, minutes
//	-w duration   nonce acceptance window
//
// -t is applied only when given, so a JSON validity like "90s" survives.
// Only the flags above are passed to the flag set; flagx.FilterArgs drops the
// rest so -c/-config can share the command line.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-k", "-p", "-s", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to run server")
	fs.StringVar(&cfg.BasePath, "b", cfg.BasePath, "route prefix")
	fs.StringVar(&cfg.RSAPrivateKeyFile, "k", cfg.RSAPrivateKeyFile, "RSA private key file")
	fs.StringVar(&cfg.RSAPadding, "p", cfg.RSAPadding, "RSA padding")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.DurationVar(&cfg.NonceWindow, "w", cfg.NonceWindow, "nonce window")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		}
	})
}
