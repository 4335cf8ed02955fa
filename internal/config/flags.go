package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophvault/internal/flagx"
)

var knownFlags = []string{"d", "dsn", "k", "l", "auth", "attempts", "len"}

// parseFlags overlays cfg with command-line flags. Flags owned by other
// components (such as -c) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("gophvault", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDriver, "d", cfg.DatabaseDriver, "database driver (sqlite, pgx, postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.KeyStoreDir, "k", cfg.KeyStoreDir, "encryption key directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.AuthMode, "auth", cfg.AuthMode, "unlock mode (passphrase, none)")
	fs.IntVar(&cfg.MaxAuthAttempts, "attempts", cfg.MaxAuthAttempts, "passphrase attempts")
	fs.IntVar(&cfg.PasswordLength, "len", cfg.PasswordLength, "default generated password length")

	return fs.Parse(flagx.FilterArgs(args, knownFlags))
}
