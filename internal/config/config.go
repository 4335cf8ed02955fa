package config

import (
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/filex"
	"github.com/dmitrijs2005/gophvault/internal/password"
)

// Unlock modes.
const (
	AuthPassphrase = "passphrase"
	AuthNone       = "none"
)

// Config holds runtime settings for the GophVault CLI.
type Config struct {
	DatabaseDriver  string
	DatabaseDSN     string
	KeyStoreDir     string
	LogLevel        string
	AuthMode        string
	MaxAuthAttempts int
	PasswordLength  int
}

// LoadDefaults points storage at the per-user data directory.
func (c *Config) LoadDefaults() {
	dir := filex.DataDir()
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = filepath.Join(dir, "vault.db")
	c.KeyStoreDir = filepath.Join(dir, "keys")
	c.LogLevel = "warn"
	c.AuthMode = AuthPassphrase
	c.MaxAuthAttempts = 3
	c.PasswordLength = password.DefaultLength
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.DatabaseDSN == "":
		return fmt.Errorf("%w: database DSN is empty", common.ErrorValidation)
	case c.KeyStoreDir == "":
		return fmt.Errorf("%w: key store directory is empty", common.ErrorValidation)
	case c.AuthMode != AuthPassphrase && c.AuthMode != AuthNone:
		return fmt.Errorf("%w: unknown auth mode %q", common.ErrorValidation, c.AuthMode)
	case c.MaxAuthAttempts < 1:
		return fmt.Errorf("%w: auth attempts must be positive", common.ErrorValidation)
	case c.PasswordLength < password.MinLength || c.PasswordLength > password.MaxLength:
		return fmt.Errorf("%w: password length must be within %d..%d",
			common.ErrorValidation, password.MinLength, password.MaxLength)
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the JSON file named in
// args (if any), then the flags in args. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
