package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophvault/internal/flagx"
)

// JsonConfig is the on-disk shape. Pointer fields tell "absent" apart from
// a zero value so a partial file only overrides what it names.
type JsonConfig struct {
	DatabaseDriver  *string `json:"database_driver"`
	DatabaseDSN     *string `json:"database_dsn"`
	KeyStoreDir     *string `json:"key_store_dir"`
	LogLevel        *string `json:"log_level"`
	AuthMode        *string `json:"auth_mode"`
	MaxAuthAttempts *int    `json:"max_auth_attempts"`
	PasswordLength  *int    `json:"password_length"`
}

// parseJson overlays cfg with the file given by -c / -config. Without
// either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.DatabaseDriver, jc.DatabaseDriver)
	setIf(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIf(&cfg.KeyStoreDir, jc.KeyStoreDir)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.AuthMode, jc.AuthMode)
	setIf(&cfg.MaxAuthAttempts, jc.MaxAuthAttempts)
	setIf(&cfg.PasswordLength, jc.PasswordLength)
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
