// Package config loads runtime configuration for the GophVault CLI.
//
// # Sources and precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # Supported flags
//
//	-d string      database driver: sqlite, pgx or postgres
//	-dsn string    database DSN (SQLite file path or PostgreSQL URL)
//	-k string      directory holding the encryption key file
//	-l string      log level: debug, info, warn, error
//	-auth string   unlock mode: passphrase or none
//	-attempts int  passphrase attempts before the vault stays locked
//	-len int       default generated password length
//
// # JSON schema
//
//	{
//	  "database_driver": "sqlite",
//	  "database_dsn": "/home/me/.config/gophvault/vault.db",
//	  "key_store_dir": "/home/me/.config/gophvault/keys",
//	  "log_level": "warn",
//	  "auth_mode": "passphrase",
//	  "max_auth_attempts": 3,
//	  "password_length": 16
//	}
//
// Fields missing from the file keep their default value. Environment
// variables are not read.
package config
