// Package common contains shared constants and sentinel errors used across
// GophVault components.
package common

// KeyTag identifies the single installation encryption key inside the
// secure key store.
const KeyTag = "com.gophvault.encryptionkey"

// KeySize is the length in bytes of the installation encryption key (AES-256).
const KeySize = 32
