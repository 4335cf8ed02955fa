// Package models defines the credential types shared by the vault layers.
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/password"
)

// Record is the persisted shape of a credential. The secret exists only as
// AEAD output; see cryptox.Engine for the layout.
type Record struct {
	// ID is an opaque unique identifier, immutable and never reused.
	ID string

	AccountLabel string
	Identifier   string

	// SecretCiphertext is nonce || ciphertext || tag.
	SecretCiphertext []byte

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credential is the plaintext view of a Record.
type Credential struct {
	ID           string
	AccountLabel string
	Identifier   string
	Secret       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Strength scores the secret.
func (c Credential) Strength() password.Strength {
	return password.Score(c.Secret)
}

// MaskedSecret is a fixed-width placeholder that does not leak the length.
func (c Credential) MaskedSecret() string {
	return strings.Repeat("•", 8)
}

// String omits the secret so credentials can be printed and logged safely.
func (c Credential) String() string {
	return c.AccountLabel + " (" + c.Identifier + ") " + c.MaskedSecret()
}
