// Package common defines shared constants and sentinel errors used across
// the vault layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Input errors. Recoverable: the caller must correct the input.
	ErrorValidation = errors.New("validation error")

	// Key store errors. Fatal for every cryptographic operation until resolved.
	ErrKeyUnavailable = errors.New("encryption key unavailable")

	// Cipher errors.
	ErrEncryptionFailed = errors.New("failed to encrypt secret")
	ErrDecryptionFailed = errors.New("failed to decrypt secret")

	// Authentication gate errors.
	ErrAccessDenied = errors.New("access denied")
)
