// Package cryptox implements the vault's cipher engine: authenticated
// encryption of secret strings with AES-256-GCM, plus the passphrase key
// derivation used by the unlock gate.
package cryptox

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

const (
	// NonceSize is the GCM standard nonce length.
	NonceSize = 12
	// TagSize is the GCM authentication tag length.
	TagSize = 16
)

// KeyProvider lends the installation key for the duration of fn.
// keys.Manager satisfies it.
type KeyProvider interface {
	WithKey(ctx context.Context, fn func(key []byte) error) error
}

// Engine seals and opens secrets. The sealed layout is
//
//	nonce (12) || ciphertext || tag (16)
//
// and is what the record repository stores.
type Engine struct {
	keys KeyProvider
}

func NewEngine(keys KeyProvider) *Engine {
	return &Engine{keys: keys}
}

// Seal encrypts plaintext under the installation key with a fresh random
// nonce, so sealing the same plaintext twice gives different output.
//
// Key store failures are returned as common.ErrKeyUnavailable; a primitive
// that rejects the key yields common.ErrEncryptionFailed.
func (e *Engine) Seal(ctx context.Context, plaintext string) ([]byte, error) {
	var sealed []byte

	err := e.keys.WithKey(ctx, func(key []byte) error {
		aead, err := newGCM(key)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrEncryptionFailed, err)
		}

		nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+TagSize)
		if _, err := rand.Read(nonce); err != nil {
			return fmt.Errorf("%w: nonce: %w", common.ErrEncryptionFailed, err)
		}

		sealed = aead.Seal(nonce, nonce, []byte(plaintext), nil)
		if len(sealed) != NonceSize+len(plaintext)+TagSize {
			return fmt.Errorf("%w: unexpected sealed length", common.ErrEncryptionFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sealed, nil
}

// Open authenticates and decrypts a blob produced by Seal. A tag mismatch,
// truncated input or a payload that is not valid UTF-8 returns
// common.ErrDecryptionFailed and no plaintext.
func (e *Engine) Open(ctx context.Context, sealed []byte) (string, error) {
	if len(sealed) < NonceSize+TagSize {
		return "", fmt.Errorf("%w: sealed data too short (%d bytes)", common.ErrDecryptionFailed, len(sealed))
	}

	var out string

	err := e.keys.WithKey(ctx, func(key []byte) error {
		aead, err := newGCM(key)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
		}

		nonce, body := sealed[:NonceSize], sealed[NonceSize:]
		plaintext, err := aead.Open(nil, nonce, body, nil)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
		}
		defer common.WipeByteArray(plaintext)

		if !utf8.Valid(plaintext) {
			return fmt.Errorf("%w: payload is not valid UTF-8", common.ErrDecryptionFailed)
		}
		out = string(plaintext)
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
