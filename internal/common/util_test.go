package common

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandByteArray(t *testing.T) {
	for _, n := range []int{0, 12, 32} {
		buf := GenerateRandByteArray(n)
		require.NotNil(t, buf)
		assert.Len(t, buf, n)
	}

	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	assert.False(t, bytes.Equal(a, b), "two 32-byte draws should differ")
}

func TestWipeByteArray(t *testing.T) {
	b := []byte("master passphrase")
	WipeByteArray(b)
	assert.Equal(t, make([]byte, len("master passphrase")), b)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	for _, sentinel := range []error{
		ErrorNotFound, ErrorValidation, ErrKeyUnavailable,
		ErrEncryptionFailed, ErrDecryptionFailed, ErrAccessDenied,
	} {
		wrapped := fmt.Errorf("outer: %w", fmt.Errorf("%w: detail", sentinel))
		assert.True(t, errors.Is(wrapped, sentinel), sentinel.Error())
	}
}
