package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

// Bounds of the interactive generator.
const (
	MinLength     = 8
	MaxLength     = 32
	DefaultLength = 16
)

// Policy describes one generation request. It carries no identity and is
// never persisted.
type Policy struct {
	Length  int
	Classes Class
}

// DefaultPolicy is 16 characters drawn from all classes.
func DefaultPolicy() Policy {
	return Policy{Length: DefaultLength, Classes: AllClasses}
}

// Validate checks the length bounds.
func (p Policy) Validate() error {
	if p.Length < MinLength || p.Length > MaxLength {
		return fmt.Errorf("%w: length must be between %d and %d, got %d",
			common.ErrorValidation, MinLength, MaxLength, p.Length)
	}
	return nil
}

// Generate validates the policy and draws a password.
func (p Policy) Generate() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	return Generate(p.Length, p.Classes)
}

// Generate draws length characters independently and uniformly, with
// replacement, from the alphabet of the enabled classes, using crypto/rand.
//
// With no class enabled it returns "" whatever the length. Enabled classes
// are not guaranteed to appear in the result.
func Generate(length int, classes Class) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("%w: negative length %d", common.ErrorValidation, length)
	}

	alphabet := classes.Alphabet()
	if alphabet == "" {
		return "", nil
	}

	max := big.NewInt(int64(len(alphabet)))

	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("random source: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}
