// Package password scores password strength and generates random passwords.
//
// Scoring and generation share one set of character classes, so a generated
// password that draws from the special class always earns the special point.
package password

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

// Character sets. Special is the single canonical set used for both scoring
// and generation.
const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Digits    = "0123456789"
	Special   = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

// Class is a bitset of character classes.
type Class uint8

const (
	Upper Class = 1 << iota
	Lower
	Digit
	Symbol

	// AllClasses enables every class.
	AllClasses = Upper | Lower | Digit | Symbol
)

var classNames = []struct {
	class Class
	name  string
	set   string
}{
	{Upper, "upper", Uppercase},
	{Lower, "lower", Lowercase},
	{Digit, "digit", Digits},
	{Symbol, "special", Special},
}

// Has reports whether every class in other is enabled in c.
func (c Class) Has(other Class) bool { return c&other == other }

func (c Class) String() string {
	var names []string
	for _, cn := range classNames {
		if c.Has(cn.class) {
			names = append(names, cn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// Alphabet concatenates the enabled sets in the order upper, lower, digit,
// special. It is empty when no class is enabled.
func (c Class) Alphabet() string {
	var b strings.Builder
	for _, cn := range classNames {
		if c.Has(cn.class) {
			b.WriteString(cn.set)
		}
	}
	return b.String()
}

// ParseClasses reads a comma separated list such as "upper,digit".
// Accepted names: upper, lower, digit(s), special/symbol, all, none.
func ParseClasses(s string) (Class, error) {
	var c Class
	for _, raw := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch name {
		case "":
			continue
		case "upper", "uppercase":
			c |= Upper
		case "lower", "lowercase":
			c |= Lower
		case "digit", "digits", "number", "numbers":
			c |= Digit
		case "special", "symbol", "symbols":
			c |= Symbol
		case "all":
			c |= AllClasses
		case "none":
		default:
			return 0, fmt.Errorf("%w: unknown character class %q", common.ErrorValidation, raw)
		}
	}
	return c, nil
}
