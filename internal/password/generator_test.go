package password

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ExactLength(t *testing.T) {
	classSets := []Class{Upper, Lower, Digit, Symbol, Upper | Digit, AllClasses}
	for _, c := range classSets {
		for _, n := range []int{0, 1, 8, 16, 32, 100} {
			pw, err := Generate(n, c)
			require.NoError(t, err)
			assert.Len(t, pw, n, "classes=%s n=%d", c, n)
		}
	}
}

func TestGenerate_EmptyClassSetReturnsEmptyString(t *testing.T) {
	for _, n := range []int{0, 8, 32, 1000} {
		pw, err := Generate(n, 0)
		require.NoError(t, err)
		assert.Equal(t, "", pw)
	}
}

func TestGenerate_NegativeLength(t *testing.T) {
	_, err := Generate(-1, AllClasses)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestGenerate_OnlyUsesEnabledAlphabet(t *testing.T) {
	tests := []struct {
		classes Class
		set     string
	}{
		{Upper, Uppercase},
		{Lower, Lowercase},
		{Digit, Digits},
		{Symbol, Special},
		{Lower | Digit, Lowercase + Digits},
	}
	for _, tt := range tests {
		pw, err := Generate(256, tt.classes)
		require.NoError(t, err)
		for _, r := range pw {
			require.True(t, strings.ContainsRune(tt.set, r), "unexpected %q for %s", r, tt.classes)
		}
	}
}

func TestGenerate_VariesBetweenCalls(t *testing.T) {
	a, err := Generate(32, AllClasses)
	require.NoError(t, err)
	b, err := Generate(32, AllClasses)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerate_AllSymbolsScoreSpecialPoint(t *testing.T) {
	pw, err := Generate(1, Symbol)
	require.NoError(t, err)
	assert.Equal(t, 1, Points(pw))
}

func TestPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 16, p.Length)
	assert.Equal(t, AllClasses, p.Classes)

	pw, err := p.Generate()
	require.NoError(t, err)
	assert.Len(t, pw, 16)

	for _, n := range []int{MinLength - 1, MaxLength + 1} {
		_, err := Policy{Length: n, Classes: AllClasses}.Generate()
		require.ErrorIs(t, err, common.ErrorValidation, "length %d", n)
	}
	require.NoError(t, Policy{Length: MinLength}.Validate())
	require.NoError(t, Policy{Length: MaxLength}.Validate())
}

func TestParseClasses(t *testing.T) {
	tests := []struct {
		in   string
		want Class
	}{
		{"", 0},
		{"none", 0},
		{"upper", Upper},
		{"upper, lower", Upper | Lower},
		{"digits,special", Digit | Symbol},
		{"ALL", AllClasses},
		{"symbol,lowercase", Symbol | Lower},
	}
	for _, tt := range tests {
		got, err := ParseClasses(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseClasses("upper,emoji")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestClass_StringAndAlphabet(t *testing.T) {
	assert.Equal(t, "none", Class(0).String())
	assert.Equal(t, "upper,lower,digit,special", AllClasses.String())
	assert.Equal(t, Uppercase+Lowercase+Digits+Special, AllClasses.Alphabet())
	assert.Equal(t, Digits+Special, (Symbol | Digit).Alphabet())
	assert.Empty(t, Class(0).Alphabet())
}
