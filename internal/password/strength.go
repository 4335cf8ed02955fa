package password

import (
	"strings"
	"unicode/utf8"
)

// Strength is the ordinal result of Score.
type Strength int

const (
	Weak Strength = iota
	Medium
	Strong
)

func (s Strength) String() string {
	switch s {
	case Strong:
		return "Strong"
	case Medium:
		return "Medium"
	default:
		return "Weak"
	}
}

// Progress is the fill ratio of a strength meter.
func (s Strength) Progress() float64 {
	switch s {
	case Strong:
		return 1.0
	case Medium:
		return 0.66
	default:
		return 0.33
	}
}

// Color is the meter color name.
func (s Strength) Color() string {
	switch s {
	case Strong:
		return "green"
	case Medium:
		return "orange"
	default:
		return "red"
	}
}

// Points counts the six checks a password passes: length >= 8,
// length >= 12, a lowercase letter, an uppercase letter, a digit and a
// special character. Length is counted in runes.
func Points(pw string) int {
	points := 0

	n := utf8.RuneCountInString(pw)
	if n >= 8 {
		points++
	}
	if n >= 12 {
		points++
	}

	for _, set := range []string{Lowercase, Uppercase, Digits, Special} {
		if strings.ContainsAny(pw, set) {
			points++
		}
	}
	return points
}

// Score classifies pw: 5-6 points Strong, 3-4 Medium, otherwise Weak.
// The thresholds are fixed; stored expectations depend on them.
func Score(pw string) Strength {
	switch p := Points(pw); {
	case p >= 5:
		return Strong
	case p >= 3:
		return Medium
	default:
		return Weak
	}
}
