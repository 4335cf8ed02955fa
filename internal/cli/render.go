package cli

import (
	"github.com/fatih/color"

	"github.com/dmitrijs2005/gophvault/internal/password"
)

var (
	weakColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow)
	strongColor = color.New(color.FgGreen)
)

// colorStrength renders s in its presentation color. Color output is
// disabled automatically when stdout is not a terminal.
func colorStrength(s password.Strength) string {
	switch s.Color() {
	case "green":
		return strongColor.Sprint(s)
	case "orange":
		return mediumColor.Sprint(s)
	default:
		return weakColor.Sprint(s)
	}
}
