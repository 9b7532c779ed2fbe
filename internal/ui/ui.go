package ui

import (
	"github.com/fatih/color"
)

// Terminal colors
var (
	Warn = color.New(color.FgYellow)
	Info = color.New(color.FgCyan)
	Good = color.New(color.FgGreen)
	Bad  = color.New(color.FgRed)
)

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}
