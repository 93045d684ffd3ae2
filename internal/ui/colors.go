package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes for terminal compatibility.
// The dashboard uses the bright variants so it stays readable on the
// default console at login.

// Semantic colors for status indication
const (
	ColorNormal   lipgloss.Color = "10" // Bright green
	ColorWarning  lipgloss.Color = "11" // Bright yellow
	ColorCritical lipgloss.Color = "9"  // Bright red
)

// ColorHeading is used for the title and footer lines.
const ColorHeading lipgloss.Color = "12" // Bright blue
