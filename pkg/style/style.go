// Package style defines the terminal styling for odev's status output.
package style

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Status types for bootstrap checks
type Status string

const (
	StatusOK      Status = "ok"      // Check passed
	StatusError   Status = "error"   // Check failed, user action needed
	StatusWarn    Status = "warn"    // Degraded but not blocking
	StatusSkipped Status = "skipped" // Not applicable in this environment
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#56d364"}).
	MarginBottom(1)

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusOK:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case StatusWarn:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Glyph returns the marker rendered before a status line
func Glyph(status Status) string {
	switch status {
	case StatusOK:
		return "✓"
	case StatusError:
		return "✗"
	case StatusWarn:
		return "!"
	default:
		return "-"
	}
}

// Header renders a section header for status output
func Header(s string) string {
	if !colorEnabled() {
		return s
	}
	return headerStyle.Render(s)
}

// CheckLine renders one "check" line: glyph, label, optional detail
func CheckLine(status Status, label, detail string) string {
	line := fmt.Sprintf("%s %s", Glyph(status), label)
	if detail != "" {
		line += ": " + detail
	}
	if !colorEnabled() {
		return line
	}
	return StatusStyle(status).Sprint(line)
}

// colorEnabled reports whether styled output makes sense on stdout
func colorEnabled() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}
