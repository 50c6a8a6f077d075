package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Exported styles are shared with the inspect view.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// status writes the human-facing lines of a command. Commands that stream
// an artifact to stdout point it at stderr.
type status struct {
	w io.Writer
}

func (s status) line(icon, msg string) {
	fmt.Fprintln(s.w, icon+" "+msg)
}

func (s status) success(format string, args ...any) {
	s.line(StyleSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func (s status) warning(format string, args ...any) {
	s.line(StyleWarning.Render(iconWarning), StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (s status) info(format string, args ...any) {
	s.line(styleInfo.Render(iconInfo), fmt.Sprintf(format, args...))
}

func (s status) detail(format string, args ...any) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file announces a written output file.
func (s status) file(path string) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// stats prints placement statistics on a single line.
func (s status) stats(planets, dropped int, cached bool) {
	fmt.Fprintln(s.w, statsLine(planets, dropped, cached))
}

// statsLine formats e.g. "9 planets · 1 dropped · cached".
func statsLine(planets, dropped int, cached bool) string {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d planets", planets))}
	if dropped > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d dropped", dropped)))
	}
	if cached {
		parts = append(parts, StyleSuccess.Render(iconCached))
	} else {
		parts = append(parts, StyleDim.Render(iconFresh))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}
