package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals outside this block.
var (
	// ColorCyan is used for identifiable nouns: output paths, entry points.
	ColorCyan = lipgloss.Color("14")

	// colorGreen marks emitted bundles and assets.
	colorGreen = lipgloss.Color("82")

	// ColorYellow marks synthetic outputs that were not produced by the module graph.
	ColorYellow = lipgloss.Color("220")

	// colorRed marks stubs for artifacts that were missing at build time.
	colorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// colorBlue is used for table headers.
	colorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (output paths, artifact paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// Output kinds shown next to each file of a build.
const (
	KindBundle     = "bundle"
	KindSourceMap  = "sourcemap"
	KindAsset      = "asset"
	KindDescriptor = "descriptor"
	KindMissing    = "missing"
)

// kindStyle returns the lipgloss style for an output kind.
// Unknown kinds return an unstyled default.
func kindStyle(kind string) lipgloss.Style {
	switch kind {
	case KindBundle, KindAsset:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case KindSourceMap:
		return lipgloss.NewStyle().Faint(true)
	case KindDescriptor:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case KindMissing:
		return lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth keeps the kind suffix aligned across lines.
const minPathColumnWidth = 48

// FormatOutputLine renders an output path with a right-aligned, color-coded kind suffix.
//
// Format: o:<path>  <kind>
func FormatOutputLine(path, kind string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("o:") + StyleNoun.Render(path) + strings.Repeat(" ", padding) + kindStyle(kind).Render(kind)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
