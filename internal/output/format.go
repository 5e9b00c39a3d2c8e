package output

import "strings"

// AnalysisFormat specifies how the build analysis is printed.
type AnalysisFormat string

const (
	// FormatText prints the bundler's own metafile analysis.
	FormatText AnalysisFormat = "text"

	// FormatTable prints a per-output summary table.
	FormatTable AnalysisFormat = "table"

	// FormatJSON prints the merged manifest as JSON.
	FormatJSON AnalysisFormat = "json"
)

// String returns the string representation of the analysis format.
func (f AnalysisFormat) String() string {
	return string(f)
}

// Valid reports whether f is a known analysis format.
func (f AnalysisFormat) Valid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseFormat parses s into an AnalysisFormat. Empty input yields FormatText.
func ParseFormat(s string) (AnalysisFormat, bool) {
	f := AnalysisFormat(strings.ToLower(strings.TrimSpace(s)))
	switch {
	case f == "":
		return FormatText, true
	case f.Valid():
		return f, true
	default:
		return AnalysisFormat(s), false
	}
}

// ValidFormats returns the accepted analysis format strings.
func ValidFormats() []string {
	return []string{"text", "table", "json"}
}
