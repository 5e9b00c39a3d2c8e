package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisFormatValid(t *testing.T) {
	tests := []struct {
		format AnalysisFormat
		valid  bool
	}{
		{FormatText, true},
		{FormatTable, true},
		{FormatJSON, true},
		{AnalysisFormat("yaml"), false},
		{AnalysisFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.format.Valid())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  AnalysisFormat
		valid bool
	}{
		{"", FormatText, true},
		{"text", FormatText, true},
		{"TABLE", FormatTable, true},
		{" json ", FormatJSON, true},
		{"yaml", AnalysisFormat("yaml"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseFormat(tt.input)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidFormats(t *testing.T) {
	for _, f := range ValidFormats() {
		assert.True(t, AnalysisFormat(f).Valid(), f)
	}
}
