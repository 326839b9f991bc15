package detector_test

import (
	"bytes"
	"testing"

	"github.com/gmackall/flutter-fix-status/internal/adapters/detector"
	"github.com/stretchr/testify/assert"
)

func TestDetectFormat_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, detector.IsTerminal(&buf))
	assert.Equal(t, detector.FormatJSON, detector.DetectFormat(&buf))
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		detected detector.Format
		flag     string
		expected detector.Format
	}{
		{name: "table flag overrides JSON", detected: detector.FormatJSON, flag: "table", expected: detector.FormatTable},
		{name: "json flag overrides table", detected: detector.FormatTable, flag: "json", expected: detector.FormatJSON},
		{name: "auto keeps detected", detected: detector.FormatTable, flag: "auto", expected: detector.FormatTable},
		{name: "empty keeps detected", detected: detector.FormatJSON, flag: "", expected: detector.FormatJSON},
		{name: "unknown keeps detected", detected: detector.FormatTable, flag: "yaml", expected: detector.FormatTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveFormat(tt.detected, tt.flag))
		})
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "table", detector.FormatTable.String())
	assert.Equal(t, "json", detector.FormatJSON.String())
	assert.Equal(t, "auto", detector.FormatAuto.String())
}
