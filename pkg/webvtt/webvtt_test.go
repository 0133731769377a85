package webvtt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00:00.000"},
		{"sub-second", 0.5, "00:00:00.500"},
		{"minutes", 75.25, "00:01:15.250"},
		{"hours", 3725.5, "01:02:05.500"},
		{"millisecond rounding", 1.9995, "00:00:02.000"},
		{"negative clamps to zero", -3, "00:00:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.seconds))
		})
	}
}

func TestFormat(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 2.5, Text: "In the beginning"},
		{Start: 2.5, End: 5, Text: "  was the Word  "},
	}

	got := Format(segments)

	assert.True(t, strings.HasPrefix(got, "WEBVTT\n\n"), "track must open with the WEBVTT header")
	assert.Contains(t, got, "1\n00:00:00.000 --> 00:00:02.500\nIn the beginning\n")
	assert.Contains(t, got, "2\n00:00:02.500 --> 00:00:05.000\nwas the Word\n")
}

func TestFormat_Empty(t *testing.T) {
	assert.Equal(t, "WEBVTT\n\n", Format(nil))
}

func TestFormat_CueNumbersAreSequential(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1, Text: "a"},
		{Start: 1, End: 2, Text: "b"},
		{Start: 2, End: 3, Text: "c"},
	}

	got := Format(segments)
	for _, want := range []string{"\n1\n", "\n2\n", "\n3\n"} {
		assert.Contains(t, "\n"+got, want)
	}
}
