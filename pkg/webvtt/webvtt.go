// Package webvtt serializes transcription segments to the WebVTT subtitle
// format consumed by HTML5 video players.
package webvtt

import (
	"fmt"
	"math"
	"strings"
)

// Segment is a timestamped span of caption text, in seconds relative to the
// start of the track.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Format renders segments as a WebVTT track: the WEBVTT header followed by
// sequentially numbered cues. Callers are expected to pass segments already
// sorted and clamped; Format does not reorder them.
func Format(segments []Segment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")

	for i, seg := range segments {
		b.WriteString(fmt.Sprintf("%d\n", i+1))
		b.WriteString(fmt.Sprintf("%s --> %s\n", FormatTimestamp(seg.Start), FormatTimestamp(seg.End)))
		b.WriteString(strings.TrimSpace(seg.Text))
		b.WriteString("\n\n")
	}

	return b.String()
}

// FormatTimestamp converts seconds to the WebVTT timestamp form HH:MM:SS.mmm.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	totalMillis := int64(math.Round(seconds * 1000))
	hours := totalMillis / 3600000
	totalMillis %= 3600000
	minutes := totalMillis / 60000
	totalMillis %= 60000
	secs := totalMillis / 1000
	millis := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}
