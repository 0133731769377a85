package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSegmentArray_PlainJSON(t *testing.T) {
	text := `[{"start": 0, "end": 2.5, "text": "Welcome everyone"}, {"start": 2.5, "end": 5, "text": "to the service"}]`

	segments, ok := parseSegmentArray(text)
	require.True(t, ok)
	require.Len(t, segments, 2)
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 2.5, segments[0].End)
	assert.Equal(t, "Welcome everyone", segments[0].Text)
}

func TestParseSegmentArray_FencedJSON(t *testing.T) {
	text := "```json\n[{\"start\": 1, \"end\": 3, \"text\": \"Amen\"}]\n```"

	segments, ok := parseSegmentArray(text)
	require.True(t, ok)
	require.Len(t, segments, 1)
	assert.Equal(t, "Amen", segments[0].Text)
}

func TestParseSegmentArray_ProseAroundArray(t *testing.T) {
	text := `Here is the transcription you asked for:

[{"start": 0, "end": 4, "text": "Let us pray"}]

Let me know if you need anything else.`

	segments, ok := parseSegmentArray(text)
	require.True(t, ok)
	require.Len(t, segments, 1)
	assert.Equal(t, "Let us pray", segments[0].Text)
}

func TestParseSegmentArray_SkipsInvalidEntries(t *testing.T) {
	text := `[{"start": 0, "end": 2, "text": "keep"}, {"start": 5, "end": 3, "text": "inverted"}, {"start": 2, "end": 4, "text": "  "}]`

	segments, ok := parseSegmentArray(text)
	require.True(t, ok)
	require.Len(t, segments, 1)
	assert.Equal(t, "keep", segments[0].Text)
}

func TestParseSegmentArray_NoArray(t *testing.T) {
	_, ok := parseSegmentArray("I could not transcribe this audio.")
	assert.False(t, ok)
}

func TestParseSegmentArray_ArrayOfNonSegments(t *testing.T) {
	_, ok := parseSegmentArray(`["just", "strings"]`)
	assert.False(t, ok)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", "plain text", "plain text"},
		{"fenced", "```\nsome text\n```", "some text"},
		{"fenced with language", "```text\nsome text\n```", "some text"},
		{"surrounding whitespace", "  \n hello \n ", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}
