package gemini

import (
	"encoding/json"
	"strings"
)

// parseSegmentArray extracts the first valid JSON segment array embedded in
// the model's response text. The model wraps output in markdown fences or
// prose often enough that a plain Unmarshal of the whole text is not enough:
// we scan for each '[' and let json.Decoder try to read an array from there.
func parseSegmentArray(text string) ([]Segment, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var candidate []Segment
		if err := dec.Decode(&candidate); err != nil {
			continue
		}

		if valid := validSegments(candidate); valid != nil {
			return valid, true
		}
	}

	return nil, false
}

// validSegments filters out entries the model got structurally wrong. An
// array with no usable entries does not count as a parse.
func validSegments(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		seg.Text = strings.TrimSpace(seg.Text)
		if seg.Text == "" {
			continue
		}
		if seg.Start < 0 || seg.End < seg.Start {
			continue
		}
		out = append(out, seg)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// stripCodeFences removes markdown code fences and surrounding whitespace so
// the raw response can serve as fallback caption text.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}
