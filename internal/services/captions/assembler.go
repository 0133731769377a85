package captions

import (
	"sort"

	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/gemini"
	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/webvtt"
)

// assemble merges per-chunk transcription results into one caption track.
// chunkSegments is indexed by chunk position, so concatenation preserves
// chunk order no matter which chunk finished first. Segments are then stable
// sorted by start time, clamped into [0, totalDuration], and dropped when
// clamping leaves nothing of them.
func assemble(chunkSegments [][]gemini.Segment, totalDuration float64) []webvtt.Segment {
	var merged []webvtt.Segment
	for _, segments := range chunkSegments {
		for _, seg := range segments {
			merged = append(merged, webvtt.Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start < merged[j].Start
	})

	out := make([]webvtt.Segment, 0, len(merged))
	for _, seg := range merged {
		seg.Start = clamp(seg.Start, 0, totalDuration)
		seg.End = clamp(seg.End, 0, totalDuration)
		if seg.Start >= seg.End {
			continue
		}
		out = append(out, seg)
	}

	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
