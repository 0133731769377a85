package captions

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
)

// chunkSpan is a planned slice of the audio track, in seconds
type chunkSpan struct {
	Start    float64
	Duration float64
}

// audioChunk is a materialized span backed by a scratch file
type audioChunk struct {
	Path     string
	Start    float64
	Duration float64
}

// planChunks decides how to slice the audio so every chunk's payload stays
// under maxBytes. The chunk count comes from the byte size, the boundaries
// from the duration: ceil(fileSize/maxBytes) equal-duration spans that tile
// [0, totalDuration) exactly. A file already under the limit is a single span.
func planChunks(fileSize, maxBytes int64, totalDuration float64) ([]chunkSpan, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max chunk bytes must be positive, got %d", maxBytes)
	}
	if totalDuration <= 0 {
		return nil, fmt.Errorf("audio duration must be positive, got %f", totalDuration)
	}

	if fileSize <= maxBytes {
		return []chunkSpan{{Start: 0, Duration: totalDuration}}, nil
	}

	numChunks := int(math.Ceil(float64(fileSize) / float64(maxBytes)))
	chunkDuration := totalDuration / float64(numChunks)

	spans := make([]chunkSpan, numChunks)
	for i := 0; i < numChunks; i++ {
		start := float64(i) * chunkDuration
		duration := chunkDuration
		if i == numChunks-1 {
			// Absorb float drift so the spans cover the track exactly
			duration = totalDuration - start
		}
		spans[i] = chunkSpan{Start: start, Duration: duration}
	}

	return spans, nil
}

// splitAudio materializes planned spans into scratch files. The single-span
// case reuses the extracted audio file as-is instead of re-cutting it.
func splitAudio(ctx context.Context, processor AudioProcessor, audioPath, scratchDir string, spans []chunkSpan) ([]audioChunk, error) {
	if len(spans) == 1 {
		return []audioChunk{{Path: audioPath, Start: spans[0].Start, Duration: spans[0].Duration}}, nil
	}

	chunks := make([]audioChunk, 0, len(spans))
	for i, span := range spans {
		chunkPath := filepath.Join(scratchDir, fmt.Sprintf("chunk_%03d.mp3", i))
		if err := processor.ExtractSegment(ctx, audioPath, chunkPath, span.Start, span.Duration); err != nil {
			return nil, fmt.Errorf("extracting chunk %d: %w", i, err)
		}
		chunks = append(chunks, audioChunk{Path: chunkPath, Start: span.Start, Duration: span.Duration})
	}

	return chunks, nil
}
