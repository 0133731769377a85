package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// ffprobeOutput represents the JSON structure returned by ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// Duration returns the length of a media file in seconds, as reported by
// ffprobe. Falls back to the first audio stream's duration when the container
// does not report one.
func (f *FFmpeg) Duration(ctx context.Context, filePath string) (float64, error) {
	args := []string{
		"-v", "quiet",
		"-show_format",
		"-show_streams",
		"-of", "json",
		filePath,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, NewProcessingError("duration_probe", filePath, err, stderr.String())
	}

	var output ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return 0, NewProcessingError("duration_parsing", filePath, err, "")
	}

	if output.Format.Duration != "" {
		if duration, err := strconv.ParseFloat(output.Format.Duration, 64); err == nil && duration > 0 {
			return duration, nil
		}
	}

	for _, stream := range output.Streams {
		if stream.CodecType != "audio" {
			continue
		}
		if stream.Duration != "" {
			if duration, err := strconv.ParseFloat(stream.Duration, 64); err == nil && duration > 0 {
				return duration, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, filePath)
}

// HasAudioStream reports whether the file contains at least one audio stream.
func (f *FFmpeg) HasAudioStream(ctx context.Context, filePath string) (bool, error) {
	args := []string{
		"-v", "quiet",
		"-show_streams",
		"-select_streams", "a",
		"-of", "json",
		filePath,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return false, NewProcessingError("stream_probe", filePath, err, stderr.String())
	}

	var output ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return false, NewProcessingError("stream_parsing", filePath, err, "")
	}

	return len(output.Streams) > 0, nil
}
