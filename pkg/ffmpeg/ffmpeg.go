package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// Transcription works best on a small mono track; these parameters keep a
// one-hour sermon around 14 MB.
const (
	audioSampleRate = 16000
	audioBitrate    = "32k"
)

// FFmpeg wraps the ffmpeg and ffprobe binaries
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}

	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}

	return nil
}

// ExtractAudio demuxes and transcodes the audio stream of a video file into a
// mono, low-bitrate MP3 suitable for the transcription API. The container's
// video codec does not matter; a missing audio stream fails the call.
func (f *FFmpeg) ExtractAudio(ctx context.Context, videoPath, outPath string) error {
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(audioSampleRate),
		"-b:a", audioBitrate,
		"-y",
		outPath,
	}

	return f.run(ctx, "audio_extraction", videoPath, args)
}

// ExtractSegment cuts a time-bounded slice out of an audio file. The input is
// already in the target codec, so the stream is copied without re-encoding.
func (f *FFmpeg) ExtractSegment(ctx context.Context, audioPath, outPath string, startSec, durationSec float64) error {
	args := []string{
		"-ss", formatSeconds(startSec),
		"-t", formatSeconds(durationSec),
		"-i", audioPath,
		"-c", "copy",
		"-y",
		outPath,
	}

	return f.run(ctx, "segment_extraction", audioPath, args)
}

func (f *FFmpeg) run(ctx context.Context, operation, file string, args []string) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return NewProcessingError(operation, file, err, stderr.String())
	}

	return nil
}

func formatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
