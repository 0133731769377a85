package captions

import (
	"context"
	"errors"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/gemini"
)

// Service errors
var (
	ErrVideoNotFound = errors.New("video not found")
	ErrJobInProgress = errors.New("caption generation already in progress")
)

// Repository defines video persistence for the caption pipeline
type Repository interface {
	GetVideo(ctx context.Context, id uint) (*models.Video, error)

	// MarkGenerating transitions the video into the generating state. It must
	// refuse the transition when a generation is already running so that two
	// concurrent starts cannot both proceed.
	MarkGenerating(ctx context.Context, id uint) error
	MarkReady(ctx context.Context, id uint, captionsPath string) error
	MarkFailed(ctx context.Context, id uint) error
}

// ObjectStore moves files between the object store and local scratch space
type ObjectStore interface {
	Download(ctx context.Context, objectKey, localPath string) error
	Upload(ctx context.Context, localPath, objectKey, contentType string) error
}

// AudioProcessor is the ffmpeg surface the pipeline needs
type AudioProcessor interface {
	ExtractAudio(ctx context.Context, videoPath, outPath string) error
	ExtractSegment(ctx context.Context, audioPath, outPath string, startSec, durationSec float64) error
	Duration(ctx context.Context, path string) (float64, error)
}

// Transcriber converts one audio chunk into timestamped segments
type Transcriber interface {
	TranscribeChunk(ctx context.Context, audio []byte, chunkStart, chunkDuration float64) ([]gemini.Segment, error)
}

// Status is the caption state reported to API consumers
type Status struct {
	Status       models.CaptionStatus `json:"status"`
	CaptionsPath string               `json:"captions_path,omitempty"`
}
