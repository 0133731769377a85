package captions

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/jobs"
)

// Config holds caption pipeline tuning
type Config struct {
	TempDir       string
	MaxChunkBytes int64
	MaxConcurrent int
	RetryAttempts int
	RetryDelay    time.Duration
}

// Service drives caption generation for videos
type Service struct {
	repo        Repository
	jobQueue    jobs.Service
	store       ObjectStore
	processor   AudioProcessor
	transcriber Transcriber
	cfg         Config
}

// NewService creates a caption service
func NewService(repo Repository, jobQueue jobs.Service, store ObjectStore, processor AudioProcessor, transcriber Transcriber, cfg Config) *Service {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 2
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	return &Service{
		repo:        repo,
		jobQueue:    jobQueue,
		store:       store,
		processor:   processor,
		transcriber: transcriber,
		cfg:         cfg,
	}
}

// StartJob begins caption generation for a video. Only one generation may run
// per video: a second start while one is in flight returns ErrJobInProgress.
// The actual work happens on a background worker; this returns as soon as the
// job is queued.
func (s *Service) StartJob(ctx context.Context, videoID uint) error {
	if err := s.repo.MarkGenerating(ctx, videoID); err != nil {
		return err
	}

	_, err := s.jobQueue.EnqueueUniqueJob(ctx, models.JobTypeCaptionGeneration,
		models.JobPayload{"video_id": videoID}, "video_id")
	if err != nil {
		// The video is stuck in generating with no job to run it, so put it
		// into failed rather than leaving it wedged.
		if markErr := s.repo.MarkFailed(ctx, videoID); markErr != nil {
			log.Printf("[ERROR] Failed to mark video %d failed after enqueue error: %v", videoID, markErr)
		}
		return fmt.Errorf("enqueueing caption job: %w", err)
	}

	log.Printf("[INFO] Caption generation started for video %d", videoID)

	return nil
}

// GetStatus reports the video's caption state
func (s *Service) GetStatus(ctx context.Context, videoID uint) (*Status, error) {
	video, err := s.repo.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	status := &Status{Status: video.CaptionStatus}
	if video.CaptionStatus == models.CaptionStatusReady {
		status.CaptionsPath = video.CaptionsPath
	}
	if status.Status == "" {
		status.Status = models.CaptionStatusIdle
	}

	return status, nil
}
