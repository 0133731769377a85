package captions

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/gemini"
	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/retry"
	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/webvtt"
)

// RunPipeline executes the full caption pipeline for a video: download,
// audio extraction, chunking, concurrent transcription, assembly, and WebVTT
// publication. Invoked by the background worker, not by request handlers.
//
// Any fatal error marks the video failed; there are no partial captions.
func (s *Service) RunPipeline(ctx context.Context, videoID uint) error {
	if err := s.runPipeline(ctx, videoID); err != nil {
		if markErr := s.repo.MarkFailed(ctx, videoID); markErr != nil {
			log.Printf("[ERROR] Failed to mark video %d failed: %v", videoID, markErr)
		}
		return err
	}
	return nil
}

func (s *Service) runPipeline(ctx context.Context, videoID uint) error {
	video, err := s.repo.GetVideo(ctx, videoID)
	if err != nil {
		return err
	}

	// All intermediate files live in one scratch dir, removed on every exit
	// path, success or failure.
	scratchDir := filepath.Join(s.cfg.TempDir, "captions-"+uuid.NewString())
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		return fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	videoPath := filepath.Join(scratchDir, "source"+filepath.Ext(video.StoragePath))
	if err := s.store.Download(ctx, video.StoragePath, videoPath); err != nil {
		return fmt.Errorf("downloading video %d: %w", videoID, err)
	}

	audioPath := filepath.Join(scratchDir, "audio.mp3")
	if err := s.processor.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		return fmt.Errorf("extracting audio for video %d: %w", videoID, err)
	}

	duration, err := s.processor.Duration(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("probing audio duration for video %d: %w", videoID, err)
	}

	audioInfo, err := os.Stat(audioPath)
	if err != nil {
		return fmt.Errorf("stating audio file: %w", err)
	}

	spans, err := planChunks(audioInfo.Size(), s.cfg.MaxChunkBytes, duration)
	if err != nil {
		return fmt.Errorf("planning chunks for video %d: %w", videoID, err)
	}

	chunks, err := splitAudio(ctx, s.processor, audioPath, scratchDir, spans)
	if err != nil {
		return fmt.Errorf("splitting audio for video %d: %w", videoID, err)
	}

	log.Printf("[INFO] Video %d: %.1fs of audio in %d chunk(s)", videoID, duration, len(chunks))

	chunkSegments, err := s.transcribeChunks(ctx, chunks)
	if err != nil {
		return fmt.Errorf("transcribing video %d: %w", videoID, err)
	}

	segments := assemble(chunkSegments, duration)
	track := webvtt.Format(segments)

	captionsLocal := filepath.Join(scratchDir, "captions.vtt")
	if err := os.WriteFile(captionsLocal, []byte(track), 0o644); err != nil {
		return fmt.Errorf("writing captions file: %w", err)
	}

	captionsKey := fmt.Sprintf("captions/%d.vtt", videoID)
	if err := s.store.Upload(ctx, captionsLocal, captionsKey, "text/vtt"); err != nil {
		return fmt.Errorf("uploading captions for video %d: %w", videoID, err)
	}

	if err := s.repo.MarkReady(ctx, videoID, captionsKey); err != nil {
		return err
	}

	log.Printf("[INFO] Video %d captions ready: %s (%d segments)", videoID, captionsKey, len(segments))

	return nil
}

// transcribeChunks runs chunk transcriptions concurrently, bounded by the
// configured limit. Results land in a per-index slice so assembly sees chunk
// order regardless of completion order. One chunk exhausting its retries
// fails the whole run.
func (s *Service) transcribeChunks(ctx context.Context, chunks []audioChunk) ([][]gemini.Segment, error) {
	policy := retry.Policy{
		MaxAttempts:  s.cfg.RetryAttempts,
		InitialDelay: s.cfg.RetryDelay,
		Retryable:    gemini.IsTransient,
	}

	results := make([][]gemini.Segment, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrent)

	for i, chunk := range chunks {
		g.Go(func() error {
			audio, err := os.ReadFile(chunk.Path)
			if err != nil {
				return fmt.Errorf("reading chunk %d: %w", i, err)
			}

			err = retry.Do(ctx, policy, func(ctx context.Context) error {
				segments, err := s.transcriber.TranscribeChunk(ctx, audio, chunk.Start, chunk.Duration)
				if err != nil {
					return err
				}
				results[i] = segments
				return nil
			})
			if err != nil {
				return fmt.Errorf("chunk %d at %.1fs: %w", i, chunk.Start, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
