package workers

import (
	"context"
	"fmt"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/captions"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/jobs"
)

// CaptionProcessor runs the caption pipeline for queued caption jobs
type CaptionProcessor struct {
	captionService *captions.Service
	jobService     jobs.Service
}

// NewCaptionProcessor creates a caption job processor
func NewCaptionProcessor(captionService *captions.Service, jobService jobs.Service) *CaptionProcessor {
	return &CaptionProcessor{
		captionService: captionService,
		jobService:     jobService,
	}
}

// CanProcess returns true for caption generation jobs
func (p *CaptionProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeCaptionGeneration
}

// ProcessJob runs the full caption pipeline for the job's video. A pipeline
// failure fails the job; the pipeline itself has already marked the video
// failed by then.
func (p *CaptionProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	videoID, ok := job.GetPayloadUint("video_id")
	if !ok {
		return fmt.Errorf("caption job %d has no video_id in payload", job.ID)
	}

	if err := p.captionService.RunPipeline(ctx, videoID); err != nil {
		return err
	}

	result := models.JobResult{"video_id": videoID, "captions_path": fmt.Sprintf("captions/%d.vtt", videoID)}
	if err := p.jobService.CompleteJob(ctx, job.ID, result); err != nil {
		return fmt.Errorf("completing caption job %d: %w", job.ID, err)
	}

	return nil
}
