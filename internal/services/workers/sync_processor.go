package workers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/jobs"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/worship"
)

// SyncProcessor runs worship playlist syncs queued as background jobs
type SyncProcessor struct {
	worshipService *worship.Service
	jobService     jobs.Service
}

// NewSyncProcessor creates a playlist sync job processor
func NewSyncProcessor(worshipService *worship.Service, jobService jobs.Service) *SyncProcessor {
	return &SyncProcessor{
		worshipService: worshipService,
		jobService:     jobService,
	}
}

// CanProcess returns true for playlist sync jobs
func (p *SyncProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypePlaylistSync
}

// ProcessJob runs a playlist sync. A sync skipped because of the cooldown or
// a disconnected channel is recorded as the job's outcome and the job
// completes; those are expected states, not failures.
func (p *SyncProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	result, err := p.worshipService.Sync(ctx)
	if err != nil {
		var cooldownErr *worship.CooldownError
		switch {
		case errors.Is(err, worship.ErrNotConnected):
			log.Printf("[INFO] Sync job %d skipped: channel not connected", job.ID)
			return p.complete(ctx, job, models.JobResult{"skipped": "not_connected"})
		case errors.As(err, &cooldownErr):
			log.Printf("[INFO] Sync job %d skipped: cooldown, %d minute(s) remaining", job.ID, cooldownErr.RemainingMinutes())
			return p.complete(ctx, job, models.JobResult{"skipped": "cooldown"})
		}
		return err
	}

	return p.complete(ctx, job, models.JobResult{
		"created": result.Created,
		"updated": result.Updated,
		"deleted": result.Deleted,
	})
}

func (p *SyncProcessor) complete(ctx context.Context, job *models.Job, result models.JobResult) error {
	if err := p.jobService.CompleteJob(ctx, job.ID, result); err != nil {
		return fmt.Errorf("completing sync job %d: %w", job.ID, err)
	}
	return nil
}
