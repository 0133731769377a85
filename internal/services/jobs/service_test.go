package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
)

func setupJobsTest(t *testing.T) Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Job{}))

	return NewService(NewRepository(db))
}

func TestEnqueueAndGetJob(t *testing.T) {
	svc := setupJobsTest(t)
	ctx := context.Background()

	job, err := svc.EnqueueJob(ctx, models.JobTypeCaptionGeneration, models.JobPayload{"video_id": 42})
	require.NoError(t, err)
	assert.NotZero(t, job.ID)
	assert.Equal(t, models.JobStatusPending, job.Status)

	fetched, err := svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobTypeCaptionGeneration, fetched.Type)

	videoID, ok := fetched.GetPayloadUint("video_id")
	require.True(t, ok)
	assert.Equal(t, uint(42), videoID)
}

func TestEnqueueUniqueJob_DeduplicatesNonTerminal(t *testing.T) {
	svc := setupJobsTest(t)
	ctx := context.Background()

	first, err := svc.EnqueueUniqueJob(ctx, models.JobTypeCaptionGeneration,
		models.JobPayload{"video_id": 42}, "video_id")
	require.NoError(t, err)

	second, err := svc.EnqueueUniqueJob(ctx, models.JobTypeCaptionGeneration,
		models.JobPayload{"video_id": 42}, "video_id")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "a pending job for the same video must be reused")

	other, err := svc.EnqueueUniqueJob(ctx, models.JobTypeCaptionGeneration,
		models.JobPayload{"video_id": 43}, "video_id")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID, "a different video gets its own job")
}

func TestEnqueueUniqueJob_TerminalJobNotReused(t *testing.T) {
	svc := setupJobsTest(t)
	ctx := context.Background()

	first, err := svc.EnqueueUniqueJob(ctx, models.JobTypeCaptionGeneration,
		models.JobPayload{"video_id": 42}, "video_id")
	require.NoError(t, err)
	require.NoError(t, svc.FailJob(ctx, first.ID, errors.New("transcription failed")))

	second, err := svc.EnqueueUniqueJob(ctx, models.JobTypeCaptionGeneration,
		models.JobPayload{"video_id": 42}, "video_id")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "a failed job must not block a retry")
}

func TestEnqueueUniqueJob_MissingKey(t *testing.T) {
	svc := setupJobsTest(t)

	_, err := svc.EnqueueUniqueJob(context.Background(), models.JobTypeCaptionGeneration,
		models.JobPayload{"other": 1}, "video_id")
	assert.Error(t, err)
}

func TestClaimNextJob(t *testing.T) {
	svc := setupJobsTest(t)
	ctx := context.Background()

	first, err := svc.EnqueueJob(ctx, models.JobTypeCaptionGeneration, models.JobPayload{"video_id": 1})
	require.NoError(t, err)
	_, err = svc.EnqueueJob(ctx, models.JobTypeCaptionGeneration, models.JobPayload{"video_id": 2})
	require.NoError(t, err)

	claimed, err := svc.ClaimNextJob(ctx, "worker-1", []models.JobType{models.JobTypeCaptionGeneration})
	require.NoError(t, err)
	assert.Equal(t, first.ID, claimed.ID, "jobs are claimed oldest first")
	assert.Equal(t, models.JobStatusProcessing, claimed.Status)
	assert.Equal(t, "worker-1", claimed.WorkerID)
	assert.NotNil(t, claimed.StartedAt)
}

func TestClaimNextJob_FiltersOnType(t *testing.T) {
	svc := setupJobsTest(t)
	ctx := context.Background()

	_, err := svc.EnqueueJob(ctx, models.JobTypeCaptionGeneration, models.JobPayload{"video_id": 1})
	require.NoError(t, err)

	_, err = svc.ClaimNextJob(ctx, "worker-1", []models.JobType{models.JobTypePlaylistSync})
	assert.ErrorIs(t, err, ErrNoJobsAvailable)
}

func TestClaimNextJob_NoneAvailable(t *testing.T) {
	svc := setupJobsTest(t)

	_, err := svc.ClaimNextJob(context.Background(), "worker-1", nil)
	assert.ErrorIs(t, err, ErrNoJobsAvailable)
}

func TestCompleteJob(t *testing.T) {
	svc := setupJobsTest(t)
	ctx := context.Background()

	job, err := svc.EnqueueJob(ctx, models.JobTypePlaylistSync, models.JobPayload{"playlist_id": "PL1"})
	require.NoError(t, err)

	require.NoError(t, svc.CompleteJob(ctx, job.ID, models.JobResult{"created": 3}))

	completed, err := svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
	assert.True(t, completed.IsTerminal())
	assert.Equal(t, float64(3), completed.Result["created"], "JSON round-trips numbers as float64")
}

func TestFailJob(t *testing.T) {
	svc := setupJobsTest(t)
	ctx := context.Background()

	job, err := svc.EnqueueJob(ctx, models.JobTypeCaptionGeneration, models.JobPayload{"video_id": 1})
	require.NoError(t, err)

	require.NoError(t, svc.FailJob(ctx, job.ID, errors.New("ffmpeg exited with status 1")))

	failed, err := svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, failed.Status)
	assert.Equal(t, "ffmpeg exited with status 1", failed.Error)
	assert.True(t, failed.IsTerminal())
}

func TestReleaseJob(t *testing.T) {
	svc := setupJobsTest(t)
	ctx := context.Background()

	job, err := svc.EnqueueJob(ctx, models.JobTypeCaptionGeneration, models.JobPayload{"video_id": 1})
	require.NoError(t, err)

	claimed, err := svc.ClaimNextJob(ctx, "worker-1", nil)
	require.NoError(t, err)

	require.NoError(t, svc.ReleaseJob(ctx, claimed.ID))

	released, err := svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, released.Status)
	assert.Empty(t, released.WorkerID)

	// A pending job cannot be released again
	err = svc.ReleaseJob(ctx, job.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestGetJob_NotFound(t *testing.T) {
	svc := setupJobsTest(t)

	_, err := svc.GetJob(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrJobNotFound)
}
