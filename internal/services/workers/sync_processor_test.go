package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/jobs"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/worship"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/youtube"
)

type stubFetcher struct {
	items []youtube.PlaylistItem
}

func (s *stubFetcher) PlaylistItems(ctx context.Context, accessToken, playlistID string) ([]youtube.PlaylistItem, error) {
	return s.items, nil
}

type stubExchanger struct{}

func (s *stubExchanger) RefreshToken(ctx context.Context, refreshToken string) (*youtube.TokenResponse, error) {
	return &youtube.TokenResponse{AccessToken: "token", ExpiresIn: 3600}, nil
}

func setupSyncProcessorTest(t *testing.T, fetcher *stubFetcher) (*SyncProcessor, jobs.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.WorshipVideo{}, &models.YoutubeAuth{}, &models.SyncState{}, &models.Job{}))

	repo := worship.NewRepository(db)
	tokens := worship.NewTokenRefresher(repo, &stubExchanger{})
	jobService := jobs.NewService(jobs.NewRepository(db))
	worshipService := worship.NewService(repo, fetcher, tokens, jobService, "PLworship", 5*time.Minute)

	return NewSyncProcessor(worshipService, jobService), jobService, db
}

func enqueueSyncJob(t *testing.T, jobService jobs.Service) *models.Job {
	t.Helper()
	job, err := jobService.EnqueueJob(context.Background(), models.JobTypePlaylistSync,
		models.JobPayload{"playlist_id": "PLworship"})
	require.NoError(t, err)
	return job
}

func TestSyncProcessor_CanProcess(t *testing.T) {
	processor := &SyncProcessor{}

	assert.True(t, processor.CanProcess(models.JobTypePlaylistSync))
	assert.False(t, processor.CanProcess(models.JobTypeCaptionGeneration))
	assert.False(t, processor.CanProcess("unknown_type"))
}

func TestSyncProcessor_CompletesWithCounts(t *testing.T) {
	fetcher := &stubFetcher{items: []youtube.PlaylistItem{
		{VideoID: "vid-1", Title: "Opening Hymns", PublishedAt: time.Now().UTC()},
	}}
	processor, jobService, db := setupSyncProcessorTest(t, fetcher)

	require.NoError(t, db.Create(&models.YoutubeAuth{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour),
		ChannelID:    "UCchurch",
	}).Error)

	job := enqueueSyncJob(t, jobService)
	require.NoError(t, processor.ProcessJob(context.Background(), job))

	completed, err := jobService.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, completed.Status)
	assert.Equal(t, float64(1), completed.Result["created"])
}

func TestSyncProcessor_NotConnectedCompletesAsSkipped(t *testing.T) {
	processor, jobService, _ := setupSyncProcessorTest(t, &stubFetcher{})

	job := enqueueSyncJob(t, jobService)
	require.NoError(t, processor.ProcessJob(context.Background(), job),
		"a disconnected channel is an outcome, not a job failure")

	completed, err := jobService.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, completed.Status)
	assert.Equal(t, "not_connected", completed.Result["skipped"])
}

func TestSyncProcessor_CooldownCompletesAsSkipped(t *testing.T) {
	processor, jobService, db := setupSyncProcessorTest(t, &stubFetcher{})

	require.NoError(t, db.Create(&models.SyncState{LastSyncedAt: time.Now()}).Error)

	job := enqueueSyncJob(t, jobService)
	require.NoError(t, processor.ProcessJob(context.Background(), job))

	completed, err := jobService.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, completed.Status)
	assert.Equal(t, "cooldown", completed.Result["skipped"])
}

func TestCaptionProcessor_CanProcess(t *testing.T) {
	processor := &CaptionProcessor{}

	assert.True(t, processor.CanProcess(models.JobTypeCaptionGeneration))
	assert.False(t, processor.CanProcess(models.JobTypePlaylistSync))
}
