package worship

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/jobs"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/youtube"
)

type fakeFetcher struct {
	items []youtube.PlaylistItem
	err   error
	calls int
}

func (f *fakeFetcher) PlaylistItems(ctx context.Context, accessToken, playlistID string) ([]youtube.PlaylistItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeExchanger struct {
	token *youtube.TokenResponse
	err   error
	calls int
}

func (f *fakeExchanger) RefreshToken(ctx context.Context, refreshToken string) (*youtube.TokenResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.token, nil
}

func setupSyncTest(t *testing.T, fetcher *fakeFetcher) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.WorshipVideo{}, &models.YoutubeAuth{}, &models.SyncState{}, &models.Job{}))

	repo := NewRepository(db)
	tokens := NewTokenRefresher(repo, &fakeExchanger{})
	jobService := jobs.NewService(jobs.NewRepository(db))

	svc := NewService(repo, fetcher, tokens, jobService, "PLworship", 5*time.Minute)

	return svc, db
}

func linkChannel(t *testing.T, db *gorm.DB, expiresAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.YoutubeAuth{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    expiresAt,
		ChannelID:    "UCchurch",
		ChannelName:  "Grace Community",
	}).Error)
}

func playlistItem(id, title string) youtube.PlaylistItem {
	return youtube.PlaylistItem{
		VideoID:      id,
		Title:        title,
		Description:  "weekly worship set",
		ThumbnailURL: "https://i.ytimg.com/" + id + ".jpg",
		PublishedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSync_InitialSyncCreatesMirror(t *testing.T) {
	fetcher := &fakeFetcher{items: []youtube.PlaylistItem{
		playlistItem("vid-1", "Opening Hymns"),
		playlistItem("vid-2", "Communion Set"),
	}}
	svc, db := setupSyncTest(t, fetcher)
	linkChannel(t, db, time.Now().Add(time.Hour))

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Deleted)

	videos, err := svc.ListVideos(context.Background())
	require.NoError(t, err)
	assert.Len(t, videos, 2)
}

func TestSync_UnchangedPlaylistReportsZeroCounts(t *testing.T) {
	fetcher := &fakeFetcher{items: []youtube.PlaylistItem{
		playlistItem("vid-1", "Opening Hymns"),
	}}
	svc, db := setupSyncTest(t, fetcher)
	linkChannel(t, db, time.Now().Add(time.Hour))

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	// Step past the cooldown and sync again against identical remote state
	svc.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Deleted)
}

func TestSync_MetadataChangeCountsAsUpdate(t *testing.T) {
	fetcher := &fakeFetcher{items: []youtube.PlaylistItem{
		playlistItem("vid-1", "Opening Hymns"),
	}}
	svc, db := setupSyncTest(t, fetcher)
	linkChannel(t, db, time.Now().Add(time.Hour))

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	fetcher.items[0].Title = "Opening Hymns (rebroadcast)"
	svc.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	videos, err := svc.ListVideos(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "Opening Hymns (rebroadcast)", videos[0].Title)
}

func TestSync_RemovedItemsDeletedFromMirror(t *testing.T) {
	fetcher := &fakeFetcher{items: []youtube.PlaylistItem{
		playlistItem("vid-1", "Opening Hymns"),
		playlistItem("vid-2", "Communion Set"),
	}}
	svc, db := setupSyncTest(t, fetcher)
	linkChannel(t, db, time.Now().Add(time.Hour))

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	fetcher.items = fetcher.items[:1]
	svc.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)

	videos, err := svc.ListVideos(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "vid-1", videos[0].YoutubeVideoID)
}

func TestSync_EmptyRemotePlaylistEmptiesMirror(t *testing.T) {
	fetcher := &fakeFetcher{items: []youtube.PlaylistItem{
		playlistItem("vid-1", "Opening Hymns"),
		playlistItem("vid-2", "Communion Set"),
	}}
	svc, db := setupSyncTest(t, fetcher)
	linkChannel(t, db, time.Now().Add(time.Hour))

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	fetcher.items = nil
	svc.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Deleted)

	videos, err := svc.ListVideos(context.Background())
	require.NoError(t, err)
	assert.Empty(t, videos, "an emptied playlist empties the mirror")
}

func TestSync_CooldownRejectsWithRemainingWait(t *testing.T) {
	fetcher := &fakeFetcher{items: []youtube.PlaylistItem{playlistItem("vid-1", "Opening Hymns")}}
	svc, db := setupSyncTest(t, fetcher)
	linkChannel(t, db, time.Now().Add(time.Hour))

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)

	// 2 minutes into a 5 minute cooldown leaves 3 minutes
	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = svc.Sync(context.Background())
	require.Error(t, err)

	var cooldownErr *CooldownError
	require.ErrorAs(t, err, &cooldownErr)
	assert.Equal(t, 3, cooldownErr.RemainingMinutes())
	assert.Equal(t, 1, fetcher.calls, "a cooled-down sync must not hit the network")
}

func TestSync_NotConnected(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _ := setupSyncTest(t, fetcher)

	_, err := svc.Sync(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, 0, fetcher.calls)
}

func TestSync_FetchFailureDoesNotAdvanceCooldown(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("api unavailable")}
	svc, db := setupSyncTest(t, fetcher)
	linkChannel(t, db, time.Now().Add(time.Hour))

	_, err := svc.Sync(context.Background())
	require.Error(t, err)

	// The failed attempt must not start the cooldown window
	fetcher.err = nil
	fetcher.items = []youtube.PlaylistItem{playlistItem("vid-1", "Opening Hymns")}

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
}

func TestCooldownError_RemainingMinutes(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      int
	}{
		{30 * time.Second, 1},
		{time.Minute, 1},
		{61 * time.Second, 2},
		{4*time.Minute + 59*time.Second, 5},
		{5 * time.Minute, 5},
	}

	for _, tt := range tests {
		err := &CooldownError{Remaining: tt.remaining}
		assert.Equal(t, tt.want, err.RemainingMinutes(), "remaining %s", tt.remaining)
	}
}

func TestStatus(t *testing.T) {
	svc, db := setupSyncTest(t, &fakeFetcher{})

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Empty(t, status.ChannelName)

	linkChannel(t, db, time.Now().Add(time.Hour))

	status, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "Grace Community", status.ChannelName)
}

func TestEnqueueInitialSync(t *testing.T) {
	svc, db := setupSyncTest(t, &fakeFetcher{})

	require.NoError(t, svc.EnqueueInitialSync(context.Background()))

	var job models.Job
	require.NoError(t, db.Where("type = ?", models.JobTypePlaylistSync).First(&job).Error)
	assert.Equal(t, models.JobStatusPending, job.Status)

	playlistID, ok := job.GetPayloadString("playlist_id")
	require.True(t, ok)
	assert.Equal(t, "PLworship", playlistID)
}
