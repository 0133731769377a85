package worship

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/jobs"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/youtube"
)

// Service mirrors the worship playlist into the local database
type Service struct {
	repo       Repository
	fetcher    PlaylistFetcher
	tokens     *TokenRefresher
	jobQueue   jobs.Service
	playlistID string
	cooldown   time.Duration
	now        func() time.Time
}

// NewService creates a worship sync service
func NewService(repo Repository, fetcher PlaylistFetcher, tokens *TokenRefresher, jobQueue jobs.Service, playlistID string, cooldown time.Duration) *Service {
	if cooldown <= 0 {
		cooldown = 5 * time.Minute
	}
	return &Service{
		repo:       repo,
		fetcher:    fetcher,
		tokens:     tokens,
		jobQueue:   jobQueue,
		playlistID: playlistID,
		cooldown:   cooldown,
		now:        time.Now,
	}
}

// Sync reconciles the local mirror against the remote playlist. A successful
// sync within the cooldown window rejects with CooldownError; no linked
// channel rejects with ErrNotConnected. Re-running against an unchanged
// playlist reports all-zero counts.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	lastSynced, err := s.repo.GetLastSyncedAt(ctx)
	if err != nil {
		return nil, err
	}

	if !lastSynced.IsZero() {
		elapsed := s.now().Sub(lastSynced)
		if elapsed < s.cooldown {
			return nil, &CooldownError{Remaining: s.cooldown - elapsed}
		}
	}

	accessToken, err := s.tokens.ValidAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	remote, err := s.fetcher.PlaylistItems(ctx, accessToken, s.playlistID)
	if err != nil {
		return nil, fmt.Errorf("fetching playlist: %w", err)
	}

	result, err := s.reconcile(ctx, remote)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetLastSyncedAt(ctx, s.now()); err != nil {
		return nil, err
	}

	log.Printf("[INFO] Worship sync complete: %d created, %d updated, %d deleted",
		result.Created, result.Updated, result.Deleted)

	return result, nil
}

// reconcile makes the mirror match the remote list exactly. Unseen remote
// items are created, changed items updated, and local rows the fetch did not
// return are deleted. The updated count covers only rows whose mirrored
// metadata actually changed.
func (s *Service) reconcile(ctx context.Context, remote []youtube.PlaylistItem) (*SyncResult, error) {
	local, err := s.repo.ListVideos(ctx)
	if err != nil {
		return nil, err
	}

	localByID := make(map[string]models.WorshipVideo, len(local))
	for _, v := range local {
		localByID[v.YoutubeVideoID] = v
	}

	result := &SyncResult{}
	remoteIDs := make([]string, 0, len(remote))

	for _, item := range remote {
		remoteIDs = append(remoteIDs, item.VideoID)

		existing, ok := localByID[item.VideoID]
		if !ok {
			video := models.WorshipVideo{
				YoutubeVideoID: item.VideoID,
				Title:          item.Title,
				Description:    item.Description,
				ThumbnailURL:   item.ThumbnailURL,
				PublishedAt:    item.PublishedAt,
			}
			if err := s.repo.CreateVideo(ctx, &video); err != nil {
				return nil, err
			}
			result.Created++
			continue
		}

		if metadataEqual(existing, item) {
			continue
		}

		existing.Title = item.Title
		existing.Description = item.Description
		existing.ThumbnailURL = item.ThumbnailURL
		existing.PublishedAt = item.PublishedAt
		if err := s.repo.UpdateVideo(ctx, &existing); err != nil {
			return nil, err
		}
		result.Updated++
	}

	deleted, err := s.repo.DeleteVideosNotIn(ctx, remoteIDs)
	if err != nil {
		return nil, err
	}
	result.Deleted = int(deleted)

	return result, nil
}

func metadataEqual(local models.WorshipVideo, remote youtube.PlaylistItem) bool {
	return local.Title == remote.Title &&
		local.Description == remote.Description &&
		local.ThumbnailURL == remote.ThumbnailURL &&
		local.PublishedAt.Equal(remote.PublishedAt)
}

// ListVideos returns the current mirror
func (s *Service) ListVideos(ctx context.Context) ([]models.WorshipVideo, error) {
	return s.repo.ListVideos(ctx)
}

// Status reports whether the channel is linked, without touching the network
func (s *Service) Status(ctx context.Context) (*ConnectionStatus, error) {
	auth, err := s.repo.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, ErrNotConnected) {
			return &ConnectionStatus{Connected: false}, nil
		}
		return nil, err
	}

	return &ConnectionStatus{Connected: true, ChannelName: auth.ChannelName}, nil
}

// EnqueueInitialSync queues a background sync, used right after a channel is
// linked so the mirror fills without blocking the caller.
func (s *Service) EnqueueInitialSync(ctx context.Context) error {
	_, err := s.jobQueue.EnqueueJob(ctx, models.JobTypePlaylistSync, models.JobPayload{
		"playlist_id": s.playlistID,
	})
	if err != nil {
		return fmt.Errorf("enqueueing initial sync: %w", err)
	}
	return nil
}
