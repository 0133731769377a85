package worship

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	"gorm.io/gorm"
)

// repository implements Repository on GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a worship repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// GetAuth returns the singleton channel connection, ErrNotConnected when no
// channel has been linked.
func (r *repository) GetAuth(ctx context.Context) (*models.YoutubeAuth, error) {
	var auth models.YoutubeAuth
	err := r.db.WithContext(ctx).First(&auth).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotConnected
		}
		return nil, fmt.Errorf("getting youtube auth: %w", err)
	}
	return &auth, nil
}

func (r *repository) SaveAuth(ctx context.Context, auth *models.YoutubeAuth) error {
	if err := r.db.WithContext(ctx).Save(auth).Error; err != nil {
		return fmt.Errorf("saving youtube auth: %w", err)
	}
	return nil
}

func (r *repository) ListVideos(ctx context.Context) ([]models.WorshipVideo, error) {
	var videos []models.WorshipVideo
	err := r.db.WithContext(ctx).Order("published_at DESC").Find(&videos).Error
	if err != nil {
		return nil, fmt.Errorf("listing worship videos: %w", err)
	}
	return videos, nil
}

func (r *repository) CreateVideo(ctx context.Context, video *models.WorshipVideo) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return fmt.Errorf("creating worship video: %w", err)
	}
	return nil
}

func (r *repository) UpdateVideo(ctx context.Context, video *models.WorshipVideo) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return fmt.Errorf("updating worship video: %w", err)
	}
	return nil
}

// DeleteVideosNotIn removes every mirror row whose YouTube ID the last fetch
// did not return. An empty ID list empties the mirror; the table follows the
// playlist, it does not keep history.
func (r *repository) DeleteVideosNotIn(ctx context.Context, youtubeVideoIDs []string) (int64, error) {
	query := r.db.WithContext(ctx)
	if len(youtubeVideoIDs) > 0 {
		query = query.Where("youtube_video_id NOT IN ?", youtubeVideoIDs)
	} else {
		query = query.Where("1 = 1")
	}

	result := query.Delete(&models.WorshipVideo{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting removed worship videos: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *repository) GetLastSyncedAt(ctx context.Context) (time.Time, error) {
	var state models.SyncState
	err := r.db.WithContext(ctx).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("getting sync state: %w", err)
	}
	return state.LastSyncedAt, nil
}

func (r *repository) SetLastSyncedAt(ctx context.Context, t time.Time) error {
	var state models.SyncState
	err := r.db.WithContext(ctx).First(&state).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("getting sync state: %w", err)
		}
		state = models.SyncState{LastSyncedAt: t}
		if err := r.db.WithContext(ctx).Create(&state).Error; err != nil {
			return fmt.Errorf("creating sync state: %w", err)
		}
		return nil
	}

	state.LastSyncedAt = t
	if err := r.db.WithContext(ctx).Save(&state).Error; err != nil {
		return fmt.Errorf("updating sync state: %w", err)
	}
	return nil
}
