package captions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	"gorm.io/gorm"
)

// repository implements Repository on GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new video repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) GetVideo(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	err := r.db.WithContext(ctx).First(&video, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("getting video: %w", err)
	}
	return &video, nil
}

// MarkGenerating flips the video into generating with a conditional update,
// so two concurrent starts race on the database rather than in memory and
// exactly one wins.
func (r *repository) MarkGenerating(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ? AND caption_status != ?", id, models.CaptionStatusGenerating).
		Update("caption_status", models.CaptionStatusGenerating)

	if result.Error != nil {
		return fmt.Errorf("marking video generating: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the video does not exist or a generation is already running
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("checking video existence: %w", err)
		}
		if count == 0 {
			return ErrVideoNotFound
		}
		return ErrJobInProgress
	}

	return nil
}

func (r *repository) MarkReady(ctx context.Context, id uint, captionsPath string) error {
	return r.updateStatus(ctx, id, map[string]interface{}{
		"caption_status": models.CaptionStatusReady,
		"captions_path":  captionsPath,
	})
}

func (r *repository) MarkFailed(ctx context.Context, id uint) error {
	return r.updateStatus(ctx, id, map[string]interface{}{
		"caption_status": models.CaptionStatusFailed,
	})
}

func (r *repository) updateStatus(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("updating caption status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}

	return nil
}
