package models

import (
	"time"

	"gorm.io/gorm"
)

// CaptionStatus tracks a video's caption generation lifecycle.
// idle -> generating -> ready or failed; both end states are terminal until
// the next explicit start.
type CaptionStatus string

const (
	CaptionStatusIdle       CaptionStatus = "idle"
	CaptionStatusGenerating CaptionStatus = "generating"
	CaptionStatusReady      CaptionStatus = "ready"
	CaptionStatusFailed     CaptionStatus = "failed"
)

// Video represents a sermon or teaching video owned by the site
type Video struct {
	gorm.Model
	Title         string        `json:"title" gorm:"not null"`
	StoragePath   string        `json:"storage_path" gorm:"not null"` // object key of the source video
	Duration      float64       `json:"duration"`
	CaptionStatus CaptionStatus `json:"caption_status" gorm:"default:'idle'"`
	CaptionsPath  string        `json:"captions_path,omitempty"` // object key of the WebVTT track, set when ready
}

// TableName specifies the table name for GORM
func (Video) TableName() string {
	return "videos"
}

// WorshipVideo is one entry of the mirrored worship playlist. Rows are
// overwritten wholesale on sync and deleted when the remote playlist no
// longer contains them; the table is a mirror, not a history.
type WorshipVideo struct {
	gorm.Model
	YoutubeVideoID string    `json:"youtube_video_id" gorm:"uniqueIndex;not null"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	PublishedAt    time.Time `json:"published_at"`
}

// TableName specifies the table name for GORM
func (WorshipVideo) TableName() string {
	return "worship_videos"
}

// YoutubeAuth is the singleton YouTube channel connection. At most one row
// exists; its absence means the channel is not connected, which dependent
// operations report as a normal result rather than an error.
type YoutubeAuth struct {
	gorm.Model
	AccessToken  string    `json:"-" gorm:"not null"`
	RefreshToken string    `json:"-" gorm:"not null"`
	ExpiresAt    time.Time `json:"expires_at"`
	ChannelID    string    `json:"channel_id"`
	ChannelName  string    `json:"channel_name"`
}

// TableName specifies the table name for GORM
func (YoutubeAuth) TableName() string {
	return "youtube_auth"
}

// SyncState records the time of the last successful playlist sync, used to
// enforce the sync cooldown. Singleton row like YoutubeAuth.
type SyncState struct {
	gorm.Model
	LastSyncedAt time.Time `json:"last_synced_at"`
}

// TableName specifies the table name for GORM
func (SyncState) TableName() string {
	return "sync_state"
}
