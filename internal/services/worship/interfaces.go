package worship

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/youtube"
)

// ErrNotConnected means no YouTube channel is linked, or the stored refresh
// token no longer works. Callers treat it as a normal state, not a failure.
var ErrNotConnected = errors.New("youtube channel not connected")

// CooldownError rejects a sync that follows a successful one too closely
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("sync completed recently, try again in %d minute(s)", e.RemainingMinutes())
}

// RemainingMinutes is the remaining wait rounded up to whole minutes, never
// less than 1. Users see minutes, not a raw duration.
func (e *CooldownError) RemainingMinutes() int {
	mins := int((e.Remaining + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	return mins
}

// Repository defines persistence for the worship mirror and channel auth
type Repository interface {
	GetAuth(ctx context.Context) (*models.YoutubeAuth, error)
	SaveAuth(ctx context.Context, auth *models.YoutubeAuth) error

	ListVideos(ctx context.Context) ([]models.WorshipVideo, error)
	CreateVideo(ctx context.Context, video *models.WorshipVideo) error
	UpdateVideo(ctx context.Context, video *models.WorshipVideo) error
	DeleteVideosNotIn(ctx context.Context, youtubeVideoIDs []string) (int64, error)

	GetLastSyncedAt(ctx context.Context) (time.Time, error)
	SetLastSyncedAt(ctx context.Context, t time.Time) error
}

// PlaylistFetcher retrieves the remote playlist
type PlaylistFetcher interface {
	PlaylistItems(ctx context.Context, accessToken, playlistID string) ([]youtube.PlaylistItem, error)
}

// TokenExchanger performs the OAuth refresh-token exchange
type TokenExchanger interface {
	RefreshToken(ctx context.Context, refreshToken string) (*youtube.TokenResponse, error)
}

// SyncResult summarizes what a sync changed in the mirror
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

// ConnectionStatus reports whether the channel is linked
type ConnectionStatus struct {
	Connected   bool   `json:"connected"`
	ChannelName string `json:"channel_name,omitempty"`
}
