package types

import "github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// CaptionStatusResponse reports a video's caption state
type CaptionStatusResponse struct {
	Status       models.CaptionStatus `json:"status"`
	CaptionsPath string               `json:"captionsPath,omitempty"`
}

// SyncResponse summarizes a completed playlist sync
type SyncResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

// RateLimitedResponse tells the client when to try again
type RateLimitedResponse struct {
	Error             string `json:"error"`
	RetryAfterSeconds int    `json:"retryAfterSeconds"`
}

// WorshipVideosResponse lists the mirrored playlist
type WorshipVideosResponse struct {
	Videos []models.WorshipVideo `json:"videos"`
	Count  int                   `json:"count"`
}

// ConnectionStatusResponse reports the YouTube channel link state
type ConnectionStatusResponse struct {
	Connected   bool   `json:"connected"`
	ChannelName string `json:"channelName,omitempty"`
}
