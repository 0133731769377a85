// Package youtube is a client for the slice of the YouTube Data API this
// service uses: playlist fetches and OAuth refresh-token exchanges.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResultsPerPage = "50"

// Config holds YouTube API settings
type Config struct {
	APIBaseURL   string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client calls the YouTube Data API
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient creates a YouTube API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
	}
}

// PlaylistItems fetches every item of a playlist, following pageToken until
// the API stops returning one. Placeholder entries for deleted or private
// videos are dropped here so they never reach the mirror.
func (c *Client) PlaylistItems(ctx context.Context, accessToken, playlistID string) ([]PlaylistItem, error) {
	var items []PlaylistItem
	pageToken := ""

	for {
		page, err := c.fetchPage(ctx, accessToken, playlistID, pageToken)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			videoID := item.Snippet.ResourceID.VideoID
			if videoID == "" {
				continue
			}
			if item.Snippet.Title == "Deleted video" || item.Snippet.Title == "Private video" {
				continue
			}

			publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)

			items = append(items, PlaylistItem{
				VideoID:      videoID,
				Title:        item.Snippet.Title,
				Description:  item.Snippet.Description,
				ThumbnailURL: bestThumbnail(item.Snippet.Thumbnails),
				PublishedAt:  publishedAt,
			})
		}

		if page.NextPageToken == "" {
			return items, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) fetchPage(ctx context.Context, accessToken, playlistID, pageToken string) (*playlistItemsResponse, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", maxResultsPerPage)
	params.Set("playlistId", playlistID)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	reqURL := fmt.Sprintf("%s/playlistItems?%s", c.cfg.APIBaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating playlist request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching playlist page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return nil, fmt.Errorf("reading playlist response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("playlist fetch returned status %d: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var page playlistItemsResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding playlist response: %w", err)
	}

	return &page, nil
}

// RefreshToken exchanges a refresh token for a fresh access token
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("refresh_token", refreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchanging refresh token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token refresh returned status %d: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var token TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("token refresh returned no access token")
	}

	return &token, nil
}

// bestThumbnail prefers the medium size, then whatever the API offered
func bestThumbnail(thumbnails map[string]struct {
	URL string `json:"url"`
}) string {
	for _, size := range []string{"medium", "high", "default"} {
		if t, ok := thumbnails[size]; ok && t.URL != "" {
			return t.URL
		}
	}
	for _, t := range thumbnails {
		if t.URL != "" {
			return t.URL
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
