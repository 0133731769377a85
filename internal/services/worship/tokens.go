package worship

import (
	"context"
	"log"
	"sync"
	"time"
)

// expirySkew refreshes tokens this far before they actually expire, so a
// token never dies mid-request.
const expirySkew = 5 * time.Minute

// TokenRefresher hands out a valid access token for the linked channel,
// refreshing it when it is expired or about to expire. Refreshes are
// serialized by the mutex so concurrent callers cannot race two exchanges
// against the same refresh token.
type TokenRefresher struct {
	mu        sync.Mutex
	repo      Repository
	exchanger TokenExchanger
	now       func() time.Time
}

// NewTokenRefresher creates a token refresher
func NewTokenRefresher(repo Repository, exchanger TokenExchanger) *TokenRefresher {
	return &TokenRefresher{
		repo:      repo,
		exchanger: exchanger,
		now:       time.Now,
	}
}

// ValidAccessToken returns an access token good for at least the skew window.
// No linked channel, and any refresh failure, surface as ErrNotConnected:
// the caller reports a disconnected integration rather than an error.
func (t *TokenRefresher) ValidAccessToken(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	auth, err := t.repo.GetAuth(ctx)
	if err != nil {
		return "", err
	}

	if auth.ExpiresAt.After(t.now().Add(expirySkew)) {
		return auth.AccessToken, nil
	}

	token, err := t.exchanger.RefreshToken(ctx, auth.RefreshToken)
	if err != nil {
		log.Printf("[WARN] Token refresh failed, treating channel as disconnected: %v", err)
		return "", ErrNotConnected
	}

	auth.AccessToken = token.AccessToken
	auth.ExpiresAt = t.now().Add(time.Duration(token.ExpiresIn) * time.Second)

	if err := t.repo.SaveAuth(ctx, auth); err != nil {
		return "", err
	}

	log.Printf("[DEBUG] Refreshed access token for channel %s, valid until %s",
		auth.ChannelID, auth.ExpiresAt.Format(time.RFC3339))

	return auth.AccessToken, nil
}
