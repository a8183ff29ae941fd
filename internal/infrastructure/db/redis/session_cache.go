package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
)

const snapshotTTL = 24 * time.Hour

// SessionCache stores the session-scoped user snapshot maintained by the sync
// watcher. Key format: session:<user_id>:snapshot
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

// SaveSnapshot persists the user record as the current session view
// (expires after snapshotTTL).
func (c *SessionCache) SaveSnapshot(ctx context.Context, user domain.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session cache: encode snapshot: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), b, snapshotTTL).Err()
}

// Clear removes the cached snapshot for a terminated session.
func (c *SessionCache) Clear(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *SessionCache) key(userID string) string {
	return fmt.Sprintf("session:%s:snapshot", userID)
}
