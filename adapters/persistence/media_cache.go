package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tuanng/mediahost/internal/domain/media"
	"github.com/tuanng/mediahost/pkg/logger"
)

const mediaCacheTTL = 5 * time.Minute

// MediaCache keeps recently served media records (with assets) keyed by
// public id. Misses and redis errors both fall through to the database.
type MediaCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewMediaCache(rdb *redis.Client, log logger.Logger) *MediaCache {
	return &MediaCache{rdb: rdb, logger: log}
}

func mediaCacheKey(publicID string) string {
	return "media:public:" + publicID
}

func (c *MediaCache) Get(ctx context.Context, publicID string) *media.Media {
	if c == nil || c.rdb == nil {
		return nil
	}
	payload, err := c.rdb.Get(ctx, mediaCacheKey(publicID)).Bytes()
	if err != nil {
		return nil
	}
	m := &media.Media{}
	if err := json.Unmarshal(payload, m); err != nil {
		c.logger.Warn("dropping unreadable media cache entry", zap.String("public_id", publicID))
		c.Invalidate(ctx, publicID)
		return nil
	}
	return m
}

func (c *MediaCache) Set(ctx context.Context, m *media.Media) {
	if c == nil || c.rdb == nil {
		return
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, mediaCacheKey(m.PublicID), payload, mediaCacheTTL).Err(); err != nil {
		c.logger.Warn("failed to cache media record", zap.String("public_id", m.PublicID))
	}
}

func (c *MediaCache) Invalidate(ctx context.Context, publicID string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, mediaCacheKey(publicID)).Err(); err != nil {
		c.logger.Warn("failed to invalidate media cache entry", zap.String("public_id", publicID))
	}
}
