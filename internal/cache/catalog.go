package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/topcardetailing/booking-api/internal/models"
)

const (
	catalogKey = "catalog:service_packages"
	catalogTTL = 5 * time.Minute
)

// Catalog caches the service-package listing in Redis. A nil client turns
// every method into a no-op, so callers don't branch on whether caching is
// configured.
type Catalog struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewCatalog(redisAddr string, log *zap.Logger) *Catalog {
	if redisAddr == "" {
		return &Catalog{log: log}
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	return &Catalog{rdb: rdb, log: log}
}

func (c *Catalog) Get(ctx context.Context) ([]models.ServicePackage, bool) {
	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, catalogKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var pkgs []models.ServicePackage
	if err := json.Unmarshal([]byte(raw), &pkgs); err != nil {
		return nil, false
	}
	return pkgs, true
}

func (c *Catalog) Set(ctx context.Context, pkgs []models.ServicePackage) {
	if c.rdb == nil {
		return
	}

	raw, err := json.Marshal(pkgs)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, catalogKey, raw, catalogTTL).Err(); err != nil {
		c.log.Warn("catalog cache write failed", zap.Error(err))
	}
}

// Invalidate is called after any catalog mutation.
func (c *Catalog) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, catalogKey).Err(); err != nil {
		c.log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
