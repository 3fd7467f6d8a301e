// Package service holds the budgeting business rules on top of the repository.
package service

import (
	"context"
	"time"

	"budgetmate/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Clock returns the current time; tests replace it
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// cache is a best-effort read-through cache; Redis failures only cost a database round trip
type cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func newCache(rdb *redis.Client, ttl time.Duration) cache {
	return cache{rdb: rdb, ttl: ttl}
}

func (c cache) get(ctx context.Context, key string, dest any) bool {
	found, err := utils.GetCache(ctx, c.rdb, key, dest)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache read failed")
		return false
	}
	return found
}

func (c cache) set(ctx context.Context, key string, value any) {
	if err := utils.SetCache(ctx, c.rdb, key, value, c.ttl); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
}

func (c cache) del(ctx context.Context, keys ...string) {
	if err := utils.DeleteCache(ctx, c.rdb, keys...); err != nil {
		logrus.WithFields(logrus.Fields{"keys": keys, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}

func (c cache) delPrefix(ctx context.Context, prefix string) {
	if err := utils.DeleteCacheByPrefix(ctx, c.rdb, prefix); err != nil {
		logrus.WithFields(logrus.Fields{"prefix": prefix, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}
