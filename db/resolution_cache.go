package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dpofinder/domain"
	"dpofinder/utils"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

type resolutionCache struct {
	redisClient *redis.Client
}

var (
	ResolutionCacheInstance resolutionCache
)

// InitResolutionCache initializes the Redis client for resolved
// addresses. A failed ping only degrades to uncached operation.
func InitResolutionCache() {
	ResolutionCacheInstance = resolutionCache{}
	ResolutionCacheInstance.redisClient = redis.NewClient(&redis.Options{
		Addr:     utils.Cfg.ResolutionCache.Url,
		Password: utils.Cfg.ResolutionCache.Password,
		DB:       0, // Use default DB
	})

	ctx := context.Background()
	_, err := utils.RetryWrapper(ctx, func() (bool, error) {
		return true, ResolutionCacheInstance.redisClient.Ping(ctx).Err()
	})
	if err != nil {
		log.WithError(err).Warn("Failed to connect to Resolution Redis")
	} else {
		log.Info("Connected to Resolution Redis successfully")
	}
}

// GetCachedResolution retrieves a cached resolution for a parsed
// address. A cache miss returns nil, nil.
func (cache resolutionCache) GetCachedResolution(ctx context.Context, parsed domain.ParsedAddress) (*domain.Resolution, error) {
	if cache.redisClient == nil {
		return nil, nil
	}

	key := parsed.CacheKey()
	data, err := cache.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).Warn("Failed to get data from Redis")
			return nil, fmt.Errorf("failed to get data from Redis: %w", err)
		}

		return nil, nil
	}

	var resolution domain.Resolution
	if err := json.Unmarshal(data, &resolution); err != nil {
		log.WithError(err).Error("Failed to unmarshal cached resolution")
		return nil, fmt.Errorf("failed to unmarshal cached resolution: %w", err)
	}

	log.Debug("Retrieved resolution from cache")
	return &resolution, nil
}

// CacheResolution stores a resolution for a parsed address with the
// configured TTL.
func (cache resolutionCache) CacheResolution(ctx context.Context, parsed domain.ParsedAddress, resolution domain.Resolution) error {
	if cache.redisClient == nil {
		return nil
	}

	data, err := json.Marshal(resolution)
	if err != nil {
		log.WithError(err).Error("Failed to marshal resolution for caching")
		return fmt.Errorf("failed to marshal resolution: %w", err)
	}

	key := parsed.CacheKey()
	ttl := time.Duration(utils.Cfg.ResolutionCache.TTL) * time.Second
	if err := cache.redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
		log.WithError(err).Warn("Failed to cache resolution")
		return fmt.Errorf("failed to cache resolution: %w", err)
	}

	return nil
}
