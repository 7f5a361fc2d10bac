package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"dpofinder/domain"
	"dpofinder/utils"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

type suggestionCache struct {
	redisClient *redis.Client
}

var (
	SuggestionCacheInstance suggestionCache
)

// InitSuggestionCache initializes the Redis client for typeahead
// suggestion lists. Suggestions churn fast, so this cache runs with a
// much shorter TTL than the resolution cache.
func InitSuggestionCache() {
	SuggestionCacheInstance = suggestionCache{}
	SuggestionCacheInstance.redisClient = redis.NewClient(&redis.Options{
		Addr:     utils.Cfg.SuggestionCache.Url,
		Password: utils.Cfg.SuggestionCache.Password,
		DB:       0, // Use default DB
	})

	ctx := context.Background()
	_, err := utils.RetryWrapper(ctx, func() (bool, error) {
		return true, SuggestionCacheInstance.redisClient.Ping(ctx).Err()
	})
	if err != nil {
		log.WithError(err).Warn("Failed to connect to Suggestion Redis")
	} else {
		log.Info("Connected to Suggestion Redis successfully")
	}
}

// cacheKey includes the limit: the same query with a larger limit is a
// different result set.
func (cache suggestionCache) cacheKey(parsed domain.ParsedAddress, limit int) string {
	return parsed.CacheKey() + ":" + strconv.Itoa(limit)
}

// GetCachedSuggestions retrieves cached suggestions for a query.
// A cache miss returns nil, nil.
func (cache suggestionCache) GetCachedSuggestions(ctx context.Context, parsed domain.ParsedAddress, limit int) ([]domain.Suggestion, error) {
	if cache.redisClient == nil {
		return nil, nil
	}

	key := cache.cacheKey(parsed, limit)
	data, err := cache.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).Warn("Failed to get data from Redis")
			return nil, fmt.Errorf("failed to get cached suggestions: %w", err)
		}

		return nil, nil
	}

	var suggestions []domain.Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		log.WithError(err).Error("Failed to unmarshal cached suggestions")
		return nil, fmt.Errorf("failed to unmarshal cached suggestions: %w", err)
	}

	log.Debug("Retrieved suggestions from cache")
	return suggestions, nil
}

// CacheSuggestions stores a suggestion list for a query.
func (cache suggestionCache) CacheSuggestions(ctx context.Context, parsed domain.ParsedAddress, limit int, suggestions []domain.Suggestion) error {
	if cache.redisClient == nil || len(suggestions) == 0 {
		return nil
	}

	data, err := json.Marshal(suggestions)
	if err != nil {
		log.WithError(err).Error("Failed to marshal suggestions for caching")
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	key := cache.cacheKey(parsed, limit)
	ttl := time.Duration(utils.Cfg.SuggestionCache.TTL) * time.Second
	if err := cache.redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
		log.WithError(err).Warn("Failed to cache suggestions")
		return fmt.Errorf("failed to cache suggestions: %w", err)
	}

	return nil
}
