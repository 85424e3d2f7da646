package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	propertyRepo "havenstay/database/repository/property"
	"havenstay/models"
	"havenstay/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service runs listing searches, caching result pages in Redis.
type Service struct {
	Repo  propertyRepo.PropertyRepository
	Cache *redis.Client
	TTL   time.Duration
}

func NewService(repo propertyRepo.PropertyRepository, cache *redis.Client) *Service {
	return &Service{Repo: repo, Cache: cache, TTL: utils.SearchCacheTTL}
}

// Search normalizes filters and issues one query. Cache failures are logged
// and fall through to Mongo.
func (s *Service) Search(ctx context.Context, filters models.SearchFilters) ([]models.PropertyCard, error) {
	if err := models.Validate(filters); err != nil {
		return nil, err
	}
	q, err := Normalize(filters)
	if err != nil {
		return nil, err
	}

	key := utils.SearchCachePrefix + q.CacheKey()
	if cards, ok := s.fromCache(ctx, key); ok {
		return cards, nil
	}

	cards, err := s.Repo.Search(ctx, q.Pipeline())
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	s.toCache(ctx, key, cards)
	return cards, nil
}

func (s *Service) fromCache(ctx context.Context, key string) ([]models.PropertyCard, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("search cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var cards []models.PropertyCard
	if err := json.Unmarshal(raw, &cards); err != nil {
		utils.GetLogger().Warn("search cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return cards, true
}

func (s *Service) toCache(ctx context.Context, key string, cards []models.PropertyCard) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(cards)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, raw, s.TTL).Err(); err != nil {
		utils.GetLogger().Warn("search cache write failed", zap.String("key", key), zap.Error(err))
	}
}
