package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
	"github.com/minhvodev/eatzy-gateway/pkg/redis"
)

const defaultRestaurantTTL = 5 * time.Minute

// restaurantLoader is the backend surface the service needs.
type restaurantLoader interface {
	GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*Restaurant, error)
}

// restaurantCache is the slice of the redis client the service uses.
type restaurantCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	RestaurantKey(restaurantID string) string
}

// Service serves restaurant delivery profiles through a read-through cache.
// Cache trouble never fails a lookup; the service falls back to the backend
// and logs the degradation.
type Service struct {
	loader restaurantLoader
	cache  restaurantCache
	ttl    time.Duration
	logg   *logger.Logger
}

// NewService wires the loader and cache together. A nil cache disables
// caching entirely.
func NewService(loader restaurantLoader, cache restaurantCache, ttl time.Duration, logg *logger.Logger) *Service {
	if ttl <= 0 {
		ttl = defaultRestaurantTTL
	}
	return &Service{loader: loader, cache: cache, ttl: ttl, logg: logg}
}

// GetRestaurant returns the restaurant's delivery profile, from cache when
// fresh.
func (s *Service) GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*Restaurant, error) {
	if s.cache == nil {
		return s.loader.GetRestaurant(ctx, restaurantID)
	}

	key := s.cache.RestaurantKey(restaurantID.String())
	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var restaurant Restaurant
		unmarshalErr := json.Unmarshal([]byte(cached), &restaurant)
		if unmarshalErr == nil {
			return &restaurant, nil
		}
		// Corrupt entry: treat as a miss and overwrite below.
		s.warn(ctx, "dropping unreadable restaurant cache entry", unmarshalErr)
	case !errors.Is(err, redis.Nil):
		s.warn(ctx, "restaurant cache read failed, falling back to backend", err)
	}

	restaurant, err := s.loader.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(restaurant); marshalErr == nil {
		if setErr := s.cache.Set(ctx, key, payload, s.ttl); setErr != nil {
			s.warn(ctx, "restaurant cache write failed", setErr)
		}
	}
	return restaurant, nil
}

func (s *Service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}
