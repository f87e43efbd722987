package location

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/cache"
	"github.com/georgemunganga/vendora-backend/internal/platform/metrics"
	"go.uber.org/zap"
)

type Service interface {
	Lookup(ctx context.Context, lat, lon float64) (*Location, error)
}

type service struct {
	geocoder Geocoder
	cache    cache.Cache
	ttl      time.Duration
	log      *zap.Logger
}

func NewService(g Geocoder, c cache.Cache, ttl time.Duration, log *zap.Logger) Service {
	return &service{geocoder: g, cache: c, ttl: ttl, log: log}
}

// ValidateCoordinates checks lat/lon are within WGS84 bounds.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return apperr.Validation("lat and lon must be numeric")
	}
	if lat < -90 || lat > 90 {
		return apperr.Validation("lat must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return apperr.Validation("lon must be between -180 and 180")
	}
	return nil
}

// CacheKey rounds to 4 decimal places, roughly 11 m at the equator.
func CacheKey(lat, lon float64) string {
	return fmt.Sprintf("geo:%.4f,%.4f", lat, lon)
}

func (s *service) Lookup(ctx context.Context, lat, lon float64) (*Location, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	key := CacheKey(lat, lon)
	if b, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("geocode cache read", zap.String("key", key), zap.Error(err))
	} else if ok {
		var loc Location
		if err := json.Unmarshal(b, &loc); err == nil {
			metrics.GeocodeRequest("hit")
			return &loc, nil
		}
	}

	loc, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		metrics.GeocodeRequest("error")
		s.log.Error("reverse geocode", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return nil, err
	}
	metrics.GeocodeRequest("miss")

	if b, err := json.Marshal(loc); err == nil {
		if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
			s.log.Warn("geocode cache write", zap.String("key", key), zap.Error(err))
		}
	}
	return loc, nil
}
