package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pawmarket/api/internal/cache"
	"github.com/pawmarket/api/internal/model"
)

const (
	statsCacheKey = "stats:marketplace"
	statsCacheTTL = 5 * time.Minute
	topRatedCount = 3
)

// StatsService aggregates public marketplace counters for the landing page.
// Numbers are approximate by design; the cache window trades freshness for
// not hammering five count queries per page view.
type StatsService struct {
	profileRepo ProfileRepository
	catalogRepo CatalogRepository
	bookingRepo BookingRepository
	cache       cache.Cache
}

// StatsServiceConfig holds configuration for the stats service
type StatsServiceConfig struct {
	ProfileRepo ProfileRepository
	CatalogRepo CatalogRepository
	BookingRepo BookingRepository
	Cache       cache.Cache
}

// NewStatsService creates a new stats service
func NewStatsService(cfg StatsServiceConfig) *StatsService {
	return &StatsService{
		profileRepo: cfg.ProfileRepo,
		catalogRepo: cfg.CatalogRepo,
		bookingRepo: cfg.BookingRepo,
		cache:       cfg.Cache,
	}
}

// Marketplace returns the public stats block, serving from cache when fresh
func (s *StatsService) Marketplace(ctx context.Context) (*model.MarketplaceStats, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, statsCacheKey); err == nil && data != nil {
			var stats model.MarketplaceStats
			if err := json.Unmarshal(data, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	caregivers, err := s.profileRepo.CountCaregivers(ctx)
	if err != nil {
		return nil, err
	}
	serviceTypes, err := s.catalogRepo.CountServiceTypes(ctx)
	if err != nil {
		return nil, err
	}
	cities, err := s.profileRepo.CountActiveCities(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.bookingRepo.CountByStatus(ctx, model.BookingStatusCompleted)
	if err != nil {
		return nil, err
	}
	top, err := s.profileRepo.TopRated(ctx, topRatedCount)
	if err != nil {
		return nil, err
	}

	stats := &model.MarketplaceStats{
		Caregivers:        caregivers,
		ServiceTypes:      serviceTypes,
		ActiveCities:      cities,
		CompletedBookings: completed,
		TopCaregivers:     top,
	}

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			_ = s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL)
		}
	}

	return stats, nil
}
