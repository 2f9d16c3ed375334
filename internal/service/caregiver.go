package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pawmarket/api/internal/cache"
	"github.com/pawmarket/api/internal/model"
)

// Directory cache tuning. Short TTLs keep listings fresh without
// invalidation plumbing.
const (
	directoryCacheTTL = 60 * time.Second
	maxDirectoryLimit = 100
)

// ProfileRepository defines the interface for caregiver profile storage
type ProfileRepository interface {
	GetCaregiverProfileByUserID(ctx context.Context, userID string) (*model.CaregiverProfile, error)
	UpdateCaregiverProfile(ctx context.Context, userID string, updates map[string]interface{}) (*model.CaregiverProfile, error)
	UpdateRatingAggregate(ctx context.Context, userID string, average, count int) error
	Search(ctx context.Context, filter model.CaregiverSearchFilter) ([]*model.CaregiverProfile, error)
	TopRated(ctx context.Context, limit int) ([]*model.CaregiverProfile, error)
	CountCaregivers(ctx context.Context) (int, error)
	CountActiveCities(ctx context.Context) (int, error)
	ListCaregiverUserIDs(ctx context.Context) ([]string, error)
}

// CaregiverService serves the public caregiver directory and caregiver
// self-service profile updates.
type CaregiverService struct {
	profileRepo      ProfileRepository
	catalogRepo      CatalogRepository
	availabilityRepo AvailabilityRepository
	reviewRepo       ReviewRepository
	cache            cache.Cache
}

// CaregiverServiceConfig holds configuration for the caregiver service
type CaregiverServiceConfig struct {
	ProfileRepo      ProfileRepository
	CatalogRepo      CatalogRepository
	AvailabilityRepo AvailabilityRepository
	ReviewRepo       ReviewRepository
	Cache            cache.Cache
}

// NewCaregiverService creates a new caregiver service
func NewCaregiverService(cfg CaregiverServiceConfig) *CaregiverService {
	return &CaregiverService{
		profileRepo:      cfg.ProfileRepo,
		catalogRepo:      cfg.CatalogRepo,
		availabilityRepo: cfg.AvailabilityRepo,
		reviewRepo:       cfg.ReviewRepo,
		cache:            cfg.Cache,
	}
}

// Search lists caregivers matching the filter, newest ratings first. Results
// are cached briefly since the directory is the hottest public read.
func (s *CaregiverService) Search(ctx context.Context, filter model.CaregiverSearchFilter) ([]*model.CaregiverListing, error) {
	if filter.Limit <= 0 {
		filter.Limit = model.DirectoryPageLimit
	}
	if filter.Limit > maxDirectoryLimit {
		filter.Limit = maxDirectoryLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	filter.City = strings.TrimSpace(filter.City)
	filter.ServiceTypeCode = strings.TrimSpace(filter.ServiceTypeCode)

	key := directoryCacheKey(filter)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var cached []*model.CaregiverListing
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	profiles, err := s.profileRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	listings := make([]*model.CaregiverListing, 0, len(profiles))
	for _, profile := range profiles {
		services, err := s.catalogRepo.ListCaregiverServices(ctx, profile.UserID, true)
		if err != nil {
			return nil, err
		}
		listings = append(listings, &model.CaregiverListing{
			Profile:  profile,
			Services: services,
		})
	}

	if s.cache != nil {
		if data, err := json.Marshal(listings); err == nil {
			_ = s.cache.Set(ctx, key, data, directoryCacheTTL)
		}
	}

	return listings, nil
}

func directoryCacheKey(filter model.CaregiverSearchFilter) string {
	largeDogs := "any"
	if filter.AcceptsLargeDogs != nil {
		if *filter.AcceptsLargeDogs {
			largeDogs = "yes"
		} else {
			largeDogs = "no"
		}
	}
	return fmt.Sprintf("caregivers:%s:%s:%d:%d:%d:%s:%d:%d",
		strings.ToLower(filter.City), filter.ServiceTypeCode, filter.MinRating,
		filter.PriceMinCents, filter.PriceMaxCents, largeDogs,
		filter.Limit, filter.Offset)
}

// Detail returns the public caregiver page: profile, active services,
// availability windows and the most recent reviews.
func (s *CaregiverService) Detail(ctx context.Context, caregiverID string) (*model.CaregiverDetail, error) {
	profile, err := s.profileRepo.GetCaregiverProfileByUserID(ctx, caregiverID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	services, err := s.catalogRepo.ListCaregiverServices(ctx, caregiverID, true)
	if err != nil {
		return nil, err
	}

	availability, err := s.availabilityRepo.ListWindows(ctx, caregiverID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByCaregiver(ctx, caregiverID, model.RecentReviewsOnPage, 0)
	if err != nil {
		return nil, err
	}

	return &model.CaregiverDetail{
		Profile:      profile,
		Services:     services,
		Availability: availability,
		Reviews:      reviews,
	}, nil
}

// GetProfile returns the caregiver's own profile
func (s *CaregiverService) GetProfile(ctx context.Context, caregiverID string) (*model.CaregiverProfile, error) {
	profile, err := s.profileRepo.GetCaregiverProfileByUserID(ctx, caregiverID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// UpdateProfile patches the caregiver's own listing profile
func (s *CaregiverService) UpdateProfile(ctx context.Context, caregiverID string, req model.UpdateCaregiverProfileRequest) (*model.CaregiverProfile, error) {
	if _, err := s.GetProfile(ctx, caregiverID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			return nil, ErrPhoneRequired
		}
		updates["phone"] = phone
	}
	if req.City != nil {
		city := strings.TrimSpace(*req.City)
		if city == "" {
			return nil, ErrCityRequired
		}
		updates["city"] = city
	}
	if req.Bio != nil {
		if len(*req.Bio) > model.MaxBioLength {
			return nil, ErrBioTooLong
		}
		updates["bio"] = *req.Bio
	}
	if req.YearsExperience != nil {
		updates["years_experience"] = *req.YearsExperience
	}
	if req.HourlyRateCents != nil {
		if *req.HourlyRateCents <= 0 {
			return nil, ErrInvalidHourlyRate
		}
		updates["hourly_rate_cents"] = *req.HourlyRateCents
	}
	if req.MaxPets != nil {
		if *req.MaxPets < 1 {
			return nil, ErrInvalidMaxPets
		}
		updates["max_pets"] = *req.MaxPets
	}
	if req.AcceptsLargeDogs != nil {
		updates["accepts_large_dogs"] = *req.AcceptsLargeDogs
	}
	if req.AcceptsAggressive != nil {
		updates["accepts_aggressive"] = *req.AcceptsAggressive
	}
	if req.ServiceRadiusKm != nil {
		if *req.ServiceRadiusKm < 0 {
			return nil, ErrInvalidServiceRadius
		}
		updates["service_radius_km"] = *req.ServiceRadiusKm
	}

	if len(updates) == 0 {
		return s.GetProfile(ctx, caregiverID)
	}

	return s.profileRepo.UpdateCaregiverProfile(ctx, caregiverID, updates)
}

// RecalcRating recomputes one caregiver's rating aggregate from the review
// table and stores it on the profile.
func (s *CaregiverService) RecalcRating(ctx context.Context, caregiverID string) (*model.RatingAggregate, error) {
	agg, err := s.reviewRepo.ComputeAggregate(ctx, caregiverID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.UpdateRatingAggregate(ctx, caregiverID, agg.Average, agg.Count); err != nil {
		return nil, err
	}

	return agg, nil
}

// RecalcAllRatings recomputes aggregates for every caregiver, returning the
// number of profiles updated.
func (s *CaregiverService) RecalcAllRatings(ctx context.Context) (int, error) {
	ids, err := s.profileRepo.ListCaregiverUserIDs(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, id := range ids {
		if _, err := s.RecalcRating(ctx, id); err != nil {
			return updated, fmt.Errorf("recalc rating for %s: %w", id, err)
		}
		updated++
	}
	return updated, nil
}
