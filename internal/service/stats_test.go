package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/pawmarket/api/internal/cache"
	"github.com/pawmarket/api/internal/model"
)

type statsTestEnv struct {
	svc         *StatsService
	profileRepo *mockProfileRepo
	catalogRepo *mockCatalogRepo
	bookingRepo *mockBookingRepo
}

func setupStatsService(t *testing.T, withCache bool) *statsTestEnv {
	t.Helper()

	env := &statsTestEnv{
		profileRepo: newMockProfileRepo(),
		catalogRepo: newMockCatalogRepo(),
		bookingRepo: newMockBookingRepo(),
	}

	var c cache.Cache
	if withCache {
		mem := cache.NewMemoryCache(0)
		t.Cleanup(func() { _ = mem.Close() })
		c = mem
	}

	env.svc = NewStatsService(StatsServiceConfig{
		ProfileRepo: env.profileRepo,
		CatalogRepo: env.catalogRepo,
		BookingRepo: env.bookingRepo,
		Cache:       c,
	})
	return env
}

func (env *statsTestEnv) seedMarketplace() {
	cities := []string{"Portland", "Seattle", "Portland", "Austin"}
	for i, city := range cities {
		userID := fmt.Sprintf("user:c%d", i)
		env.profileRepo.profiles[userID] = &model.CaregiverProfile{
			ID: "caregiver_profile:" + userID, UserID: userID,
			City: city, RatingAverage: 100 * (i + 1), RatingCount: i,
		}
	}
	env.catalogRepo.seedServiceType("dog_walk", 2000)
	env.catalogRepo.seedServiceType("boarding", 6500)

	for i := 0; i < 3; i++ {
		env.bookingRepo.nextID++
		id := fmt.Sprintf("booking:%d", env.bookingRepo.nextID)
		env.bookingRepo.bookings[id] = &model.Booking{
			ID: id, OwnerID: "user:o", CaregiverID: "user:c0",
			Status: model.BookingStatusCompleted,
		}
	}
	env.bookingRepo.nextID++
	pending := fmt.Sprintf("booking:%d", env.bookingRepo.nextID)
	env.bookingRepo.bookings[pending] = &model.Booking{
		ID: pending, OwnerID: "user:o", CaregiverID: "user:c0",
		Status: model.BookingStatusPending,
	}
}

func TestStatsService_Marketplace(t *testing.T) {
	env := setupStatsService(t, false)
	ctx := context.Background()
	env.seedMarketplace()

	stats, err := env.svc.Marketplace(ctx)
	if err != nil {
		t.Fatalf("Marketplace failed: %v", err)
	}
	if stats.Caregivers != 4 {
		t.Errorf("expected 4 caregivers, got %d", stats.Caregivers)
	}
	if stats.ServiceTypes != 2 {
		t.Errorf("expected 2 service types, got %d", stats.ServiceTypes)
	}
	if stats.ActiveCities != 3 {
		t.Errorf("expected 3 cities, got %d", stats.ActiveCities)
	}
	if stats.CompletedBookings != 3 {
		t.Errorf("expected 3 completed bookings, got %d", stats.CompletedBookings)
	}
	if len(stats.TopCaregivers) != 3 {
		t.Fatalf("expected 3 top caregivers, got %d", len(stats.TopCaregivers))
	}
	// Highest rated first
	if stats.TopCaregivers[0].RatingAverage != 400 {
		t.Errorf("expected top rating 400, got %d", stats.TopCaregivers[0].RatingAverage)
	}
}

func TestStatsService_Marketplace_Empty(t *testing.T) {
	env := setupStatsService(t, false)
	ctx := context.Background()

	stats, err := env.svc.Marketplace(ctx)
	if err != nil {
		t.Fatalf("Marketplace failed: %v", err)
	}
	if stats.Caregivers != 0 || stats.CompletedBookings != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}

func TestStatsService_Marketplace_ServesFromCache(t *testing.T) {
	env := setupStatsService(t, true)
	ctx := context.Background()
	env.seedMarketplace()

	first, err := env.svc.Marketplace(ctx)
	if err != nil {
		t.Fatalf("Marketplace failed: %v", err)
	}

	// Later writes are invisible while the cached block lives
	env.profileRepo.profiles["user:new"] = &model.CaregiverProfile{
		UserID: "user:new", City: "Denver",
	}

	second, err := env.svc.Marketplace(ctx)
	if err != nil {
		t.Fatalf("Marketplace failed: %v", err)
	}
	if second.Caregivers != first.Caregivers {
		t.Errorf("expected cached count %d, got %d", first.Caregivers, second.Caregivers)
	}
}
