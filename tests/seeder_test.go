package tests

import (
	"context"
	"testing"

	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/repository"
	"github.com/pawmarket/api/internal/service"
	"github.com/pawmarket/api/internal/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
FEATURE: Seeding
DOMAIN: Development data

ACCEPTANCE CRITERIA:
===================

AC-SEED-001: Service Type Baseline
  GIVEN an empty catalog
  WHEN service types are ensured
  THEN the standard catalog appears once, never duplicated

AC-SEED-002: Seed All
  GIVEN an empty marketplace
  WHEN a combined seed runs with defaults
  THEN owners with pets, bookable caregivers and bookings between them exist
  AND every seeded booking splits its price into fee plus payout exactly

AC-SEED-003: Scenarios
  GIVEN a scenario name
  WHEN it is seeded
  THEN the scenario's shape appears, and unknown names fail

AC-SEED-004: Cleanup
  GIVEN seeded data under a prefix
  WHEN cleanup runs for that prefix
  THEN the seeded records disappear but the service type catalog survives
*/

type seederHarness struct {
	seeder    *service.SeederService
	stats     *service.StatsService
	caregiver *service.CaregiverService
	admin     *service.AdminUsersService
	catalog   *repository.CatalogRepository
	pets      *repository.PetRepository
}

func newSeederHarness(t *testing.T, tdb *testdb.TestDB) *seederHarness {
	t.Helper()

	profileRepo := repository.NewProfileRepository(tdb.DB)
	catalogRepo := repository.NewCatalogRepository(tdb.DB)
	bookingRepo := repository.NewBookingRepository(tdb.DB)

	return &seederHarness{
		seeder: service.NewSeederService(tdb.DB, service.NewCommissionCalculator(15)),
		stats: service.NewStatsService(service.StatsServiceConfig{
			ProfileRepo: profileRepo,
			CatalogRepo: catalogRepo,
			BookingRepo: bookingRepo,
		}),
		caregiver: service.NewCaregiverService(service.CaregiverServiceConfig{
			ProfileRepo:      profileRepo,
			CatalogRepo:      catalogRepo,
			AvailabilityRepo: repository.NewAvailabilityRepository(tdb.DB),
			ReviewRepo:       repository.NewReviewRepository(tdb.DB),
		}),
		admin:   service.NewAdminUsersService(repository.NewUserRepository(tdb.DB)),
		catalog: catalogRepo,
		pets:    repository.NewPetRepository(tdb.DB),
	}
}

func TestSeeder_ServiceTypeBaseline(t *testing.T) {
	// AC-SEED-001: Service Type Baseline
	tdb := testdb.New(t)
	defer tdb.Close()

	h := newSeederHarness(t, tdb)
	ctx := context.Background()

	result, err := h.seeder.EnsureServiceTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Created)

	types, err := h.catalog.ListServiceTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 5)
	codes := make(map[string]bool)
	for _, st := range types {
		codes[st.Code] = true
		assert.Greater(t, st.BaseDurationMinutes, 0)
		assert.Greater(t, st.DefaultPriceCents, int64(0))
	}
	assert.True(t, codes[model.ServiceCodeDogWalk])
	assert.True(t, codes[model.ServiceCodeBoarding])

	// Idempotent on repeat
	result, err = h.seeder.EnsureServiceTypes(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Created)

	types, err = h.catalog.ListServiceTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 5)
}

func TestSeeder_SeedAll(t *testing.T) {
	// AC-SEED-002: Seed All
	tdb := testdb.New(t)
	defer tdb.Close()

	h := newSeederHarness(t, tdb)
	ctx := context.Background()

	result, err := h.seeder.SeedAll(ctx, service.SeedAllRequest{
		Completed:   true,
		WithReviews: true,
	})
	require.NoError(t, err)
	assert.Greater(t, result.Created, 0)
	assert.NotEmpty(t, result.IDs)

	stats, err := h.stats.Marketplace(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Caregivers)
	assert.Equal(t, 5, stats.ServiceTypes)
	assert.Greater(t, stats.CompletedBookings, 0)

	// Every seeded caregiver is bookable: active offerings on the listing
	listings, err := h.caregiver.Search(ctx, model.CaregiverSearchFilter{})
	require.NoError(t, err)
	require.Len(t, listings, 5)
	for _, listing := range listings {
		assert.NotEmpty(t, listing.Services, "caregiver %s has no offerings", listing.Profile.UserID)
		for _, offering := range listing.Services {
			assert.True(t, offering.Active)
			assert.Greater(t, offering.PriceCents, int64(0))
		}
		// Detail pages work out of the box
		detail, err := h.caregiver.Detail(ctx, listing.Profile.UserID)
		require.NoError(t, err)
		assert.NotEmpty(t, detail.Availability)
	}

	// Every seeded owner comes with at least one pet
	owners, err := h.admin.ListUsers(ctx, service.ListUsersRequest{Role: "owner", PageSize: 100})
	require.NoError(t, err)
	require.Len(t, owners.Users, 5)
	for _, owner := range owners.Users {
		pets, err := h.pets.ListByOwner(ctx, owner.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, pets, "owner %s has no pets", owner.ID)
	}
}

func TestSeeder_Scenarios(t *testing.T) {
	// AC-SEED-003: Scenarios
	tdb := testdb.New(t)
	defer tdb.Close()

	h := newSeederHarness(t, tdb)
	ctx := context.Background()

	t.Run("city directory", func(t *testing.T) {
		result, err := h.seeder.SeedScenario(ctx, service.SeedScenarioRequest{Scenario: "city_directory"})
		require.NoError(t, err)
		assert.Greater(t, result.Created, 0)

		listings, err := h.caregiver.Search(ctx, model.CaregiverSearchFilter{City: "Portland"})
		require.NoError(t, err)
		assert.Len(t, listings, 12)
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, err := h.seeder.SeedScenario(ctx, service.SeedScenarioRequest{Scenario: "everything"})
		require.Error(t, err)
	})
}

func TestSeeder_Cleanup(t *testing.T) {
	// AC-SEED-004: Cleanup
	tdb := testdb.New(t)
	defer tdb.Close()

	h := newSeederHarness(t, tdb)
	ctx := context.Background()

	_, err := h.seeder.SeedAll(ctx, service.SeedAllRequest{Prefix: "wipe_"})
	require.NoError(t, err)

	listings, err := h.caregiver.Search(ctx, model.CaregiverSearchFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, listings)

	cleanup, err := h.seeder.Cleanup(ctx, "wipe_")
	require.NoError(t, err)
	assert.Greater(t, cleanup.Deleted, 0)

	listings, err = h.caregiver.Search(ctx, model.CaregiverSearchFilter{})
	require.NoError(t, err)
	assert.Empty(t, listings)

	// The catalog is shared infrastructure and survives cleanup
	types, err := h.catalog.ListServiceTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 5)
}

func TestSeeder_InputBounds(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	h := newSeederHarness(t, tdb)
	ctx := context.Background()

	_, err := h.seeder.SeedOwners(ctx, service.SeedOwnersRequest{Count: 0})
	require.Error(t, err)
	_, err = h.seeder.SeedOwners(ctx, service.SeedOwnersRequest{Count: 1001})
	require.Error(t, err)
	_, err = h.seeder.SeedCaregivers(ctx, service.SeedCaregiversRequest{Count: -1})
	require.Error(t, err)
	_, err = h.seeder.SeedBookings(ctx, service.SeedBookingsRequest{Count: 501})
	require.Error(t, err)
}
