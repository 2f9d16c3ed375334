package tests

import (
	"context"
	"testing"

	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/repository"
	"github.com/pawmarket/api/internal/service"
	"github.com/pawmarket/api/internal/testing/fixtures"
	"github.com/pawmarket/api/internal/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
FEATURE: Walks
DOMAIN: Walk

ACCEPTANCE CRITERIA:
===================

AC-WALK-001: Start Walk
  GIVEN an accepted booking
  WHEN its caregiver starts a walk
  THEN an open walk is created
  AND starting requires an accepted booking of mine with no walk already open

AC-WALK-002: Walk Telemetry
  GIVEN an open walk
  WHEN the caregiver patches distance, route, counters and notes
  THEN only the supplied fields change
  AND finishing closes the walk against further updates

AC-WALK-003: Walk Photos
  GIVEN a walk of mine
  WHEN photos are attached
  THEN they appear on the walk detail, capped per walk

AC-WALK-004: Walk Visibility
  GIVEN walks on a booking
  WHEN either booking party lists them
  THEN both see the walks and outsiders see nothing
*/

type walkHarness struct {
	walk *service.WalkService
	f    *fixtures.Factory
}

func newWalkHarness(t *testing.T, tdb *testdb.TestDB) *walkHarness {
	t.Helper()
	return &walkHarness{
		walk: service.NewWalkService(service.WalkServiceConfig{
			WalkRepo:    repository.NewWalkRepository(tdb.DB),
			BookingRepo: repository.NewBookingRepository(tdb.DB),
		}),
		f: fixtures.New(tdb.DB),
	}
}

func (h *walkHarness) acceptedBooking(t *testing.T) (*model.User, *model.User, *model.Booking) {
	t.Helper()
	owner, _ := h.f.CreateOwner(t)
	caregiver, _ := h.f.CreateCaregiver(t)
	pet := h.f.CreatePet(t, owner)
	st := h.f.CreateServiceType(t)
	booking := h.f.CreateAcceptedBooking(t, owner, caregiver, pet, st)
	return owner, caregiver, booking
}

func TestWalks_Start(t *testing.T) {
	// AC-WALK-001: Start Walk
	tdb := testdb.New(t)
	defer tdb.Close()

	h := newWalkHarness(t, tdb)
	ctx := context.Background()

	owner, caregiver, booking := h.acceptedBooking(t)

	walk, err := h.walk.Start(ctx, caregiver.ID, model.StartWalkRequest{
		BookingID: booking.ID,
		Notes:     "morning loop around the park",
	})
	require.NoError(t, err)
	require.NotNil(t, walk)
	assert.NotEmpty(t, walk.ID)
	assert.Equal(t, booking.ID, walk.BookingID)
	assert.Equal(t, caregiver.ID, walk.CaregiverID)
	assert.True(t, walk.Open())

	t.Run("one open walk per booking", func(t *testing.T) {
		_, err := h.walk.Start(ctx, caregiver.ID, model.StartWalkRequest{BookingID: booking.ID})
		require.ErrorIs(t, err, service.ErrWalkAlreadyOpen)
	})

	t.Run("only the booked caregiver may start", func(t *testing.T) {
		_, err := h.walk.Start(ctx, owner.ID, model.StartWalkRequest{BookingID: booking.ID})
		require.ErrorIs(t, err, service.ErrBookingNotFound)
	})

	t.Run("booking must be accepted", func(t *testing.T) {
		pet := h.f.CreatePet(t, owner)
		st := h.f.CreateServiceType(t)
		pending := h.f.CreateBooking(t, owner, caregiver, pet, st)

		_, err := h.walk.Start(ctx, caregiver.ID, model.StartWalkRequest{BookingID: pending.ID})
		require.ErrorIs(t, err, service.ErrBookingNotAccepted)
	})

	t.Run("a finished walk frees the booking", func(t *testing.T) {
		_, err := h.walk.Update(ctx, caregiver.ID, walk.ID, model.UpdateWalkRequest{Finish: true})
		require.NoError(t, err)

		next, err := h.walk.Start(ctx, caregiver.ID, model.StartWalkRequest{BookingID: booking.ID})
		require.NoError(t, err)
		assert.True(t, next.Open())
	})
}

func TestWalks_Telemetry(t *testing.T) {
	// AC-WALK-002: Walk Telemetry
	tdb := testdb.New(t)
	defer tdb.Close()

	h := newWalkHarness(t, tdb)
	ctx := context.Background()

	_, caregiver, booking := h.acceptedBooking(t)
	walk := h.f.CreateWalk(t, booking)

	distance := 1800
	pee := 2
	food := true
	notes := "pulled hard at the squirrels"
	updated, err := h.walk.Update(ctx, caregiver.ID, walk.ID, model.UpdateWalkRequest{
		DistanceMeters: &distance,
		Route: []model.RoutePoint{
			{Lng: -122.676, Lat: 45.523},
			{Lng: -122.678, Lat: 45.525},
		},
		PeeCount:  &pee,
		FoodGiven: &food,
		Notes:     &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, 1800, updated.DistanceMeters)
	assert.Len(t, updated.Route, 2)
	assert.Equal(t, 2, updated.PeeCount)
	assert.True(t, updated.FoodGiven)
	assert.Equal(t, notes, updated.Notes)
	// Fields left out of the patch keep their values
	assert.Zero(t, updated.PooCount)
	assert.False(t, updated.WaterGiven)
	assert.True(t, updated.Open())

	t.Run("finish closes the walk", func(t *testing.T) {
		finished, err := h.walk.Update(ctx, caregiver.ID, walk.ID, model.UpdateWalkRequest{Finish: true})
		require.NoError(t, err)
		assert.False(t, finished.Open())
		require.NotNil(t, finished.EndedOn)

		_, err = h.walk.Update(ctx, caregiver.ID, walk.ID, model.UpdateWalkRequest{PooCount: &pee})
		require.ErrorIs(t, err, service.ErrWalkFinished)
	})

	t.Run("foreign walks look missing", func(t *testing.T) {
		other, _ := h.f.CreateCaregiver(t)
		_, err := h.walk.Update(ctx, other.ID, walk.ID, model.UpdateWalkRequest{Finish: true})
		require.ErrorIs(t, err, service.ErrWalkNotFound)
	})
}

func TestWalks_Photos(t *testing.T) {
	// AC-WALK-003: Walk Photos
	tdb := testdb.New(t)
	defer tdb.Close()

	h := newWalkHarness(t, tdb)
	ctx := context.Background()

	_, caregiver, booking := h.acceptedBooking(t)
	walk := h.f.CreateWalk(t, booking)

	photo, err := h.walk.AddPhoto(ctx, caregiver.ID, walk.ID, model.AddWalkPhotoRequest{
		URL:     "https://cdn.example.com/walks/p1.jpg",
		Caption: "happy at the fountain",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, photo.ID)
	assert.Equal(t, walk.ID, photo.WalkID)

	_, err = h.walk.AddPhoto(ctx, caregiver.ID, walk.ID, model.AddWalkPhotoRequest{
		URL: "https://cdn.example.com/walks/p2.jpg",
	})
	require.NoError(t, err)

	detail, err := h.walk.Get(ctx, caregiver.ID, walk.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Photos, 2)

	t.Run("url required", func(t *testing.T) {
		_, err := h.walk.AddPhoto(ctx, caregiver.ID, walk.ID, model.AddWalkPhotoRequest{})
		require.ErrorIs(t, err, service.ErrInvalidPhotoURL)
	})

	t.Run("foreign walk", func(t *testing.T) {
		other, _ := h.f.CreateCaregiver(t)
		_, err := h.walk.AddPhoto(ctx, other.ID, walk.ID, model.AddWalkPhotoRequest{
			URL: "https://cdn.example.com/walks/p3.jpg",
		})
		require.ErrorIs(t, err, service.ErrWalkNotFound)
	})
}

func TestWalks_Visibility(t *testing.T) {
	// AC-WALK-004: Walk Visibility
	tdb := testdb.New(t)
	defer tdb.Close()

	h := newWalkHarness(t, tdb)
	ctx := context.Background()

	owner, caregiver, booking := h.acceptedBooking(t)
	h.f.CreateWalk(t, booking, func(o *fixtures.WalkOpts) { o.Ended = true })
	h.f.CreateWalk(t, booking)

	fromCaregiver, err := h.walk.ListForBooking(ctx, caregiver.ID, booking.ID)
	require.NoError(t, err)
	assert.Len(t, fromCaregiver, 2)

	fromOwner, err := h.walk.ListForBooking(ctx, owner.ID, booking.ID)
	require.NoError(t, err)
	assert.Len(t, fromOwner, 2)

	outsider, _ := h.f.CreateOwner(t)
	_, err = h.walk.ListForBooking(ctx, outsider.ID, booking.ID)
	require.ErrorIs(t, err, service.ErrNotBookingParty)

	// The caregiver feed only carries their own walks
	mine, err := h.walk.List(ctx, caregiver.ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	other, _ := h.f.CreateCaregiver(t)
	none, err := h.walk.List(ctx, other.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
