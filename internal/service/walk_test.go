package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pawmarket/api/internal/model"
)

// Mock implementations

type mockWalkRepo struct {
	walks   map[string]*model.Walk
	photos  map[string][]*model.WalkPhoto // by walk ID
	nextID  int
	repoErr error
}

func newMockWalkRepo() *mockWalkRepo {
	return &mockWalkRepo{
		walks:  make(map[string]*model.Walk),
		photos: make(map[string][]*model.WalkPhoto),
	}
}

func (m *mockWalkRepo) Create(ctx context.Context, w *model.Walk) error {
	if m.repoErr != nil {
		return m.repoErr
	}
	m.nextID++
	w.ID = fmt.Sprintf("walk:%d", m.nextID)
	w.StartedOn = time.Now()
	w.CreatedOn = time.Now()
	w.UpdatedOn = time.Now()
	m.walks[w.ID] = w
	return nil
}

func (m *mockWalkRepo) GetByID(ctx context.Context, id string) (*model.Walk, error) {
	if m.repoErr != nil {
		return nil, m.repoErr
	}
	return m.walks[id], nil
}

func (m *mockWalkRepo) GetOpenByBooking(ctx context.Context, bookingID string) (*model.Walk, error) {
	for _, w := range m.walks {
		if w.BookingID == bookingID && w.Open() {
			return w, nil
		}
	}
	return nil, nil
}

func (m *mockWalkRepo) ListByCaregiver(ctx context.Context, caregiverID string, limit, offset int) ([]*model.Walk, error) {
	var out []*model.Walk
	for _, w := range m.walks {
		if w.CaregiverID == caregiverID {
			out = append(out, w)
		}
	}
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockWalkRepo) ListByBooking(ctx context.Context, bookingID string) ([]*model.Walk, error) {
	var out []*model.Walk
	for _, w := range m.walks {
		if w.BookingID == bookingID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *mockWalkRepo) Update(ctx context.Context, id string, updates map[string]interface{}, finish bool) (*model.Walk, error) {
	w, ok := m.walks[id]
	if !ok {
		return nil, nil
	}
	if distance, ok := updates["distance_meters"].(int); ok {
		w.DistanceMeters = distance
	}
	if route, ok := updates["route"].([]model.RoutePoint); ok {
		w.Route = route
	}
	if pee, ok := updates["pee_count"].(int); ok {
		w.PeeCount = pee
	}
	if poo, ok := updates["poo_count"].(int); ok {
		w.PooCount = poo
	}
	if food, ok := updates["food_given"].(bool); ok {
		w.FoodGiven = food
	}
	if water, ok := updates["water_given"].(bool); ok {
		w.WaterGiven = water
	}
	if notes, ok := updates["notes"].(string); ok {
		w.Notes = notes
	}
	if finish {
		now := time.Now()
		w.EndedOn = &now
	}
	w.UpdatedOn = time.Now()
	return w, nil
}

func (m *mockWalkRepo) AddPhoto(ctx context.Context, p *model.WalkPhoto) error {
	if m.repoErr != nil {
		return m.repoErr
	}
	m.nextID++
	p.ID = fmt.Sprintf("walk_photo:%d", m.nextID)
	p.CreatedOn = time.Now()
	m.photos[p.WalkID] = append(m.photos[p.WalkID], p)
	return nil
}

func (m *mockWalkRepo) ListPhotos(ctx context.Context, walkID string) ([]*model.WalkPhoto, error) {
	return m.photos[walkID], nil
}

func (m *mockWalkRepo) CountPhotos(ctx context.Context, walkID string) (int, error) {
	return len(m.photos[walkID]), nil
}

type walkTestEnv struct {
	svc         *WalkService
	walkRepo    *mockWalkRepo
	bookingRepo *mockBookingRepo
}

func setupWalkService(t *testing.T) *walkTestEnv {
	t.Helper()

	env := &walkTestEnv{
		walkRepo:    newMockWalkRepo(),
		bookingRepo: newMockBookingRepo(),
	}
	env.svc = NewWalkService(WalkServiceConfig{
		WalkRepo:    env.walkRepo,
		BookingRepo: env.bookingRepo,
	})
	return env
}

func (env *walkTestEnv) seedBooking(status model.BookingStatus) string {
	env.bookingRepo.nextID++
	id := fmt.Sprintf("booking:%d", env.bookingRepo.nextID)
	env.bookingRepo.bookings[id] = &model.Booking{
		ID: id, OwnerID: "user:owner", CaregiverID: "user:walker",
		PetID: "pet:1", Status: status,
	}
	return id
}

// Tests

func TestWalkService_Start_Success(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	walk, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{
		BookingID: bookingID,
		Notes:     "Rex is excited",
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !walk.Open() {
		t.Error("fresh walk should be open")
	}
	if walk.BookingID != bookingID {
		t.Errorf("expected booking %s, got %s", bookingID, walk.BookingID)
	}
	if walk.CaregiverID != "user:walker" {
		t.Errorf("expected caregiver user:walker, got %s", walk.CaregiverID)
	}
}

func TestWalkService_Start_RequiresAcceptedBooking(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()

	for _, status := range []model.BookingStatus{
		model.BookingStatusPending,
		model.BookingStatusRejected,
		model.BookingStatusCancelled,
		model.BookingStatusCompleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			bookingID := env.seedBooking(status)
			_, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID})
			if !errors.Is(err, ErrBookingNotAccepted) {
				t.Errorf("expected ErrBookingNotAccepted, got %v", err)
			}
		})
	}
}

func TestWalkService_Start_OnlyTheBookedCaregiver(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	_, err := env.svc.Start(ctx, "user:other", model.StartWalkRequest{BookingID: bookingID})
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound for foreign booking, got %v", err)
	}
}

func TestWalkService_Start_OneOpenWalkPerBooking(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	walk, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	_, err = env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID})
	if !errors.Is(err, ErrWalkAlreadyOpen) {
		t.Errorf("expected ErrWalkAlreadyOpen, got %v", err)
	}

	// After finishing, a new walk may start on the same booking
	if _, err := env.svc.Update(ctx, "user:walker", walk.ID, model.UpdateWalkRequest{Finish: true}); err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if _, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID}); err != nil {
		t.Errorf("expected new walk after finish: %v", err)
	}
}

func TestWalkService_Update_Telemetry(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	walk, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	distance := 1800
	pee := 3
	food := true
	updated, err := env.svc.Update(ctx, "user:walker", walk.ID, model.UpdateWalkRequest{
		DistanceMeters: &distance,
		PeeCount:       &pee,
		FoodGiven:      &food,
		Route: []model.RoutePoint{
			{Lng: -122.676, Lat: 45.523},
			{Lng: -122.675, Lat: 45.524},
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.DistanceMeters != 1800 {
		t.Errorf("expected distance 1800, got %d", updated.DistanceMeters)
	}
	if updated.PeeCount != 3 {
		t.Errorf("expected pee count 3, got %d", updated.PeeCount)
	}
	if !updated.FoodGiven {
		t.Error("expected food given")
	}
	if len(updated.Route) != 2 {
		t.Errorf("expected 2 route points, got %d", len(updated.Route))
	}
	if !updated.Open() {
		t.Error("walk should remain open without finish")
	}
}

func TestWalkService_Update_Finish(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	walk, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	finished, err := env.svc.Update(ctx, "user:walker", walk.ID, model.UpdateWalkRequest{Finish: true})
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if finished.Open() {
		t.Error("expected walk closed")
	}

	// Closed walks reject further edits
	distance := 2000
	_, err = env.svc.Update(ctx, "user:walker", walk.ID, model.UpdateWalkRequest{DistanceMeters: &distance})
	if !errors.Is(err, ErrWalkFinished) {
		t.Errorf("expected ErrWalkFinished, got %v", err)
	}
}

func TestWalkService_Update_Validation(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	walk, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	longNotes := strings.Repeat("n", model.MaxWalkNotesLength+1)
	if _, err := env.svc.Update(ctx, "user:walker", walk.ID, model.UpdateWalkRequest{Notes: &longNotes}); !errors.Is(err, ErrWalkNotesTooLong) {
		t.Errorf("expected ErrWalkNotesTooLong, got %v", err)
	}

	hugeRoute := make([]model.RoutePoint, model.MaxWalkRoutePoints+1)
	if _, err := env.svc.Update(ctx, "user:walker", walk.ID, model.UpdateWalkRequest{Route: hugeRoute}); !errors.Is(err, ErrRouteTooLong) {
		t.Errorf("expected ErrRouteTooLong, got %v", err)
	}
}

func TestWalkService_Update_ForeignWalk(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	walk, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	distance := 100
	_, err = env.svc.Update(ctx, "user:other", walk.ID, model.UpdateWalkRequest{DistanceMeters: &distance})
	if !errors.Is(err, ErrWalkNotFound) {
		t.Errorf("expected ErrWalkNotFound, got %v", err)
	}
}

func TestWalkService_Get_WithPhotos(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	walk, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := env.svc.AddPhoto(ctx, "user:walker", walk.ID, model.AddWalkPhotoRequest{
		URL:     "https://cdn.example.com/rex.jpg",
		Caption: "Mid-walk zoomies",
	}); err != nil {
		t.Fatalf("AddPhoto failed: %v", err)
	}

	got, err := env.svc.Get(ctx, "user:walker", walk.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Photos) != 1 {
		t.Errorf("expected 1 photo attached, got %d", len(got.Photos))
	}

	if _, err := env.svc.Get(ctx, "user:other", walk.ID); !errors.Is(err, ErrWalkNotFound) {
		t.Errorf("expected ErrWalkNotFound for foreign reader, got %v", err)
	}
}

func TestWalkService_AddPhoto_Validation(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	walk, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := env.svc.AddPhoto(ctx, "user:walker", walk.ID, model.AddWalkPhotoRequest{URL: ""}); !errors.Is(err, ErrInvalidPhotoURL) {
		t.Errorf("expected ErrInvalidPhotoURL, got %v", err)
	}

	long := strings.Repeat("c", model.MaxWalkPhotoCaption+1)
	if _, err := env.svc.AddPhoto(ctx, "user:walker", walk.ID, model.AddWalkPhotoRequest{URL: "https://x.test/p.jpg", Caption: long}); !errors.Is(err, ErrCaptionTooLong) {
		t.Errorf("expected ErrCaptionTooLong, got %v", err)
	}
}

func TestWalkService_AddPhoto_LimitReached(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	walk, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	for i := 0; i < model.MaxPhotosPerWalk; i++ {
		env.walkRepo.photos[walk.ID] = append(env.walkRepo.photos[walk.ID], &model.WalkPhoto{
			ID: fmt.Sprintf("walk_photo:%d", i), WalkID: walk.ID, URL: "https://x.test/p.jpg",
		})
	}

	_, err = env.svc.AddPhoto(ctx, "user:walker", walk.ID, model.AddWalkPhotoRequest{URL: "https://x.test/extra.jpg"})
	if !errors.Is(err, ErrPhotoLimitReached) {
		t.Errorf("expected ErrPhotoLimitReached, got %v", err)
	}
}

func TestWalkService_ListForBooking_PartyScoping(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	if _, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// The owner follows the walk through their booking
	walks, err := env.svc.ListForBooking(ctx, "user:owner", bookingID)
	if err != nil {
		t.Fatalf("ListForBooking failed: %v", err)
	}
	if len(walks) != 1 {
		t.Errorf("expected 1 walk, got %d", len(walks))
	}

	if _, err := env.svc.ListForBooking(ctx, "user:stranger", bookingID); !errors.Is(err, ErrNotBookingParty) {
		t.Errorf("expected ErrNotBookingParty, got %v", err)
	}
	if _, err := env.svc.ListForBooking(ctx, "user:owner", "booking:missing"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestWalkService_List(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		bookingID := env.seedBooking(model.BookingStatusAccepted)
		walk, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{BookingID: bookingID})
		if err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		if _, err := env.svc.Update(ctx, "user:walker", walk.ID, model.UpdateWalkRequest{Finish: true}); err != nil {
			t.Fatalf("finish failed: %v", err)
		}
	}

	walks, err := env.svc.List(ctx, "user:walker", 0, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(walks) != 3 {
		t.Errorf("expected 3 walks, got %d", len(walks))
	}

	limited, err := env.svc.List(ctx, "user:walker", 2, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 walks with limit, got %d", len(limited))
	}
}

func TestWalkService_Start_NotesTooLong(t *testing.T) {
	env := setupWalkService(t)
	ctx := context.Background()
	bookingID := env.seedBooking(model.BookingStatusAccepted)

	_, err := env.svc.Start(ctx, "user:walker", model.StartWalkRequest{
		BookingID: bookingID,
		Notes:     strings.Repeat("n", model.MaxWalkNotesLength+1),
	})
	if !errors.Is(err, ErrWalkNotesTooLong) {
		t.Errorf("expected ErrWalkNotesTooLong, got %v", err)
	}
}
