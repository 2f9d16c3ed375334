// Package fixtures provides test data factories for e2e testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories handle database insertion
// and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	owner, _ := f.CreateOwner(t)
//	caregiver, _ := f.CreateCaregiver(t)
//	pet := f.CreatePet(t, owner)
//	booking := f.CreateBooking(t, owner, caregiver, pet, serviceType)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// Factory creates test entities in the database
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ctx returns a context with timeout
func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	// Store cancel to prevent leak warning
	_ = cancel
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Email    string
	Username string
	Password string
	Role     model.UserRole
	Active   bool
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	o := &UserOpts{
		Email:    fmt.Sprintf("user_%s@test.local", randomID()),
		Username: fmt.Sprintf("user_%s", randomID()),
		Password: "testpass123",
		Role:     model.UserRoleOwner,
		Active:   true,
	}
	for _, fn := range opts {
		fn(o)
	}

	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	query := `
		CREATE user CONTENT {
			email: $email,
			username: $username,
			hash: $hash,
			role: $role,
			active: $active,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"email":    o.Email,
		"username": o.Username,
		"hash":     string(hash),
		"role":     string(o.Role),
		"active":   o.Active,
	}

	results, err := f.db.Query(ctx(), query, vars)
	if err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}

	user := parseUserResult(t, results)
	user.Hash = nil // Don't expose hash in fixture
	return user
}

// CreateAdmin creates an admin user
func (f *Factory) CreateAdmin(t *testing.T) *model.User {
	return f.CreateUser(t, func(o *UserOpts) {
		o.Role = model.UserRoleAdmin
	})
}

// ============================================================================
// Profile Fixtures
// ============================================================================

// OwnerOpts customizes owner profile creation
type OwnerOpts struct {
	City    string
	Country string
	Phone   string
}

// CreateOwner creates an owner user together with their profile
func (f *Factory) CreateOwner(t *testing.T, opts ...func(*OwnerOpts)) (*model.User, *model.OwnerProfile) {
	t.Helper()

	o := &OwnerOpts{
		City:    "Springfield",
		Country: "US",
		Phone:   "+15550100",
	}
	for _, fn := range opts {
		fn(o)
	}

	user := f.CreateUser(t, func(u *UserOpts) {
		u.Role = model.UserRoleOwner
	})

	query := `
		CREATE owner_profile CONTENT {
			user: type::record($user_id),
			phone: $phone,
			country: $country,
			city: $city,
			address_line1: "1 Test Way",
			address_line2: "",
			postal_code: "12345",
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"user_id": user.ID,
		"phone":   o.Phone,
		"country": o.Country,
		"city":    o.City,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create owner profile: %v", err)
	}

	profile := parseOwnerProfileResult(t, results)
	return user, profile
}

// CaregiverOpts customizes caregiver profile creation
type CaregiverOpts struct {
	City             string
	HourlyRateCents  int64
	YearsExperience  int
	MaxPets          int
	AcceptsLargeDogs bool
	Verified         bool
	RatingAverage    int // x100 fixed point
	RatingCount      int
}

// CreateCaregiver creates a caregiver user together with their profile
func (f *Factory) CreateCaregiver(t *testing.T, opts ...func(*CaregiverOpts)) (*model.User, *model.CaregiverProfile) {
	t.Helper()

	o := &CaregiverOpts{
		City:             "Springfield",
		HourlyRateCents:  2500,
		YearsExperience:  3,
		MaxPets:          3,
		AcceptsLargeDogs: true,
	}
	for _, fn := range opts {
		fn(o)
	}

	user := f.CreateUser(t, func(u *UserOpts) {
		u.Role = model.UserRoleCaregiver
	})

	query := `
		CREATE caregiver_profile CONTENT {
			user: type::record($user_id),
			phone: "+15550200",
			city: $city,
			bio: "Test caregiver bio",
			years_experience: $years_experience,
			hourly_rate_cents: $hourly_rate_cents,
			max_pets: $max_pets,
			accepts_large_dogs: $accepts_large_dogs,
			accepts_aggressive: false,
			verified: $verified,
			rating_average: $rating_average,
			rating_count: $rating_count,
			service_radius_km: 10.0,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"user_id":            user.ID,
		"city":               o.City,
		"years_experience":   o.YearsExperience,
		"hourly_rate_cents":  o.HourlyRateCents,
		"max_pets":           o.MaxPets,
		"accepts_large_dogs": o.AcceptsLargeDogs,
		"verified":           o.Verified,
		"rating_average":     o.RatingAverage,
		"rating_count":       o.RatingCount,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create caregiver profile: %v", err)
	}

	profile := parseCaregiverProfileResult(t, results)
	return user, profile
}

// ============================================================================
// Pet Fixtures
// ============================================================================

// PetOpts customizes pet creation
type PetOpts struct {
	Name        string
	Species     model.PetSpecies
	Breed       string
	WeightGrams int
}

// CreatePet creates a pet belonging to the owner
func (f *Factory) CreatePet(t *testing.T, owner *model.User, opts ...func(*PetOpts)) *model.Pet {
	t.Helper()

	o := &PetOpts{
		Name:        fmt.Sprintf("Rex %s", randomID()),
		Species:     model.PetSpeciesDog,
		Breed:       "beagle",
		WeightGrams: 9000,
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE pet CONTENT {
			owner: type::record($owner_id),
			name: $name,
			species: $species,
			breed: $breed,
			sex: "m",
			birthdate: NONE,
			weight_grams: $weight_grams,
			neutered: true,
			medical_notes: "",
			behavior_notes: "",
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"owner_id":     owner.ID,
		"name":         o.Name,
		"species":      string(o.Species),
		"breed":        o.Breed,
		"weight_grams": o.WeightGrams,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create pet: %v", err)
	}

	return parsePetResult(t, results)
}

// ============================================================================
// Catalog Fixtures
// ============================================================================

// ServiceTypeOpts customizes catalog entry creation
type ServiceTypeOpts struct {
	Code                string
	Name                string
	BaseDurationMinutes int
	DefaultPriceCents   int64
}

// CreateServiceType creates a catalog entry
func (f *Factory) CreateServiceType(t *testing.T, opts ...func(*ServiceTypeOpts)) *model.ServiceType {
	t.Helper()

	o := &ServiceTypeOpts{
		Code:                fmt.Sprintf("svc_%s", randomID()),
		Name:                fmt.Sprintf("Service %s", randomID()),
		BaseDurationMinutes: 30,
		DefaultPriceCents:   2000,
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE service_type CONTENT {
			code: $code,
			name: $name,
			description: "Test service",
			base_duration_minutes: $base_duration_minutes,
			default_price_cents: $default_price_cents,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"code":                  o.Code,
		"name":                  o.Name,
		"base_duration_minutes": o.BaseDurationMinutes,
		"default_price_cents":   o.DefaultPriceCents,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create service type: %v", err)
	}

	return parseServiceTypeResult(t, results)
}

// CreateCaregiverService adds a priced offering of a service type for the
// caregiver
func (f *Factory) CreateCaregiverService(t *testing.T, caregiver *model.User, st *model.ServiceType, priceCents int64) *model.CaregiverService {
	t.Helper()

	query := `
		CREATE caregiver_service CONTENT {
			caregiver: type::record($caregiver_id),
			service_type: type::record($service_type_id),
			price_cents: $price_cents,
			active: true,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"caregiver_id":    caregiver.ID,
		"service_type_id": st.ID,
		"price_cents":     priceCents,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create caregiver service: %v", err)
	}

	return parseCaregiverServiceResult(t, results)
}

// ============================================================================
// Availability Fixtures
// ============================================================================

// CreateAvailability adds a weekly availability window for the caregiver.
// Weekday is Monday-based; minutes are since local midnight.
func (f *Factory) CreateAvailability(t *testing.T, caregiver *model.User, weekday, startMinute, endMinute int) *model.Availability {
	t.Helper()

	query := `
		CREATE availability CONTENT {
			caregiver: type::record($caregiver_id),
			weekday: $weekday,
			start_minute: $start_minute,
			end_minute: $end_minute,
			recurring: true,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"caregiver_id": caregiver.ID,
		"weekday":      weekday,
		"start_minute": startMinute,
		"end_minute":   endMinute,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create availability: %v", err)
	}

	return parseAvailabilityResult(t, results)
}

// CreateFullWeekAvailability opens every weekday around the clock so booking
// tests never trip the calendar check.
func (f *Factory) CreateFullWeekAvailability(t *testing.T, caregiver *model.User) {
	t.Helper()
	for weekday := 0; weekday < 7; weekday++ {
		f.CreateAvailability(t, caregiver, weekday, 0, model.MinutesPerDay)
	}
}

// CreateTimeOff blocks the caregiver's calendar for an inclusive date range
func (f *Factory) CreateTimeOff(t *testing.T, caregiver *model.User, from, to time.Time) *model.TimeOff {
	t.Helper()

	query := `
		CREATE time_off CONTENT {
			caregiver: type::record($caregiver_id),
			date_from: <datetime>$date_from,
			date_to: <datetime>$date_to,
			reason: "vacation",
			created_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"caregiver_id": caregiver.ID,
		"date_from":    from.Format(time.RFC3339),
		"date_to":      to.Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create time off: %v", err)
	}

	return parseTimeOffResult(t, results)
}

// ============================================================================
// Booking Fixtures
// ============================================================================

// BookingOpts customizes booking creation
type BookingOpts struct {
	StartsOn        time.Time
	DurationMinutes int
	Status          model.BookingStatus
	PaymentStatus   model.PaymentStatus
	PriceCents      int64
	FeeCents        int64
	PayoutCents     int64
}

// CreateBooking creates a booking directly in the database. The default split
// is 2500 total with a 15% fee, mirroring the platform default.
func (f *Factory) CreateBooking(t *testing.T, owner, caregiver *model.User, pet *model.Pet, st *model.ServiceType, opts ...func(*BookingOpts)) *model.Booking {
	t.Helper()

	o := &BookingOpts{
		StartsOn:        time.Now().Add(24 * time.Hour).Truncate(time.Minute),
		DurationMinutes: 60,
		Status:          model.BookingStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		PriceCents:      2500,
		FeeCents:        375,
		PayoutCents:     2125,
	}
	for _, fn := range opts {
		fn(o)
	}

	endsOn := o.StartsOn.Add(time.Duration(o.DurationMinutes) * time.Minute)

	query := `
		CREATE booking CONTENT {
			owner: type::record($owner_id),
			caregiver: type::record($caregiver_id),
			pet: type::record($pet_id),
			service_type: type::record($service_type_id),
			starts_on: <datetime>$starts_on,
			ends_on: <datetime>$ends_on,
			duration_minutes: $duration_minutes,
			status: $status,
			owner_notes: "",
			caregiver_notes: "",
			price_cents: $price_cents,
			fee_cents: $fee_cents,
			payout_cents: $payout_cents,
			payment_status: $payment_status,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"owner_id":         owner.ID,
		"caregiver_id":     caregiver.ID,
		"pet_id":           pet.ID,
		"service_type_id":  st.ID,
		"starts_on":        o.StartsOn.Format(time.RFC3339),
		"ends_on":          endsOn.Format(time.RFC3339),
		"duration_minutes": o.DurationMinutes,
		"status":           string(o.Status),
		"price_cents":      o.PriceCents,
		"fee_cents":        o.FeeCents,
		"payout_cents":     o.PayoutCents,
		"payment_status":   string(o.PaymentStatus),
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create booking: %v", err)
	}

	return parseBookingResult(t, results)
}

// CreateAcceptedBooking creates a booking already accepted by the caregiver
func (f *Factory) CreateAcceptedBooking(t *testing.T, owner, caregiver *model.User, pet *model.Pet, st *model.ServiceType) *model.Booking {
	return f.CreateBooking(t, owner, caregiver, pet, st, func(o *BookingOpts) {
		o.Status = model.BookingStatusAccepted
	})
}

// CreateCompletedBooking creates a booking that already ran to completion,
// backdated to yesterday
func (f *Factory) CreateCompletedBooking(t *testing.T, owner, caregiver *model.User, pet *model.Pet, st *model.ServiceType) *model.Booking {
	return f.CreateBooking(t, owner, caregiver, pet, st, func(o *BookingOpts) {
		o.StartsOn = time.Now().Add(-24 * time.Hour).Truncate(time.Minute)
		o.Status = model.BookingStatusCompleted
	})
}

// CreatePaidBooking creates a completed booking marked paid with the matching
// ledger credit, ready for review and payout flows
func (f *Factory) CreatePaidBooking(t *testing.T, owner, caregiver *model.User, pet *model.Pet, st *model.ServiceType) *model.Booking {
	t.Helper()

	booking := f.CreateBooking(t, owner, caregiver, pet, st, func(o *BookingOpts) {
		o.StartsOn = time.Now().Add(-24 * time.Hour).Truncate(time.Minute)
		o.Status = model.BookingStatusCompleted
		o.PaymentStatus = model.PaymentStatusPaid
	})

	f.CreateLedgerCredit(t, caregiver, &booking.ID, booking.PayoutCents)
	return booking
}

// ============================================================================
// Walk Fixtures
// ============================================================================

// WalkOpts customizes walk creation
type WalkOpts struct {
	Ended bool
	Notes string
}

// CreateWalk opens a walk on a booking, optionally already finished
func (f *Factory) CreateWalk(t *testing.T, booking *model.Booking, opts ...func(*WalkOpts)) *model.Walk {
	t.Helper()

	o := &WalkOpts{}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE walk CONTENT {
			booking: type::record($booking_id),
			caregiver: type::record($caregiver_id),
			started_on: time::now(),
			ended_on: IF $ended THEN time::now() ELSE NONE END,
			distance_meters: 0,
			route: [],
			pee_count: 0,
			poo_count: 0,
			food_given: false,
			water_given: false,
			notes: $notes,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"booking_id":   booking.ID,
		"caregiver_id": booking.CaregiverID,
		"ended":        o.Ended,
		"notes":        o.Notes,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create walk: %v", err)
	}

	return parseWalkResult(t, results)
}

// ============================================================================
// Review Fixtures
// ============================================================================

// CreateReview creates a review for a booking; the author and caregiver come
// from the booking itself
func (f *Factory) CreateReview(t *testing.T, booking *model.Booking, rating int, comment string) *model.Review {
	t.Helper()

	query := `
		CREATE review CONTENT {
			booking: type::record($booking_id),
			author: type::record($author_id),
			caregiver: type::record($caregiver_id),
			rating: $rating,
			comment: $comment,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"booking_id":   booking.ID,
		"author_id":    booking.OwnerID,
		"caregiver_id": booking.CaregiverID,
		"rating":       rating,
		"comment":      comment,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create review: %v", err)
	}

	return parseReviewResult(t, results)
}

// ============================================================================
// Finance Fixtures
// ============================================================================

// CreateLedgerCredit appends an uncovered credit to the caregiver's ledger.
// bookingID may be nil for credits not tied to a booking.
func (f *Factory) CreateLedgerCredit(t *testing.T, caregiver *model.User, bookingID *string, amountCents int64) *model.TransactionLog {
	t.Helper()

	query := `
		CREATE transaction_log CONTENT {
			booking: IF $booking_id IS NOT NULL THEN type::record($booking_id) ELSE NONE END,
			user: type::record($user_id),
			direction: "credit",
			amount_cents: $amount_cents,
			description: "Booking payout",
			payout: NONE,
			created_on: time::now()
		}
	`
	var bid interface{}
	if bookingID != nil {
		bid = *bookingID
	}
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"booking_id":   bid,
		"user_id":      caregiver.ID,
		"amount_cents": amountCents,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create ledger credit: %v", err)
	}

	return parseTransactionResult(t, results)
}

// AgePayout backdates a payout's creation so hold-period logic sees it as old
func (f *Factory) AgePayout(t *testing.T, payoutID string, age time.Duration) {
	t.Helper()

	query := `UPDATE type::record($id) SET created_on = <datetime>$created_on`
	if err := f.db.Execute(ctx(), query, map[string]interface{}{
		"id":         payoutID,
		"created_on": time.Now().Add(-age).Format(time.RFC3339),
	}); err != nil {
		t.Fatalf("fixtures: failed to age payout: %v", err)
	}
}

// ============================================================================
// Result Parsing Helpers
// ============================================================================

func parseUserResult(t *testing.T, results []interface{}) *model.User {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.User{
		ID:        getRecordID(data, "id"),
		Email:     getString(data, "email"),
		Username:  getString(data, "username"),
		Role:      model.UserRole(getString(data, "role")),
		Active:    getBool(data, "active"),
		CreatedOn: getTime(data, "created_on"),
		UpdatedOn: getTime(data, "updated_on"),
	}
}

func parseOwnerProfileResult(t *testing.T, results []interface{}) *model.OwnerProfile {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.OwnerProfile{
		ID:           getRecordID(data, "id"),
		UserID:       getRecordID(data, "user"),
		Phone:        getString(data, "phone"),
		Country:      getString(data, "country"),
		City:         getString(data, "city"),
		AddressLine1: getString(data, "address_line1"),
		PostalCode:   getString(data, "postal_code"),
		CreatedOn:    getTime(data, "created_on"),
		UpdatedOn:    getTime(data, "updated_on"),
	}
}

func parseCaregiverProfileResult(t *testing.T, results []interface{}) *model.CaregiverProfile {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.CaregiverProfile{
		ID:               getRecordID(data, "id"),
		UserID:           getRecordID(data, "user"),
		Phone:            getString(data, "phone"),
		City:             getString(data, "city"),
		Bio:              getString(data, "bio"),
		YearsExperience:  getInt(data, "years_experience"),
		HourlyRateCents:  int64(getInt(data, "hourly_rate_cents")),
		MaxPets:          getInt(data, "max_pets"),
		AcceptsLargeDogs: getBool(data, "accepts_large_dogs"),
		Verified:         getBool(data, "verified"),
		RatingAverage:    getInt(data, "rating_average"),
		RatingCount:      getInt(data, "rating_count"),
		CreatedOn:        getTime(data, "created_on"),
		UpdatedOn:        getTime(data, "updated_on"),
	}
}

func parsePetResult(t *testing.T, results []interface{}) *model.Pet {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.Pet{
		ID:          getRecordID(data, "id"),
		OwnerID:     getRecordID(data, "owner"),
		Name:        getString(data, "name"),
		Species:     model.PetSpecies(getString(data, "species")),
		Breed:       getString(data, "breed"),
		Sex:         model.PetSex(getString(data, "sex")),
		WeightGrams: getInt(data, "weight_grams"),
		Neutered:    getBool(data, "neutered"),
		CreatedOn:   getTime(data, "created_on"),
		UpdatedOn:   getTime(data, "updated_on"),
	}
}

func parseServiceTypeResult(t *testing.T, results []interface{}) *model.ServiceType {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.ServiceType{
		ID:                  getRecordID(data, "id"),
		Code:                getString(data, "code"),
		Name:                getString(data, "name"),
		Description:         getString(data, "description"),
		BaseDurationMinutes: getInt(data, "base_duration_minutes"),
		DefaultPriceCents:   int64(getInt(data, "default_price_cents")),
		CreatedOn:           getTime(data, "created_on"),
		UpdatedOn:           getTime(data, "updated_on"),
	}
}

func parseCaregiverServiceResult(t *testing.T, results []interface{}) *model.CaregiverService {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.CaregiverService{
		ID:            getRecordID(data, "id"),
		CaregiverID:   getRecordID(data, "caregiver"),
		ServiceTypeID: getRecordID(data, "service_type"),
		PriceCents:    int64(getInt(data, "price_cents")),
		Active:        getBool(data, "active"),
		CreatedOn:     getTime(data, "created_on"),
		UpdatedOn:     getTime(data, "updated_on"),
	}
}

func parseAvailabilityResult(t *testing.T, results []interface{}) *model.Availability {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.Availability{
		ID:          getRecordID(data, "id"),
		CaregiverID: getRecordID(data, "caregiver"),
		Weekday:     getInt(data, "weekday"),
		StartMinute: getInt(data, "start_minute"),
		EndMinute:   getInt(data, "end_minute"),
		Recurring:   getBool(data, "recurring"),
		CreatedOn:   getTime(data, "created_on"),
		UpdatedOn:   getTime(data, "updated_on"),
	}
}

func parseTimeOffResult(t *testing.T, results []interface{}) *model.TimeOff {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.TimeOff{
		ID:          getRecordID(data, "id"),
		CaregiverID: getRecordID(data, "caregiver"),
		DateFrom:    getTime(data, "date_from"),
		DateTo:      getTime(data, "date_to"),
		Reason:      getString(data, "reason"),
		CreatedOn:   getTime(data, "created_on"),
	}
}

func parseBookingResult(t *testing.T, results []interface{}) *model.Booking {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.Booking{
		ID:              getRecordID(data, "id"),
		OwnerID:         getRecordID(data, "owner"),
		CaregiverID:     getRecordID(data, "caregiver"),
		PetID:           getRecordID(data, "pet"),
		ServiceTypeID:   getRecordID(data, "service_type"),
		StartsOn:        getTime(data, "starts_on"),
		EndsOn:          getTime(data, "ends_on"),
		DurationMinutes: getInt(data, "duration_minutes"),
		Status:          model.BookingStatus(getString(data, "status")),
		PriceCents:      int64(getInt(data, "price_cents")),
		FeeCents:        int64(getInt(data, "fee_cents")),
		PayoutCents:     int64(getInt(data, "payout_cents")),
		PaymentStatus:   model.PaymentStatus(getString(data, "payment_status")),
		CreatedOn:       getTime(data, "created_on"),
		UpdatedOn:       getTime(data, "updated_on"),
	}
}

func parseWalkResult(t *testing.T, results []interface{}) *model.Walk {
	t.Helper()
	data := extractFirstResult(t, results)
	w := &model.Walk{
		ID:          getRecordID(data, "id"),
		BookingID:   getRecordID(data, "booking"),
		CaregiverID: getRecordID(data, "caregiver"),
		StartedOn:   getTime(data, "started_on"),
		Notes:       getString(data, "notes"),
		CreatedOn:   getTime(data, "created_on"),
		UpdatedOn:   getTime(data, "updated_on"),
	}
	if ended := getTime(data, "ended_on"); !ended.IsZero() {
		w.EndedOn = &ended
	}
	return w
}

func parseReviewResult(t *testing.T, results []interface{}) *model.Review {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.Review{
		ID:          getRecordID(data, "id"),
		BookingID:   getRecordID(data, "booking"),
		AuthorID:    getRecordID(data, "author"),
		CaregiverID: getRecordID(data, "caregiver"),
		Rating:      getInt(data, "rating"),
		Comment:     getString(data, "comment"),
		CreatedOn:   getTime(data, "created_on"),
		UpdatedOn:   getTime(data, "updated_on"),
	}
}

func parseTransactionResult(t *testing.T, results []interface{}) *model.TransactionLog {
	t.Helper()
	data := extractFirstResult(t, results)
	tx := &model.TransactionLog{
		ID:          getRecordID(data, "id"),
		UserID:      getRecordID(data, "user"),
		Direction:   model.TransactionDirection(getString(data, "direction")),
		AmountCents: int64(getInt(data, "amount_cents")),
		Description: getString(data, "description"),
		CreatedOn:   getTime(data, "created_on"),
	}
	if booking := getRecordID(data, "booking"); booking != "" {
		tx.BookingID = &booking
	}
	return tx
}

// ============================================================================
// Data Extraction Helpers
// ============================================================================

func extractFirstResult(t *testing.T, results []interface{}) map[string]interface{} {
	t.Helper()
	if len(results) == 0 {
		t.Fatal("fixtures: no results returned")
	}

	// Handle SurrealDB response wrapper
	resp, ok := results[0].(map[string]interface{})
	if !ok {
		t.Fatalf("fixtures: unexpected result type: %T", results[0])
	}

	result, ok := resp["result"]
	if !ok {
		t.Fatal("fixtures: no result in response")
	}

	// Handle array result
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			t.Fatal("fixtures: empty result array")
		}
		data, ok := arr[0].(map[string]interface{})
		if !ok {
			t.Fatalf("fixtures: unexpected array item type: %T", arr[0])
		}
		return data
	}

	// Handle single result
	data, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("fixtures: unexpected result type: %T", result)
	}
	return data
}

// getRecordID extracts a record link as a "table:id" string
func getRecordID(data map[string]interface{}, key string) string {
	v := data[key]
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	// SurrealDB record ID as a map with "tb" (table) and "id" fields
	if m, ok := v.(map[string]interface{}); ok {
		if tb, ok := m["tb"].(string); ok {
			if id := m["id"]; id != nil {
				return fmt.Sprintf("%s:%v", tb, id)
			}
		}
	}
	// Fallback: string conversion, fixing "{table id}" to "table:id"
	s := fmt.Sprintf("%v", v)
	if len(s) > 2 && s[0] == '{' && s[len(s)-1] == '}' {
		inner := s[1 : len(s)-1]
		for i, c := range inner {
			if c == ' ' {
				return inner[:i] + ":" + inner[i+1:]
			}
		}
	}
	return s
}

func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func getBool(data map[string]interface{}, key string) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}
	return false
}

func getInt(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	}
	return 0
}

func getTime(data map[string]interface{}, key string) time.Time {
	switch v := data[key].(type) {
	case string:
		t, _ := time.Parse(time.RFC3339Nano, v)
		return t
	case time.Time:
		return v
	}
	return time.Time{}
}
