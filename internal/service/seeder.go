package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	mrand "math/rand/v2"
	"time"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// SeederService generates mock marketplace data for testing and development.
// It writes records directly so a large dataset does not crawl through the
// validation chain; consistency is the seeder's own responsibility.
type SeederService struct {
	db         database.Database
	calculator *CommissionCalculator
}

// NewSeederService creates a new seeder service
func NewSeederService(db database.Database, calculator *CommissionCalculator) *SeederService {
	return &SeederService{db: db, calculator: calculator}
}

// Seeded accounts all share this password so dev logins are predictable
const seedPassword = "password"

const defaultSeedPrefix = "seed_"

// SeedOwnersRequest configures owner seeding
type SeedOwnersRequest struct {
	Count        int `json:"count"`
	PetsPerOwner int `json:"pets_per_owner,omitempty"`
	// Prefix marks seeded emails and usernames for later cleanup
	Prefix string `json:"prefix,omitempty"`
}

// SeedCaregiversRequest configures caregiver seeding
type SeedCaregiversRequest struct {
	Count int `json:"count"`
	// City pins every caregiver to one city; empty rotates through a pool
	City   string `json:"city,omitempty"`
	Prefix string `json:"prefix,omitempty"`
}

// SeedBookingsRequest configures booking seeding between already-seeded
// owners and caregivers
type SeedBookingsRequest struct {
	Count int `json:"count"`
	// Completed backdates bookings and marks them paid with ledger credits
	Completed   bool   `json:"completed,omitempty"`
	WithReviews bool   `json:"with_reviews,omitempty"`
	Prefix      string `json:"prefix,omitempty"`
}

// SeedScenarioRequest runs a predefined scenario
type SeedScenarioRequest struct {
	Scenario string `json:"scenario"` // e.g., "demo_marketplace", "busy_caregiver", "city_directory"
}

// SeedResult contains the results of a seeding operation
type SeedResult struct {
	Created  int      `json:"created"`
	IDs      []string `json:"ids"`
	Duration int64    `json:"duration_ms"`
}

// CleanupResult contains the results of a cleanup operation
type CleanupResult struct {
	Deleted  int   `json:"deleted"`
	Duration int64 `json:"duration_ms"`
}

type seedServiceType struct {
	code        string
	name        string
	description string
	baseMinutes int
	priceCents  int64
}

// The standard catalog. EnsureServiceTypes creates whichever of these are
// missing; cleanup never deletes them.
var defaultServiceTypes = []seedServiceType{
	{model.ServiceCodeDogWalk, "Dog Walking", "A neighborhood walk with live route tracking", 30, 2000},
	{model.ServiceCodeHouseSit, "House Sitting", "Overnight care in the pet's own home", 480, 8000},
	{model.ServiceCodeBoarding, "Boarding", "Overnight care at the caregiver's home", 1440, 6500},
	{model.ServiceCodeGrooming, "Grooming", "Bath, brush and trim", 60, 4500},
	{model.ServiceCodeDropIn, "Drop-In Visit", "A short home visit for feeding and play", 20, 1800},
}

// Sample data for realistic generation
var (
	firstNames = []string{
		"Emma", "Liam", "Olivia", "Noah", "Ava", "Ethan", "Sophia", "Mason",
		"Isabella", "William", "Mia", "James", "Charlotte", "Benjamin", "Amelia",
		"Lucas", "Harper", "Henry", "Evelyn", "Alexander", "Abigail", "Michael",
		"Emily", "Daniel", "Elizabeth", "Jacob", "Sofia", "Logan", "Avery", "Jackson",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
		"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	}
	petNames = []string{
		"Buddy", "Luna", "Max", "Bella", "Charlie", "Daisy", "Rocky", "Molly",
		"Bailey", "Coco", "Duke", "Rosie", "Teddy", "Ruby", "Oscar", "Penny",
		"Zeus", "Willow", "Milo", "Nala", "Finn", "Pepper", "Gus", "Hazel",
	}
	dogBreeds = []string{
		"Labrador Retriever", "Golden Retriever", "Poodle", "Beagle", "Bulldog",
		"Corgi", "Dachshund", "Boxer", "Siberian Husky", "Border Collie", "Mixed",
	}
	catBreeds = []string{
		"Domestic Shorthair", "Siamese", "Maine Coon", "Persian", "Bengal", "Ragdoll",
	}
	seedCities = []string{
		"Portland", "Seattle", "Austin", "Denver", "Chicago", "Boston",
	}
	seedStreets = []string{
		"Maple Street", "Oak Avenue", "Cedar Lane", "Birch Road", "Elm Drive",
		"Willow Way", "Pine Court", "Juniper Place",
	}
	caregiverBios = []string{
		"Lifelong dog lover with a fenced backyard and flexible hours.",
		"Former shelter volunteer, comfortable with seniors and medication schedules.",
		"Runner who gives high-energy dogs the workout they need.",
		"Cat household, calm and quiet, great for shy or anxious pets.",
		"Grew up on a farm around animals of every size.",
		"Work from home, so pets are never left alone.",
		"Experienced with reactive dogs and positive reinforcement training.",
		"Weekend hiker happy to take adventurous pups along.",
	}
	reviewComments = []string{
		"Sent photos throughout and my dog came home happily exhausted.",
		"Punctual, communicative, and clearly loves animals.",
		"Our cat usually hides from strangers but warmed up right away.",
		"Followed the feeding instructions to the letter. Will rebook.",
		"Great with our nervous rescue. Highly recommend.",
		"Easy to coordinate with and left the house spotless.",
	}
)

// EnsureServiceTypes creates the standard service types that are missing.
// Safe to run repeatedly.
func (s *SeederService) EnsureServiceTypes(ctx context.Context) (*SeedResult, error) {
	start := time.Now()

	results, err := s.db.Query(ctx, `SELECT code FROM service_type`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query service types: %w", err)
	}
	existing := make(map[string]bool)
	for _, row := range extractRows(results) {
		if code, ok := row["code"].(string); ok {
			existing[code] = true
		}
	}

	var ids []string
	for _, st := range defaultServiceTypes {
		if existing[st.code] {
			continue
		}
		query := `
			CREATE service_type CONTENT {
				code: $code,
				name: $name,
				description: $description,
				base_duration_minutes: $base_minutes,
				default_price_cents: $price_cents,
				created_on: time::now(),
				updated_on: time::now()
			}
		`
		results, err := s.db.Query(ctx, query, map[string]interface{}{
			"code":         st.code,
			"name":         st.name,
			"description":  st.description,
			"base_minutes": st.baseMinutes,
			"price_cents":  st.priceCents,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create service type %s: %w", st.code, err)
		}
		if id := extractID(results); id != "" {
			ids = append(ids, id)
		}
	}

	return &SeedResult{
		Created:  len(ids),
		IDs:      ids,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// SeedOwners creates owner accounts with profiles and pets
func (s *SeederService) SeedOwners(ctx context.Context, req SeedOwnersRequest) (*SeedResult, error) {
	start := time.Now()

	if req.Count <= 0 || req.Count > 1000 {
		return nil, fmt.Errorf("count must be between 1 and 1000")
	}
	if req.Prefix == "" {
		req.Prefix = defaultSeedPrefix
	}
	if req.PetsPerOwner <= 0 {
		req.PetsPerOwner = 2
	}
	if req.PetsPerOwner > 5 {
		req.PetsPerOwner = 5
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ids := make([]string, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		userID, err := s.createSeedUser(ctx, req.Prefix, model.UserRoleOwner, string(hash))
		if err != nil {
			return nil, err
		}
		ids = append(ids, userID)

		city := seedCities[mrand.IntN(len(seedCities))]
		street := seedStreets[mrand.IntN(len(seedStreets))]
		profileQuery := `
			CREATE owner_profile CONTENT {
				user: type::record($user_id),
				phone: $phone,
				country: "US",
				city: $city,
				address_line1: $address,
				address_line2: "",
				postal_code: $postal,
				created_on: time::now(),
				updated_on: time::now()
			}
		`
		_, err = s.db.Query(ctx, profileQuery, map[string]interface{}{
			"user_id": userID,
			"phone":   randomPhone(),
			"city":    city,
			"address": fmt.Sprintf("%d %s", 100+mrand.IntN(900), street),
			"postal":  fmt.Sprintf("%05d", 10000+mrand.IntN(89999)),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create owner profile: %w", err)
		}

		for j := 0; j < req.PetsPerOwner; j++ {
			if err := s.createSeedPet(ctx, userID); err != nil {
				return nil, err
			}
		}
	}

	return &SeedResult{
		Created:  len(ids),
		IDs:      ids,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// SeedCaregivers creates caregiver accounts with profiles, service offerings
// and weekly availability. Every caregiver ends up bookable: at least one
// active service and one availability window.
func (s *SeederService) SeedCaregivers(ctx context.Context, req SeedCaregiversRequest) (*SeedResult, error) {
	start := time.Now()

	if req.Count <= 0 || req.Count > 1000 {
		return nil, fmt.Errorf("count must be between 1 and 1000")
	}
	if req.Prefix == "" {
		req.Prefix = defaultSeedPrefix
	}

	if _, err := s.EnsureServiceTypes(ctx); err != nil {
		return nil, err
	}
	serviceTypes, err := s.loadServiceTypes(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ids := make([]string, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		userID, err := s.createSeedUser(ctx, req.Prefix, model.UserRoleCaregiver, string(hash))
		if err != nil {
			return nil, err
		}
		ids = append(ids, userID)

		city := req.City
		if city == "" {
			city = seedCities[mrand.IntN(len(seedCities))]
		}

		profileQuery := `
			CREATE caregiver_profile CONTENT {
				user: type::record($user_id),
				phone: $phone,
				city: $city,
				bio: $bio,
				years_experience: $years,
				hourly_rate_cents: $rate,
				max_pets: $max_pets,
				accepts_large_dogs: $large,
				accepts_aggressive: $aggressive,
				verified: $verified,
				rating_average: 0,
				rating_count: 0,
				service_radius_km: $radius,
				created_on: time::now(),
				updated_on: time::now()
			}
		`
		_, err = s.db.Query(ctx, profileQuery, map[string]interface{}{
			"user_id":    userID,
			"phone":      randomPhone(),
			"city":       city,
			"bio":        caregiverBios[mrand.IntN(len(caregiverBios))],
			"years":      1 + mrand.IntN(10),
			"rate":       int64(1500 + mrand.IntN(10)*500),
			"max_pets":   1 + mrand.IntN(4),
			"large":      mrand.IntN(2) == 0,
			"aggressive": mrand.IntN(4) == 0,
			"verified":   mrand.IntN(10) < 7,
			"radius":     5 + mrand.IntN(21),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create caregiver profile: %w", err)
		}

		// Offer 2-3 distinct service types at a price near the default
		offerCount := 2 + mrand.IntN(2)
		for _, idx := range mrand.Perm(len(serviceTypes))[:offerCount] {
			st := serviceTypes[idx]
			price := st.priceCents + int64(mrand.IntN(11)-5)*100
			if price < 500 {
				price = 500
			}
			offerQuery := `
				CREATE caregiver_service CONTENT {
					caregiver: type::record($caregiver_id),
					service_type: type::record($service_type_id),
					price_cents: $price_cents,
					active: true,
					created_on: time::now(),
					updated_on: time::now()
				}
			`
			_, err = s.db.Query(ctx, offerQuery, map[string]interface{}{
				"caregiver_id":    userID,
				"service_type_id": st.id,
				"price_cents":     price,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create caregiver service: %w", err)
			}
		}

		// Weekday morning-to-evening windows, with occasional weekend cover
		for _, weekday := range []int{0, 2, 4} {
			if err := s.createSeedWindow(ctx, userID, weekday, 540, 1020); err != nil {
				return nil, err
			}
		}
		if mrand.IntN(3) == 0 {
			if err := s.createSeedWindow(ctx, userID, 5, 600, 960); err != nil {
				return nil, err
			}
		}
	}

	return &SeedResult{
		Created:  len(ids),
		IDs:      ids,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// SeedBookings creates bookings between previously seeded owners and
// caregivers. Frozen amounts come from the caregiver's offering through the
// commission calculator, so seeded data satisfies the same split as real
// bookings. Completed bookings are backdated, marked paid, and get their
// ledger credit; reviews recompute the caregiver rating aggregate.
func (s *SeederService) SeedBookings(ctx context.Context, req SeedBookingsRequest) (*SeedResult, error) {
	start := time.Now()

	if req.Count <= 0 || req.Count > 500 {
		return nil, fmt.Errorf("count must be between 1 and 500")
	}
	if req.Prefix == "" {
		req.Prefix = defaultSeedPrefix
	}

	pets, err := s.db.Query(ctx,
		`SELECT id, owner FROM pet WHERE owner.email CONTAINS $prefix`,
		map[string]interface{}{"prefix": req.Prefix})
	if err != nil {
		return nil, fmt.Errorf("failed to query seeded pets: %w", err)
	}
	petRows := extractRows(pets)
	if len(petRows) == 0 {
		if _, err := s.SeedOwners(ctx, SeedOwnersRequest{Count: 3, Prefix: req.Prefix}); err != nil {
			return nil, fmt.Errorf("failed to seed owners for bookings: %w", err)
		}
		pets, err = s.db.Query(ctx,
			`SELECT id, owner FROM pet WHERE owner.email CONTAINS $prefix`,
			map[string]interface{}{"prefix": req.Prefix})
		if err != nil {
			return nil, fmt.Errorf("failed to query seeded pets: %w", err)
		}
		petRows = extractRows(pets)
	}

	offers, err := s.db.Query(ctx,
		`SELECT id, caregiver, service_type, price_cents FROM caregiver_service
		 WHERE caregiver.email CONTAINS $prefix AND active = true`,
		map[string]interface{}{"prefix": req.Prefix})
	if err != nil {
		return nil, fmt.Errorf("failed to query seeded offerings: %w", err)
	}
	offerRows := extractRows(offers)
	if len(offerRows) == 0 {
		if _, err := s.SeedCaregivers(ctx, SeedCaregiversRequest{Count: 3, Prefix: req.Prefix}); err != nil {
			return nil, fmt.Errorf("failed to seed caregivers for bookings: %w", err)
		}
		offers, err = s.db.Query(ctx,
			`SELECT id, caregiver, service_type, price_cents FROM caregiver_service
			 WHERE caregiver.email CONTAINS $prefix AND active = true`,
			map[string]interface{}{"prefix": req.Prefix})
		if err != nil {
			return nil, fmt.Errorf("failed to query seeded offerings: %w", err)
		}
		offerRows = extractRows(offers)
	}

	if len(petRows) == 0 || len(offerRows) == 0 {
		return nil, fmt.Errorf("no seeded pets or offerings found for prefix %q", req.Prefix)
	}

	baseMinutes, err := s.loadBaseMinutes(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, req.Count)
	reviewedCaregivers := make(map[string]bool)

	for i := 0; i < req.Count; i++ {
		pet := petRows[mrand.IntN(len(petRows))]
		offer := offerRows[mrand.IntN(len(offerRows))]

		petID := formatID(pet["id"])
		ownerID := formatID(pet["owner"])
		caregiverID := formatID(offer["caregiver"])
		serviceTypeID := formatID(offer["service_type"])
		if petID == "" || ownerID == "" || caregiverID == "" || serviceTypeID == "" {
			continue
		}

		duration := baseMinutes[serviceTypeID]
		if duration <= 0 {
			duration = 30
		}
		price := toInt64(offer["price_cents"])
		if price <= 0 {
			price = 2000
		}
		fee, payout := s.calculator.Split(price)

		var startsOn time.Time
		status := model.BookingStatusPending
		paymentStatus := model.PaymentStatusPending
		if req.Completed {
			day := time.Now().AddDate(0, 0, -(1 + mrand.IntN(30)))
			startsOn = time.Date(day.Year(), day.Month(), day.Day(), 9+mrand.IntN(8), 0, 0, 0, time.UTC)
			status = model.BookingStatusCompleted
			paymentStatus = model.PaymentStatusPaid
		} else {
			day := time.Now().AddDate(0, 0, 1+mrand.IntN(14))
			startsOn = time.Date(day.Year(), day.Month(), day.Day(), 9+mrand.IntN(8), 0, 0, 0, time.UTC)
		}
		endsOn := startsOn.Add(time.Duration(duration) * time.Minute)

		bookingQuery := `
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
		results, err := s.db.Query(ctx, bookingQuery, map[string]interface{}{
			"owner_id":         ownerID,
			"caregiver_id":     caregiverID,
			"pet_id":           petID,
			"service_type_id":  serviceTypeID,
			"starts_on":        startsOn.Format(time.RFC3339),
			"ends_on":          endsOn.Format(time.RFC3339),
			"duration_minutes": duration,
			"status":           status,
			"price_cents":      price,
			"fee_cents":        fee,
			"payout_cents":     payout,
			"payment_status":   paymentStatus,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create booking: %w", err)
		}
		bookingID := extractID(results)
		if bookingID == "" {
			return nil, fmt.Errorf("failed to extract booking ID")
		}
		ids = append(ids, bookingID)

		if req.Completed {
			creditQuery := `
				CREATE transaction_log CONTENT {
					booking: type::record($booking_id),
					user: type::record($user_id),
					direction: "credit",
					amount_cents: $amount_cents,
					description: $description,
					payout: NONE,
					created_on: time::now()
				}
			`
			_, err = s.db.Query(ctx, creditQuery, map[string]interface{}{
				"booking_id":   bookingID,
				"user_id":      caregiverID,
				"amount_cents": payout,
				"description":  model.DescriptionBookingPayout,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create ledger credit: %w", err)
			}

			if req.WithReviews {
				reviewQuery := `
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
				_, err = s.db.Query(ctx, reviewQuery, map[string]interface{}{
					"booking_id":   bookingID,
					"author_id":    ownerID,
					"caregiver_id": caregiverID,
					"rating":       3 + mrand.IntN(3),
					"comment":      reviewComments[mrand.IntN(len(reviewComments))],
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create review: %w", err)
				}
				reviewedCaregivers[caregiverID] = true
			}
		}
	}

	for caregiverID := range reviewedCaregivers {
		if err := s.recomputeRating(ctx, caregiverID); err != nil {
			return nil, err
		}
	}

	return &SeedResult{
		Created:  len(ids),
		IDs:      ids,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// SeedScenario runs a predefined scenario
func (s *SeederService) SeedScenario(ctx context.Context, req SeedScenarioRequest) (*SeedResult, error) {
	start := time.Now()
	var totalCreated int
	var allIDs []string

	switch req.Scenario {
	case "demo_marketplace":
		// The full demo: owners with pets, bookable caregivers, finished
		// bookings with reviews and payout credits
		ownerResult, err := s.SeedOwners(ctx, SeedOwnersRequest{Count: 3, PetsPerOwner: 2, Prefix: "demo_"})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, ownerResult.IDs...)
		totalCreated += ownerResult.Created

		caregiverResult, err := s.SeedCaregivers(ctx, SeedCaregiversRequest{Count: 3, Prefix: "demo_"})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, caregiverResult.IDs...)
		totalCreated += caregiverResult.Created

		bookingResult, err := s.SeedBookings(ctx, SeedBookingsRequest{
			Count: 5, Completed: true, WithReviews: true, Prefix: "demo_",
		})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, bookingResult.IDs...)
		totalCreated += bookingResult.Created

	case "busy_caregiver":
		// One caregiver with a deep booking and review history
		ownerResult, err := s.SeedOwners(ctx, SeedOwnersRequest{Count: 8, PetsPerOwner: 1, Prefix: "busy_"})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, ownerResult.IDs...)
		totalCreated += ownerResult.Created

		caregiverResult, err := s.SeedCaregivers(ctx, SeedCaregiversRequest{Count: 1, Prefix: "busy_"})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, caregiverResult.IDs...)
		totalCreated += caregiverResult.Created

		bookingResult, err := s.SeedBookings(ctx, SeedBookingsRequest{
			Count: 12, Completed: true, WithReviews: true, Prefix: "busy_",
		})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, bookingResult.IDs...)
		totalCreated += bookingResult.Created

	case "city_directory":
		// A dense single-city directory for search testing
		result, err := s.SeedCaregivers(ctx, SeedCaregiversRequest{Count: 12, City: "Portland", Prefix: "city_"})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, result.IDs...)
		totalCreated += result.Created

	default:
		return nil, fmt.Errorf("unknown scenario: %s", req.Scenario)
	}

	return &SeedResult{
		Created:  totalCreated,
		IDs:      allIDs,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// SeedAllRequest configures a combined run covering the whole marketplace
type SeedAllRequest struct {
	Owners       int    `json:"owners,omitempty"`
	Caregivers   int    `json:"caregivers,omitempty"`
	Bookings     int    `json:"bookings,omitempty"`
	PetsPerOwner int    `json:"pets_per_owner,omitempty"`
	City         string `json:"city,omitempty"`
	Completed    bool   `json:"completed,omitempty"`
	WithReviews  bool   `json:"with_reviews,omitempty"`
	Prefix       string `json:"prefix,omitempty"`
}

// SeedAll seeds the catalog plus the requested owners, caregivers and
// bookings in dependency order. All counts zero falls back to a small
// default dataset.
func (s *SeederService) SeedAll(ctx context.Context, req SeedAllRequest) (*SeedResult, error) {
	start := time.Now()

	if req.Owners <= 0 && req.Caregivers <= 0 && req.Bookings <= 0 {
		req.Owners, req.Caregivers, req.Bookings = 5, 5, 10
	}

	var totalCreated int
	var allIDs []string

	catalog, err := s.EnsureServiceTypes(ctx)
	if err != nil {
		return nil, err
	}
	totalCreated += catalog.Created
	allIDs = append(allIDs, catalog.IDs...)

	if req.Owners > 0 {
		result, err := s.SeedOwners(ctx, SeedOwnersRequest{
			Count: req.Owners, PetsPerOwner: req.PetsPerOwner, Prefix: req.Prefix,
		})
		if err != nil {
			return nil, err
		}
		totalCreated += result.Created
		allIDs = append(allIDs, result.IDs...)
	}

	if req.Caregivers > 0 {
		result, err := s.SeedCaregivers(ctx, SeedCaregiversRequest{
			Count: req.Caregivers, City: req.City, Prefix: req.Prefix,
		})
		if err != nil {
			return nil, err
		}
		totalCreated += result.Created
		allIDs = append(allIDs, result.IDs...)
	}

	if req.Bookings > 0 {
		result, err := s.SeedBookings(ctx, SeedBookingsRequest{
			Count: req.Bookings, Completed: req.Completed, WithReviews: req.WithReviews, Prefix: req.Prefix,
		})
		if err != nil {
			return nil, err
		}
		totalCreated += result.Created
		allIDs = append(allIDs, result.IDs...)
	}

	return &SeedResult{
		Created:  totalCreated,
		IDs:      allIDs,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// Cleanup removes all seeded data with the given prefix. Service types are
// kept; they are the shared catalog, not per-run data.
func (s *SeederService) Cleanup(ctx context.Context, prefix string) (*CleanupResult, error) {
	start := time.Now()

	if prefix == "" {
		prefix = defaultSeedPrefix
	}
	vars := map[string]interface{}{"prefix": prefix}

	results, err := s.db.Query(ctx,
		`SELECT count() AS count FROM user WHERE email CONTAINS $prefix GROUP ALL`, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to count seeded users: %w", err)
	}
	deleted := 0
	if rows := extractRows(results); len(rows) > 0 {
		deleted = int(toInt64(rows[0]["count"]))
	}

	// Leaf records first so record links never dangle mid-cleanup
	deletes := []string{
		`DELETE walk_photo WHERE walk.booking.owner.email CONTAINS $prefix`,
		`DELETE walk WHERE booking.owner.email CONTAINS $prefix`,
		`DELETE review WHERE author.email CONTAINS $prefix`,
		`DELETE transaction_log WHERE user.email CONTAINS $prefix`,
		`DELETE payout WHERE caregiver.email CONTAINS $prefix`,
		`DELETE booking WHERE owner.email CONTAINS $prefix OR caregiver.email CONTAINS $prefix`,
		`DELETE availability WHERE caregiver.email CONTAINS $prefix`,
		`DELETE time_off WHERE caregiver.email CONTAINS $prefix`,
		`DELETE caregiver_service WHERE caregiver.email CONTAINS $prefix`,
		`DELETE pet WHERE owner.email CONTAINS $prefix`,
		`DELETE owner_profile WHERE user.email CONTAINS $prefix`,
		`DELETE caregiver_profile WHERE user.email CONTAINS $prefix`,
		`DELETE refresh_token WHERE user.email CONTAINS $prefix`,
		`DELETE user WHERE email CONTAINS $prefix`,
	}
	for _, query := range deletes {
		if err := s.db.Execute(ctx, query, vars); err != nil {
			return nil, fmt.Errorf("cleanup failed: %w", err)
		}
	}

	return &CleanupResult{
		Deleted:  deleted,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// Helper functions

func (s *SeederService) createSeedUser(ctx context.Context, prefix string, role model.UserRole, hash string) (string, error) {
	randID := randomID()
	query := `
		CREATE user CONTENT {
			email: $email,
			username: $username,
			hash: $hash,
			role: $role,
			active: true,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := s.db.Query(ctx, query, map[string]interface{}{
		"email":    fmt.Sprintf("%s%s@seed.local", prefix, randID),
		"username": fmt.Sprintf("%s%s", prefix, randID),
		"hash":     hash,
		"role":     role,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	userID := extractID(results)
	if userID == "" {
		return "", fmt.Errorf("failed to extract user ID")
	}
	return userID, nil
}

func (s *SeederService) createSeedPet(ctx context.Context, ownerID string) error {
	species := model.PetSpeciesDog
	breed := dogBreeds[mrand.IntN(len(dogBreeds))]
	weight := int64(4000 + mrand.IntN(41000))
	if mrand.IntN(5) == 0 {
		species = model.PetSpeciesCat
		breed = catBreeds[mrand.IntN(len(catBreeds))]
		weight = int64(2500 + mrand.IntN(4500))
	}
	sex := model.PetSexMale
	if mrand.IntN(2) == 0 {
		sex = model.PetSexFemale
	}
	birthdate := time.Now().AddDate(-(1 + mrand.IntN(10)), -mrand.IntN(12), 0)

	query := `
		CREATE pet CONTENT {
			owner: type::record($owner_id),
			name: $name,
			species: $species,
			breed: $breed,
			sex: $sex,
			birthdate: <datetime>$birthdate,
			weight_grams: $weight_grams,
			neutered: $neutered,
			medical_notes: "",
			behavior_notes: "",
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	_, err := s.db.Query(ctx, query, map[string]interface{}{
		"owner_id":     ownerID,
		"name":         petNames[mrand.IntN(len(petNames))],
		"species":      species,
		"breed":        breed,
		"sex":          sex,
		"birthdate":    birthdate.Format(time.RFC3339),
		"weight_grams": weight,
		"neutered":     mrand.IntN(2) == 0,
	})
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

func (s *SeederService) createSeedWindow(ctx context.Context, caregiverID string, weekday, startMinute, endMinute int) error {
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
	_, err := s.db.Query(ctx, query, map[string]interface{}{
		"caregiver_id": caregiverID,
		"weekday":      weekday,
		"start_minute": startMinute,
		"end_minute":   endMinute,
	})
	if err != nil {
		return fmt.Errorf("failed to create availability window: %w", err)
	}
	return nil
}

type seededServiceType struct {
	id          string
	priceCents  int64
	baseMinutes int
}

func (s *SeederService) loadServiceTypes(ctx context.Context) ([]seededServiceType, error) {
	results, err := s.db.Query(ctx,
		`SELECT id, default_price_cents, base_duration_minutes FROM service_type`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load service types: %w", err)
	}
	var out []seededServiceType
	for _, row := range extractRows(results) {
		id := formatID(row["id"])
		if id == "" {
			continue
		}
		out = append(out, seededServiceType{
			id:          id,
			priceCents:  toInt64(row["default_price_cents"]),
			baseMinutes: int(toInt64(row["base_duration_minutes"])),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no service types found")
	}
	return out, nil
}

func (s *SeederService) loadBaseMinutes(ctx context.Context) (map[string]int, error) {
	results, err := s.db.Query(ctx,
		`SELECT id, base_duration_minutes FROM service_type`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load service types: %w", err)
	}
	out := make(map[string]int)
	for _, row := range extractRows(results) {
		if id := formatID(row["id"]); id != "" {
			out[id] = int(toInt64(row["base_duration_minutes"]))
		}
	}
	return out, nil
}

// recomputeRating refreshes the caregiver's stored aggregate from the actual
// review rows, the same way the rating recalc does
func (s *SeederService) recomputeRating(ctx context.Context, caregiverID string) error {
	results, err := s.db.Query(ctx,
		`SELECT math::mean(rating) AS avg, count() AS count FROM review
		 WHERE caregiver = type::record($caregiver_id) GROUP ALL`,
		map[string]interface{}{"caregiver_id": caregiverID})
	if err != nil {
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	rows := extractRows(results)
	if len(rows) == 0 {
		return nil
	}

	count := toInt64(rows[0]["count"])
	average := 0
	if count > 0 {
		if avg, ok := rows[0]["avg"].(float64); ok {
			average = int(math.Round(avg * 100))
		}
	}

	err = s.db.Execute(ctx,
		`UPDATE caregiver_profile SET rating_average = $average, rating_count = $count, updated_on = time::now()
		 WHERE user = type::record($caregiver_id)`,
		map[string]interface{}{
			"caregiver_id": caregiverID,
			"average":      average,
			"count":        count,
		})
	if err != nil {
		return fmt.Errorf("failed to update rating aggregate: %w", err)
	}
	return nil
}

func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func randomPhone() string {
	return fmt.Sprintf("+1555%07d", mrand.IntN(10000000))
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

// extractRows flattens a query response into its result rows
func extractRows(results []interface{}) []map[string]interface{} {
	if len(results) == 0 {
		return nil
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return nil
	}

	result, ok := resp["result"]
	if !ok {
		return nil
	}

	switch r := result.(type) {
	case []interface{}:
		rows := make([]map[string]interface{}, 0, len(r))
		for _, item := range r {
			if row, ok := item.(map[string]interface{}); ok {
				rows = append(rows, row)
			}
		}
		return rows
	case map[string]interface{}:
		return []map[string]interface{}{r}
	}
	return nil
}

func extractID(results []interface{}) string {
	rows := extractRows(results)
	if len(rows) == 0 {
		return ""
	}
	return formatID(rows[0]["id"])
}

func formatID(v interface{}) string {
	if v == nil {
		return ""
	}

	// Handle SurrealDB record ID objects
	if m, ok := v.(map[string]interface{}); ok {
		if tb, ok := m["tb"].(string); ok {
			if id := m["id"]; id != nil {
				return fmt.Sprintf("%s:%v", tb, id)
			}
		}
	}

	// Everything else stringifies; a driver-rendered "{table id}" is
	// normalized to "table:id", canonical strings pass through untouched.
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
