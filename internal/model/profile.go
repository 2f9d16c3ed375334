package model

import "time"

// OwnerProfile holds contact and address details for a pet owner.
type OwnerProfile struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Phone        string    `json:"phone"`
	Country      string    `json:"country"`
	City         string    `json:"city"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	PostalCode   string    `json:"postal_code"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`

	// Populated on reads that join the user record
	Username *string `json:"username,omitempty"`
}

// CaregiverProfile holds the public listing data for a service provider.
// RatingAverage is fixed-point x100 (437 = 4.37 stars) so aggregates stay
// exact across recalculation.
type CaregiverProfile struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Phone             string    `json:"phone"`
	City              string    `json:"city"`
	Bio               string    `json:"bio,omitempty"`
	YearsExperience   int       `json:"years_experience"`
	HourlyRateCents   int64     `json:"hourly_rate_cents"`
	MaxPets           int       `json:"max_pets"`
	AcceptsLargeDogs  bool      `json:"accepts_large_dogs"`
	AcceptsAggressive bool      `json:"accepts_aggressive"`
	Verified          bool      `json:"verified"`
	RatingAverage     int       `json:"rating_average"`
	RatingCount       int       `json:"rating_count"`
	ServiceRadiusKm   float64   `json:"service_radius_km"`
	CreatedOn         time.Time `json:"created_on"`
	UpdatedOn         time.Time `json:"updated_on"`

	// Populated on reads that join the user record
	Username *string `json:"username,omitempty"`
}

// CaregiverListing is the public directory row: profile plus active offerings.
type CaregiverListing struct {
	Profile  *CaregiverProfile   `json:"profile"`
	Services []*CaregiverService `json:"services"`
}

// CaregiverDetail is the public detail view: listing plus availability and
// the most recent reviews.
type CaregiverDetail struct {
	Profile      *CaregiverProfile   `json:"profile"`
	Services     []*CaregiverService `json:"services"`
	Availability []*Availability     `json:"availability"`
	Reviews      []*Review           `json:"reviews"`
}

// CaregiverSearchFilter narrows the public directory.
type CaregiverSearchFilter struct {
	City             string
	ServiceTypeCode  string
	MinRating        int // x100 fixed point, 0 = no filter
	PriceMinCents    int64
	PriceMaxCents    int64
	AcceptsLargeDogs *bool
	Limit            int
	Offset           int
}

// Profile constraints
const (
	MaxBioLength       = 2000
	DefaultMaxPets     = 3
	DirectoryPageLimit = 20
)

// UpdateCaregiverProfileRequest is the caregiver self-service profile patch.
type UpdateCaregiverProfileRequest struct {
	Phone             *string  `json:"phone,omitempty"`
	City              *string  `json:"city,omitempty"`
	Bio               *string  `json:"bio,omitempty"`
	YearsExperience   *int     `json:"years_experience,omitempty"`
	HourlyRateCents   *int64   `json:"hourly_rate_cents,omitempty"`
	MaxPets           *int     `json:"max_pets,omitempty"`
	AcceptsLargeDogs  *bool    `json:"accepts_large_dogs,omitempty"`
	AcceptsAggressive *bool    `json:"accepts_aggressive,omitempty"`
	ServiceRadiusKm   *float64 `json:"service_radius_km,omitempty"`
}
