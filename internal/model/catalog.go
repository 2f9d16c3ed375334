package model

import "time"

// ServiceType is a catalog entry for a bookable kind of care.
// Codes are stable slugs referenced by bookings and caregiver offerings.
type ServiceType struct {
	ID                  string    `json:"id"`
	Code                string    `json:"code"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	BaseDurationMinutes int       `json:"base_duration_minutes"`
	DefaultPriceCents   int64     `json:"default_price_cents"`
	CreatedOn           time.Time `json:"created_on"`
	UpdatedOn           time.Time `json:"updated_on"`
}

// Seeded catalog codes
const (
	ServiceCodeDogWalk  = "dog_walk"
	ServiceCodeHouseSit = "house_sit"
	ServiceCodeBoarding = "boarding"
	ServiceCodeGrooming = "grooming"
	ServiceCodeDropIn   = "drop_in"
)

// CaregiverService is a caregiver's priced offering of a service type.
// One offering per (caregiver, service type) pair.
type CaregiverService struct {
	ID            string    `json:"id"`
	CaregiverID   string    `json:"caregiver_id"`
	ServiceTypeID string    `json:"service_type_id"`
	PriceCents    int64     `json:"price_cents"`
	Active        bool      `json:"active"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`

	// Populated on reads that join the catalog record
	ServiceType *ServiceType `json:"service_type,omitempty"`
}

// UpsertServiceTypeRequest creates or updates a catalog entry (admin only)
type UpsertServiceTypeRequest struct {
	Code                string `json:"code"`
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	BaseDurationMinutes int    `json:"base_duration_minutes"`
	DefaultPriceCents   int64  `json:"default_price_cents"`
}

// CreateCaregiverServiceRequest adds an offering to the caller's profile
type CreateCaregiverServiceRequest struct {
	ServiceTypeCode string `json:"service_type_code"`
	PriceCents      int64  `json:"price_cents"`
	Active          *bool  `json:"active,omitempty"`
}

// UpdateCaregiverServiceRequest patches an offering
type UpdateCaregiverServiceRequest struct {
	PriceCents *int64 `json:"price_cents,omitempty"`
	Active     *bool  `json:"active,omitempty"`
}

// Catalog constraints
const (
	MaxServiceCodeLength = 50
	MaxServiceNameLength = 100
	DefaultBaseDuration  = 60
)
