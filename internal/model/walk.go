package model

import "time"

// Walk is the execution record of a booking: the caregiver's live log of a
// walk, sit or visit. A booking can accumulate several walks (multi-day
// stays) but at most one may be open at a time.
type Walk struct {
	ID             string       `json:"id"`
	BookingID      string       `json:"booking_id"`
	CaregiverID    string       `json:"caregiver_id"`
	StartedOn      time.Time    `json:"started_on"`
	EndedOn        *time.Time   `json:"ended_on,omitempty"`
	DistanceMeters int          `json:"distance_meters,omitempty"`
	Route          []RoutePoint `json:"route,omitempty"`
	PeeCount       int          `json:"pee_count"`
	PooCount       int          `json:"poo_count"`
	FoodGiven      bool         `json:"food_given"`
	WaterGiven     bool         `json:"water_given"`
	Notes          string       `json:"notes,omitempty"`
	CreatedOn      time.Time    `json:"created_on"`
	UpdatedOn      time.Time    `json:"updated_on"`

	// Populated on detail reads
	Photos []*WalkPhoto `json:"photos,omitempty"`
}

// Open reports whether the walk is still in progress.
func (w *Walk) Open() bool {
	return w.EndedOn == nil
}

// RoutePoint is a GPS sample on the walk route
type RoutePoint struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// WalkPhoto is a picture the caregiver attached to a walk. Storage is
// external; only the URL is persisted.
type WalkPhoto struct {
	ID        string    `json:"id"`
	WalkID    string    `json:"walk_id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}

// StartWalkRequest opens a walk for a booking
type StartWalkRequest struct {
	BookingID string `json:"booking_id"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateWalkRequest patches telemetry on an open or finished walk
type UpdateWalkRequest struct {
	DistanceMeters *int         `json:"distance_meters,omitempty"`
	Route          []RoutePoint `json:"route,omitempty"`
	PeeCount       *int         `json:"pee_count,omitempty"`
	PooCount       *int         `json:"poo_count,omitempty"`
	FoodGiven      *bool        `json:"food_given,omitempty"`
	WaterGiven     *bool        `json:"water_given,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
	Finish         bool         `json:"finish,omitempty"`
}

// AddWalkPhotoRequest attaches a photo
type AddWalkPhotoRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Walk constraints
const (
	MaxWalkNotesLength  = 2000
	MaxWalkRoutePoints  = 10000
	MaxWalkPhotoCaption = 300
	MaxPhotosPerWalk    = 30
)
