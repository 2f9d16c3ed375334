package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrUserNotFound          = errors.New("user not found")
	ErrAccountDisabled       = errors.New("account is disabled")
	ErrPasswordRequired      = errors.New("password is required")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong       = errors.New("password must be at most 128 characters")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrInvalidUsername       = errors.New("username must be 3-30 characters of letters, digits, . _ -")
	ErrWrongRole             = errors.New("operation not allowed for this role")
)

// ===== Token Errors =====
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// ===== Profile Errors =====
var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileExists        = errors.New("profile already exists")
	ErrPhoneRequired        = errors.New("phone is required")
	ErrCityRequired         = errors.New("city is required")
	ErrBioTooLong           = errors.New("bio exceeds maximum length")
	ErrInvalidHourlyRate    = errors.New("hourly rate must be positive")
	ErrInvalidServiceRadius = errors.New("service radius must be positive")
	ErrInvalidMaxPets       = errors.New("max pets must be at least 1")
)

// ===== Pet Errors =====
var (
	ErrPetNotFound      = errors.New("pet not found")
	ErrPetNameRequired  = errors.New("pet name is required")
	ErrPetNameTooLong   = errors.New("pet name exceeds maximum length")
	ErrInvalidSpecies   = errors.New("invalid species")
	ErrInvalidPetSex    = errors.New("invalid pet sex")
	ErrInvalidBirthdate = errors.New("birthdate must be YYYY-MM-DD and not in the future")
	ErrInvalidWeight    = errors.New("weight must not be negative")
	ErrPetNotesTooLong  = errors.New("pet notes exceed maximum length")
	ErrPetLimitReached  = errors.New("maximum number of pets reached")
)

// ===== Catalog Errors =====
var (
	ErrServiceTypeNotFound  = errors.New("service type not found")
	ErrServiceTypeCodeTaken = errors.New("service type code already exists")
	ErrInvalidServiceCode   = errors.New("service code must be a lowercase slug")
	ErrServiceNameRequired  = errors.New("service name is required")
	ErrOfferingNotFound     = errors.New("service offering not found")
	ErrOfferingExists       = errors.New("service type already offered")
	ErrInvalidPrice         = errors.New("price must be positive")
	ErrInvalidBaseDuration  = errors.New("base duration must be positive")
)

// ===== Availability Errors =====
var (
	ErrAvailabilityNotFound = errors.New("availability window not found")
	ErrTimeOffNotFound      = errors.New("time off entry not found")
	ErrInvalidWeekday       = errors.New("weekday must be between 0 (Monday) and 6 (Sunday)")
	ErrInvalidTimeWindow    = errors.New("end minute must be after start minute within one day")
	ErrInvalidDateRange     = errors.New("date_to must not be before date_from")
	ErrInvalidDateFormat    = errors.New("dates must be YYYY-MM-DD")
	ErrWindowLimitReached   = errors.New("maximum availability windows reached")
	ErrReasonTooLong        = errors.New("reason exceeds maximum length")
)

// ===== Booking Errors =====
var (
	ErrBookingNotFound       = errors.New("booking not found")
	ErrInvalidTransition     = errors.New("booking status transition not allowed")
	ErrNotBookingParty       = errors.New("not a party to this booking")
	ErrCaregiverNotAvailable = errors.New("caregiver is not available for the requested time")
	ErrInvalidDuration       = errors.New("invalid booking duration")
	ErrStartInPast           = errors.New("booking must start in the future")
	ErrInvalidStartFormat    = errors.New("starts_on must be RFC 3339")
	ErrCannotBookSelf        = errors.New("cannot book your own services")
	ErrBookingNotesTooLong   = errors.New("notes exceed maximum length")
	ErrPaymentNotAllowed     = errors.New("booking is not payable in its current state")
)

// ===== Walk Errors =====
var (
	ErrWalkNotFound       = errors.New("walk not found")
	ErrWalkAlreadyOpen    = errors.New("booking already has a walk in progress")
	ErrWalkFinished       = errors.New("walk is already finished")
	ErrBookingNotAccepted = errors.New("walks require an accepted booking")
	ErrWalkNotesTooLong   = errors.New("walk notes exceed maximum length")
	ErrRouteTooLong       = errors.New("route has too many points")
	ErrInvalidPhotoURL    = errors.New("photo url is required")
	ErrCaptionTooLong     = errors.New("caption exceeds maximum length")
	ErrPhotoLimitReached  = errors.New("maximum photos per walk reached")
)

// ===== Review Errors =====
var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrAlreadyReviewed     = errors.New("booking already reviewed")
	ErrBookingNotCompleted = errors.New("only completed bookings can be reviewed")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong      = errors.New("comment exceeds maximum length")
)

// ===== Finance Errors =====
var (
	ErrPayoutNotFound  = errors.New("payout not found")
	ErrNothingToPayout = errors.New("no uncovered earnings to pay out")
)

// ===== Admin Errors =====
var (
	ErrInvalidRole    = errors.New("invalid role")
	ErrCannotEditSelf = errors.New("cannot change your own account")
)
