package handler

import (
	"errors"

	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// ===== Authentication Errors → 401 =====
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())
	case errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired),
		errors.Is(err, service.ErrRefreshTokenRevoked):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrAccountDisabled),
		errors.Is(err, service.ErrWrongRole),
		errors.Is(err, service.ErrNotBookingParty):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrProfileNotFound):
		return model.NewNotFoundError("caregiver profile")
	case errors.Is(err, service.ErrPetNotFound):
		return model.NewNotFoundError("pet")
	case errors.Is(err, service.ErrServiceTypeNotFound):
		return model.NewNotFoundError("service type")
	case errors.Is(err, service.ErrOfferingNotFound):
		return model.NewNotFoundError("service offering")
	case errors.Is(err, service.ErrAvailabilityNotFound):
		return model.NewNotFoundError("availability window")
	case errors.Is(err, service.ErrTimeOffNotFound):
		return model.NewNotFoundError("time off entry")
	case errors.Is(err, service.ErrBookingNotFound):
		return model.NewNotFoundError("booking")
	case errors.Is(err, service.ErrWalkNotFound):
		return model.NewNotFoundError("walk")
	case errors.Is(err, service.ErrReviewNotFound):
		return model.NewNotFoundError("review")
	case errors.Is(err, service.ErrPayoutNotFound):
		return model.NewNotFoundError("payout")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameAlreadyExists),
		errors.Is(err, service.ErrProfileExists),
		errors.Is(err, service.ErrServiceTypeCodeTaken),
		errors.Is(err, service.ErrOfferingExists),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrWalkAlreadyOpen):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	// Self-action prevention
	case errors.Is(err, service.ErrCannotBookSelf):
		return model.NewValidationError([]model.FieldError{{Field: "target", Message: err.Error()}})

	// Format/input validation
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})

	case errors.Is(err, service.ErrPhoneRequired),
		errors.Is(err, service.ErrCityRequired),
		errors.Is(err, service.ErrBioTooLong),
		errors.Is(err, service.ErrInvalidHourlyRate),
		errors.Is(err, service.ErrInvalidServiceRadius),
		errors.Is(err, service.ErrInvalidMaxPets):
		return model.NewValidationError([]model.FieldError{{Field: "profile", Message: err.Error()}})

	case errors.Is(err, service.ErrPetNameRequired),
		errors.Is(err, service.ErrPetNameTooLong),
		errors.Is(err, service.ErrInvalidSpecies),
		errors.Is(err, service.ErrInvalidPetSex),
		errors.Is(err, service.ErrInvalidBirthdate),
		errors.Is(err, service.ErrInvalidWeight),
		errors.Is(err, service.ErrPetNotesTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "pet", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidServiceCode),
		errors.Is(err, service.ErrServiceNameRequired),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidBaseDuration):
		return model.NewValidationError([]model.FieldError{{Field: "service", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidWeekday),
		errors.Is(err, service.ErrInvalidTimeWindow),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidDateFormat),
		errors.Is(err, service.ErrReasonTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "availability", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidStartFormat),
		errors.Is(err, service.ErrStartInPast),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrBookingNotesTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "booking", Message: err.Error()}})

	case errors.Is(err, service.ErrWalkNotesTooLong),
		errors.Is(err, service.ErrRouteTooLong),
		errors.Is(err, service.ErrInvalidPhotoURL),
		errors.Is(err, service.ErrCaptionTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "walk", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrCommentTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "review", Message: err.Error()}})

	// Limit/capacity errors → 422
	case errors.Is(err, service.ErrPetLimitReached),
		errors.Is(err, service.ErrWindowLimitReached),
		errors.Is(err, service.ErrPhotoLimitReached):
		return model.NewValidationError([]model.FieldError{{Field: "limit", Message: err.Error()}})

	// State errors → 422
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrCaregiverNotAvailable),
		errors.Is(err, service.ErrBookingNotAccepted),
		errors.Is(err, service.ErrBookingNotCompleted),
		errors.Is(err, service.ErrWalkFinished),
		errors.Is(err, service.ErrPaymentNotAllowed),
		errors.Is(err, service.ErrNothingToPayout):
		return model.NewValidationError([]model.FieldError{{Field: "state", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
