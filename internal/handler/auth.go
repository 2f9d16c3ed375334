package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pawmarket/api/internal/middleware"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterOwnerRequest represents the owner registration request body
type RegisterOwnerRequest struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	Country      string `json:"country,omitempty"`
	City         string `json:"city"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
}

// RegisterCaregiverRequest represents the caregiver registration request body
type RegisterCaregiverRequest struct {
	Email             string  `json:"email"`
	Username          string  `json:"username"`
	Password          string  `json:"password"`
	Phone             string  `json:"phone"`
	City              string  `json:"city"`
	Bio               string  `json:"bio,omitempty"`
	YearsExperience   int     `json:"years_experience,omitempty"`
	HourlyRateCents   int64   `json:"hourly_rate_cents"`
	MaxPets           int     `json:"max_pets,omitempty"`
	AcceptsLargeDogs  bool    `json:"accepts_large_dogs,omitempty"`
	AcceptsAggressive bool    `json:"accepts_aggressive,omitempty"`
	ServiceRadiusKm   float64 `json:"service_radius_km,omitempty"`
}

// LoginRequest represents the login endpoint request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents the refresh endpoint request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents the password change request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// AuthResponse bundles the account with a fresh token pair
type AuthResponse struct {
	User  *model.User        `json:"user"`
	Token *service.TokenPair `json:"token"`
}

// RegisterOwner handles POST /api/v1/auth/register/owner
func (h *AuthHandler) RegisterOwner(w http.ResponseWriter, r *http.Request) {
	var req RegisterOwnerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.RegisterOwner(r.Context(), service.RegisterOwnerRequest{
		Email:        req.Email,
		Username:     req.Username,
		Password:     req.Password,
		Phone:        req.Phone,
		Country:      req.Country,
		City:         req.City,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		PostalCode:   req.PostalCode,
	})
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, AuthResponse{
		User:  result.User,
		Token: result.TokenPair,
	}, map[string]string{
		"self": "/api/v1/me",
	})
}

// RegisterCaregiver handles POST /api/v1/auth/register/caregiver
func (h *AuthHandler) RegisterCaregiver(w http.ResponseWriter, r *http.Request) {
	var req RegisterCaregiverRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.RegisterCaregiver(r.Context(), service.RegisterCaregiverRequest{
		Email:             req.Email,
		Username:          req.Username,
		Password:          req.Password,
		Phone:             req.Phone,
		City:              req.City,
		Bio:               req.Bio,
		YearsExperience:   req.YearsExperience,
		HourlyRateCents:   req.HourlyRateCents,
		MaxPets:           req.MaxPets,
		AcceptsLargeDogs:  req.AcceptsLargeDogs,
		AcceptsAggressive: req.AcceptsAggressive,
		ServiceRadiusKm:   req.ServiceRadiusKm,
	})
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, AuthResponse{
		User:  result.User,
		Token: result.TokenPair,
	}, map[string]string{
		"self": "/api/v1/me",
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	WriteData(w, http.StatusOK, AuthResponse{
		User:  result.User,
		Token: result.TokenPair,
	}, map[string]string{
		"self": "/api/v1/me",
	})
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if req.RefreshToken == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "refresh_token", Message: "refresh_token is required"},
		}))
		return
	}

	tokenPair, err := h.authService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	WriteData(w, http.StatusOK, tokenPair, nil)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		WriteError(w, model.NewInternalError("logout failed"))
		return
	}

	WriteNoContent(w)
}

// ChangePassword handles POST /api/v1/auth/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req ChangePasswordRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		h.handleAuthError(w, err)
		return
	}

	WriteNoContent(w)
}

// Me handles GET /api/v1/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	me, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			WriteError(w, model.NewNotFoundError("user"))
			return
		}
		WriteError(w, model.NewInternalError("failed to get user"))
		return
	}

	WriteData(w, http.StatusOK, me, map[string]string{
		"self": "/api/v1/me",
	})
}

func (h *AuthHandler) handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, model.NewUnauthorizedError("invalid email or password"))
	case errors.Is(err, service.ErrAccountDisabled):
		WriteError(w, model.NewForbiddenError("account is disabled"))
	case errors.Is(err, service.ErrEmailAlreadyExists):
		WriteError(w, model.NewConflictError("email already registered"))
	case errors.Is(err, service.ErrUsernameAlreadyExists):
		WriteError(w, model.NewConflictError("username already taken"))
	case errors.Is(err, service.ErrUserNotFound):
		WriteError(w, model.NewNotFoundError("user"))
	case errors.Is(err, service.ErrInvalidEmail):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "email", Message: err.Error()},
		}))
	case errors.Is(err, service.ErrInvalidUsername):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "username", Message: err.Error()},
		}))
	case errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "password", Message: err.Error()},
		}))
	case errors.Is(err, service.ErrPhoneRequired):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "phone", Message: err.Error()},
		}))
	case errors.Is(err, service.ErrCityRequired):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "city", Message: err.Error()},
		}))
	case errors.Is(err, service.ErrBioTooLong):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "bio", Message: err.Error()},
		}))
	case errors.Is(err, service.ErrInvalidHourlyRate):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "hourly_rate_cents", Message: err.Error()},
		}))
	case errors.Is(err, service.ErrInvalidMaxPets):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "max_pets", Message: err.Error()},
		}))
	case errors.Is(err, service.ErrInvalidServiceRadius):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "service_radius_km", Message: err.Error()},
		}))
	case errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired),
		errors.Is(err, service.ErrRefreshTokenRevoked):
		WriteError(w, model.NewUnauthorizedError("invalid or expired refresh token"))
	default:
		slog.Error("unhandled auth error", "error", err)
		WriteError(w, model.NewInternalError("authentication error"))
	}
}
