package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	// bcrypt cost factor (10-14 recommended for production)
	bcryptCost = 12

	// Password constraints
	minPasswordLength = 8
	maxPasswordLength = 128
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,30}$`)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	CreateOwnerAccount(ctx context.Context, user *model.User, profile *model.OwnerProfile) error
	CreateCaregiverAccount(ctx context.Context, user *model.User, profile *model.CaregiverProfile) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, hash string) error
	RecordLogin(ctx context.Context, userID string) error
}

// ProfileReader loads the marketplace profile attached to an account
type ProfileReader interface {
	GetOwnerProfileByUserID(ctx context.Context, userID string) (*model.OwnerProfile, error)
	GetCaregiverProfileByUserID(ctx context.Context, userID string) (*model.CaregiverProfile, error)
}

// AuthService handles registration, login and account operations
type AuthService struct {
	userRepo     UserRepository
	profileRepo  ProfileReader
	tokenService *TokenService
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo     UserRepository
	ProfileRepo  ProfileReader
	TokenService *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:     cfg.UserRepo,
		profileRepo:  cfg.ProfileRepo,
		tokenService: cfg.TokenService,
	}
}

// RegisterOwnerRequest registers a pet owner account with its profile
type RegisterOwnerRequest struct {
	Email        string
	Username     string
	Password     string
	Phone        string
	Country      string
	City         string
	AddressLine1 string
	AddressLine2 string
	PostalCode   string
}

// RegisterCaregiverRequest registers a caregiver account with its listing
// profile
type RegisterCaregiverRequest struct {
	Email             string
	Username          string
	Password          string
	Phone             string
	City              string
	Bio               string
	YearsExperience   int
	HourlyRateCents   int64
	MaxPets           int
	AcceptsLargeDogs  bool
	AcceptsAggressive bool
	ServiceRadiusKm   float64
}

// RegisterResult represents a successful registration
type RegisterResult struct {
	User      *model.User
	TokenPair *TokenPair
}

// RegisterOwner creates an owner account. The user and its owner profile are
// written in one transaction; a failure on either side leaves nothing behind.
func (s *AuthService) RegisterOwner(ctx context.Context, req RegisterOwnerRequest) (*RegisterResult, error) {
	user, err := s.prepareAccount(ctx, req.Email, req.Username, req.Password, model.UserRoleOwner)
	if err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	city := strings.TrimSpace(req.City)
	if city == "" {
		return nil, ErrCityRequired
	}

	profile := &model.OwnerProfile{
		Phone:        phone,
		Country:      strings.TrimSpace(req.Country),
		City:         city,
		AddressLine1: strings.TrimSpace(req.AddressLine1),
		AddressLine2: strings.TrimSpace(req.AddressLine2),
		PostalCode:   strings.TrimSpace(req.PostalCode),
	}

	if err := s.userRepo.CreateOwnerAccount(ctx, user, profile); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{User: user, TokenPair: tokenPair}, nil
}

// RegisterCaregiver creates a caregiver account with its listing profile.
func (s *AuthService) RegisterCaregiver(ctx context.Context, req RegisterCaregiverRequest) (*RegisterResult, error) {
	user, err := s.prepareAccount(ctx, req.Email, req.Username, req.Password, model.UserRoleCaregiver)
	if err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	city := strings.TrimSpace(req.City)
	if city == "" {
		return nil, ErrCityRequired
	}
	if len(req.Bio) > model.MaxBioLength {
		return nil, ErrBioTooLong
	}
	if req.HourlyRateCents <= 0 {
		return nil, ErrInvalidHourlyRate
	}
	if req.ServiceRadiusKm < 0 {
		return nil, ErrInvalidServiceRadius
	}

	maxPets := req.MaxPets
	if maxPets == 0 {
		maxPets = model.DefaultMaxPets
	}
	if maxPets < 1 {
		return nil, ErrInvalidMaxPets
	}

	profile := &model.CaregiverProfile{
		Phone:             phone,
		City:              city,
		Bio:               req.Bio,
		YearsExperience:   req.YearsExperience,
		HourlyRateCents:   req.HourlyRateCents,
		MaxPets:           maxPets,
		AcceptsLargeDogs:  req.AcceptsLargeDogs,
		AcceptsAggressive: req.AcceptsAggressive,
		ServiceRadiusKm:   req.ServiceRadiusKm,
	}

	if err := s.userRepo.CreateCaregiverAccount(ctx, user, profile); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{User: user, TokenPair: tokenPair}, nil
}

// prepareAccount validates credentials and checks uniqueness, returning an
// unsaved user carrying the password hash.
func (s *AuthService) prepareAccount(ctx context.Context, email, username, password string, role model.UserRole) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	existing, err = s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameAlreadyExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &model.User{
		Email:    email,
		Username: username,
		Hash:     &hash,
		Role:     role,
		Active:   true,
	}, nil
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult represents a successful login
type LoginResult struct {
	User      *model.User
	TokenPair *TokenPair
}

// Login authenticates a user with email/password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if user.Hash == nil || *user.Hash == "" {
		return nil, ErrInvalidCredentials
	}

	if !checkPassword(req.Password, *user.Hash) {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	// Login timestamp is advisory; a write failure must not block the login
	_ = s.userRepo.RecordLogin(ctx, user.ID)

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, TokenPair: tokenPair}, nil
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Me returns the account together with whichever marketplace profile it
// carries. Admin accounts have no profile.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.Me, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	me := &model.Me{User: user}

	switch user.Role {
	case model.UserRoleOwner:
		profile, err := s.profileRepo.GetOwnerProfileByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		me.OwnerProfile = profile
	case model.UserRoleCaregiver:
		profile, err := s.profileRepo.GetCaregiverProfileByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		me.CaregiverProfile = profile
	}

	return me, nil
}

// RefreshTokens validates a refresh token and issues new tokens
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	// Get stored token to find user ID
	tokenHash := hashToken(refreshToken)
	storedToken, err := s.tokenService.tokenRepo.GetRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if storedToken == nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, storedToken.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active {
		return nil, ErrAccountDisabled
	}

	// Refresh tokens (handles validation and rotation)
	return s.tokenService.RefreshTokens(ctx, refreshToken, user)
}

// Logout revokes the user's refresh tokens
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.tokenService.RevokeAllUserTokens(ctx, userID)
}

// ValidateAccessToken validates an access token and returns the claims
func (s *AuthService) ValidateAccessToken(token string) (*model.TokenClaims, error) {
	claims, err := s.tokenService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	return &model.TokenClaims{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// ChangePassword changes a user's password
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.Hash == nil || !checkPassword(oldPassword, *user.Hash) {
		return ErrInvalidCredentials
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	// Update password and revoke all tokens (force re-login)
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	return s.tokenService.RevokeAllUserTokens(ctx, userID)
}

// Helper functions

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func isValidEmail(email string) bool {
	// Basic email validation
	if email == "" {
		return false
	}
	if len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}
