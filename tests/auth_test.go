package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/repository"
	"github.com/pawmarket/api/internal/service"
	"github.com/pawmarket/api/internal/testing/fixtures"
	"github.com/pawmarket/api/internal/testing/helpers"
	"github.com/pawmarket/api/internal/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
FEATURE: Authentication
DOMAIN: Auth

ACCEPTANCE CRITERIA:
===================

AC-AUTH-001: Register Owner
  GIVEN valid credentials and contact details
  WHEN an owner registers
  THEN a user with the owner role is created with hashed password
  AND an owner profile is attached
  AND access token + refresh token returned

AC-AUTH-002: Registration Validation
  GIVEN an invalid email, username, or password
  WHEN a user registers
  THEN the request fails with the matching validation error

AC-AUTH-003: Register Duplicate Identity
  GIVEN an existing user with email X or username Y
  WHEN a new user registers with the same value
  THEN the request fails with an already-exists error

AC-AUTH-004: Register Caregiver
  GIVEN valid credentials and listing details
  WHEN a caregiver registers
  THEN a user with the caregiver role is created
  AND a caregiver profile is attached with defaults applied

AC-AUTH-005: Login with Valid Credentials
  GIVEN a registered user with email/password
  WHEN the user logs in with correct credentials
  THEN access token + refresh token returned
  AND tokens are valid for authentication

AC-AUTH-006: Login Rejections
  GIVEN a registered user
  WHEN the user logs in with a wrong password or a disabled account
  THEN the request fails with the matching error

AC-AUTH-007: Refresh Token Rotation
  GIVEN a valid refresh token
  WHEN the user requests token refresh
  THEN a new token pair is returned
  AND the old refresh token is invalidated (rotation)

AC-AUTH-008: Refresh Replay Detection
  GIVEN a refresh token that was already rotated
  WHEN it is presented again
  THEN the request fails
  AND the whole token family is revoked

AC-AUTH-009: Logout Revokes Tokens
  GIVEN an authenticated user
  WHEN the user logs out
  THEN refresh tokens are invalidated
  AND subsequent refresh requests fail

AC-AUTH-010: Change Password
  GIVEN an authenticated user
  WHEN the user changes their password with the correct old password
  THEN the new password works for login
  AND every refresh token is revoked

AC-AUTH-011: Me
  GIVEN an authenticated user
  WHEN the user fetches their own account
  THEN the account and its role profile are returned
*/

// createAuthService creates an AuthService instance for testing
func createAuthService(t *testing.T, tdb *testdb.TestDB) *service.AuthService {
	t.Helper()

	userRepo := repository.NewUserRepository(tdb.DB)
	profileRepo := repository.NewProfileRepository(tdb.DB)
	tokenRepo := repository.NewTokenRepository(tdb.DB)

	jwtService := helpers.NewTestJWTService(t)

	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService:      jwtService,
		TokenRepo:       tokenRepo,
		RefreshDuration: 24 * time.Hour,
	})

	return service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		ProfileRepo:  profileRepo,
		TokenService: tokenService,
	})
}

func ownerRegistration(email, username string) service.RegisterOwnerRequest {
	return service.RegisterOwnerRequest{
		Email:        email,
		Username:     username,
		Password:     "password123",
		Phone:        "+15550100",
		Country:      "US",
		City:         "Portland",
		AddressLine1: "1 Test Way",
		PostalCode:   "97201",
	}
}

func TestAuth_RegisterOwner(t *testing.T) {
	// AC-AUTH-001: Register Owner
	tdb := testdb.New(t)
	defer tdb.Close()

	authService := createAuthService(t, tdb)
	ctx := context.Background()

	result, err := authService.RegisterOwner(ctx, ownerRegistration("newowner@test.local", "newowner"))

	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, result.User)
	require.NotNil(t, result.TokenPair)

	// Verify user was created
	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, "newowner@test.local", result.User.Email)
	assert.Equal(t, model.UserRoleOwner, result.User.Role)
	assert.True(t, result.User.Active)

	// Verify tokens were generated
	assert.NotEmpty(t, result.TokenPair.AccessToken)
	assert.NotEmpty(t, result.TokenPair.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenPair.TokenType)

	// Verify user can authenticate
	claims, err := authService.ValidateAccessToken(result.TokenPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "owner", claims.Role)

	// The owner profile was written alongside the account
	me, err := authService.Me(ctx, result.User.ID)
	require.NoError(t, err)
	require.NotNil(t, me.OwnerProfile)
	assert.Equal(t, "Portland", me.OwnerProfile.City)
}

func TestAuth_RegisterEmailNormalization(t *testing.T) {
	// AC-AUTH-001 (normalization): Emails are stored trimmed and lowercased
	tdb := testdb.New(t)
	defer tdb.Close()

	authService := createAuthService(t, tdb)
	ctx := context.Background()

	result, err := authService.RegisterOwner(ctx, ownerRegistration("  MiXeD@Test.Local ", "mixedcase"))
	require.NoError(t, err)
	assert.Equal(t, "mixed@test.local", result.User.Email)

	// Login works with any casing
	login, err := authService.Login(ctx, service.LoginRequest{
		Email:    "MIXED@TEST.LOCAL",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestAuth_RegisterValidation(t *testing.T) {
	// AC-AUTH-002: Registration Validation
	tdb := testdb.New(t)
	defer tdb.Close()

	authService := createAuthService(t, tdb)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "invalid email",
			email:    "not-an-email",
			username: "validname",
			password: "password123",
			wantErr:  service.ErrInvalidEmail,
		},
		{
			name:     "username too short",
			email:    "short@test.local",
			username: "ab",
			password: "password123",
			wantErr:  service.ErrInvalidUsername,
		},
		{
			name:     "username with invalid chars",
			email:    "chars@test.local",
			username: "bad name!",
			password: "password123",
			wantErr:  service.ErrInvalidUsername,
		},
		{
			name:     "empty password",
			email:    "empty@test.local",
			username: "emptypass",
			password: "",
			wantErr:  service.ErrPasswordRequired,
		},
		{
			name:     "too short password",
			email:    "tooshort@test.local",
			username: "shortpass",
			password: "1234567",
			wantErr:  service.ErrPasswordTooShort,
		},
		{
			name:     "exactly 8 chars is valid",
			email:    "exact@test.local",
			username: "exactpass",
			password: "12345678",
			wantErr:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ownerRegistration(tt.email, tt.username)
			req.Password = tt.password
			_, err := authService.RegisterOwner(ctx, req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	// AC-AUTH-003: Register Duplicate Identity
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	authService := createAuthService(t, tdb)
	ctx := context.Background()

	existing := f.CreateUser(t, func(o *fixtures.UserOpts) {
		o.Email = "existing@test.local"
	})
	require.NotEmpty(t, existing.ID)

	_, err := authService.RegisterOwner(ctx, ownerRegistration("existing@test.local", "someoneelse"))
	require.ErrorIs(t, err, service.ErrEmailAlreadyExists)
}

func TestAuth_RegisterDuplicateUsername(t *testing.T) {
	// AC-AUTH-003: Register Duplicate Identity
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	authService := createAuthService(t, tdb)
	ctx := context.Background()

	f.CreateUser(t, func(o *fixtures.UserOpts) {
		o.Username = "takenname"
	})

	_, err := authService.RegisterOwner(ctx, ownerRegistration("fresh@test.local", "takenname"))
	require.ErrorIs(t, err, service.ErrUsernameAlreadyExists)
}

func TestAuth_RegisterCaregiver(t *testing.T) {
	// AC-AUTH-004: Register Caregiver
	tdb := testdb.New(t)
	defer tdb.Close()

	authService := createAuthService(t, tdb)
	ctx := context.Background()

	result, err := authService.RegisterCaregiver(ctx, service.RegisterCaregiverRequest{
		Email:            "walker@test.local",
		Username:         "walker",
		Password:         "password123",
		Phone:            "+15550200",
		City:             "Portland",
		Bio:              "Long walks, rain or shine.",
		YearsExperience:  4,
		HourlyRateCents:  2200,
		AcceptsLargeDogs: true,
		ServiceRadiusKm:  12,
	})

	require.NoError(t, err)
	assert.Equal(t, model.UserRoleCaregiver, result.User.Role)
	assert.NotEmpty(t, result.TokenPair.AccessToken)

	me, err := authService.Me(ctx, result.User.ID)
	require.NoError(t, err)
	require.NotNil(t, me.CaregiverProfile)
	assert.Equal(t, int64(2200), me.CaregiverProfile.HourlyRateCents)
	assert.True(t, me.CaregiverProfile.AcceptsLargeDogs)
	// MaxPets was omitted, so the default applies
	assert.Equal(t, model.DefaultMaxPets, me.CaregiverProfile.MaxPets)
	// New caregivers start unverified with no rating
	assert.False(t, me.CaregiverProfile.Verified)
	assert.Equal(t, 0, me.CaregiverProfile.RatingCount)
}

func TestAuth_RegisterCaregiverValidation(t *testing.T) {
	// AC-AUTH-004 (validation): Listing fields are checked
	tdb := testdb.New(t)
	defer tdb.Close()

	authService := createAuthService(t, tdb)
	ctx := context.Background()

	valid := func(i int) service.RegisterCaregiverRequest {
		return service.RegisterCaregiverRequest{
			Email:           fmt.Sprintf("cgval_%d@test.local", i),
			Username:        fmt.Sprintf("cgval_%d", i),
			Password:        "password123",
			Phone:           "+15550200",
			City:            "Portland",
			HourlyRateCents: 2000,
		}
	}

	req := valid(1)
	req.Phone = "  "
	_, err := authService.RegisterCaregiver(ctx, req)
	require.ErrorIs(t, err, service.ErrPhoneRequired)

	req = valid(2)
	req.City = ""
	_, err = authService.RegisterCaregiver(ctx, req)
	require.ErrorIs(t, err, service.ErrCityRequired)

	req = valid(3)
	req.HourlyRateCents = 0
	_, err = authService.RegisterCaregiver(ctx, req)
	require.ErrorIs(t, err, service.ErrInvalidHourlyRate)

	req = valid(4)
	req.ServiceRadiusKm = -1
	_, err = authService.RegisterCaregiver(ctx, req)
	require.ErrorIs(t, err, service.ErrInvalidServiceRadius)
}

func TestAuth_LoginWithValidCredentials(t *testing.T) {
	// AC-AUTH-005: Login with Valid Credentials
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	authService := createAuthService(t, tdb)
	ctx := context.Background()

	user := f.CreateUser(t, func(o *fixtures.UserOpts) {
		o.Email = "login@test.local"
		o.Password = "correcthorse"
	})

	result, err := authService.Login(ctx, service.LoginRequest{
		Email:    "login@test.local",
		Password: "correcthorse",
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.TokenPair.AccessToken)
	assert.NotEmpty(t, result.TokenPair.RefreshToken)

	claims, err := authService.ValidateAccessToken(result.TokenPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuth_LoginWithInvalidCredentials(t *testing.T) {
	// AC-AUTH-006: Login Rejections
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	authService := createAuthService(t, tdb)
	ctx := context.Background()

	f.CreateUser(t, func(o *fixtures.UserOpts) {
		o.Email = "victim@test.local"
		o.Password = "correcthorse"
	})

	// Wrong password
	_, err := authService.Login(ctx, service.LoginRequest{
		Email:    "victim@test.local",
		Password: "wrongpassword",
	})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	// Unknown email looks the same as a wrong password
	_, err = authService.Login(ctx, service.LoginRequest{
		Email:    "nobody@test.local",
		Password: "correcthorse",
	})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuth_LoginDisabledAccount(t *testing.T) {
	// AC-AUTH-006: Login Rejections
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	authService := createAuthService(t, tdb)
	ctx := context.Background()

	f.CreateUser(t, func(o *fixtures.UserOpts) {
		o.Email = "disabled@test.local"
		o.Password = "correcthorse"
		o.Active = false
	})

	_, err := authService.Login(ctx, service.LoginRequest{
		Email:    "disabled@test.local",
		Password: "correcthorse",
	})
	require.ErrorIs(t, err, service.ErrAccountDisabled)
}

func TestAuth_RefreshTokenRotation(t *testing.T) {
	// AC-AUTH-007: Refresh Token Rotation
	tdb := testdb.New(t)
	defer tdb.Close()

	authService := createAuthService(t, tdb)
	ctx := context.Background()

	result, err := authService.RegisterOwner(ctx, ownerRegistration("rotate@test.local", "rotate"))
	require.NoError(t, err)

	// Refresh returns a new pair
	pair2, err := authService.RefreshTokens(ctx, result.TokenPair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair2.AccessToken)
	assert.NotEqual(t, result.TokenPair.RefreshToken, pair2.RefreshToken)

	// The new refresh token keeps working
	pair3, err := authService.RefreshTokens(ctx, pair2.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair3.RefreshToken)
}

func TestAuth_RefreshWithInvalidToken(t *testing.T) {
	// AC-AUTH-007 (negative): Unknown tokens are rejected
	tdb := testdb.New(t)
	defer tdb.Close()

	authService := createAuthService(t, tdb)
	ctx := context.Background()

	_, err := authService.RefreshTokens(ctx, "not-a-real-token")
	require.ErrorIs(t, err, service.ErrInvalidRefreshToken)
}

func TestAuth_RefreshReplayRevokesFamily(t *testing.T) {
	// AC-AUTH-008: Refresh Replay Detection
	tdb := testdb.New(t)
	defer tdb.Close()

	authService := createAuthService(t, tdb)
	ctx := context.Background()

	result, err := authService.RegisterOwner(ctx, ownerRegistration("replay@test.local", "replay"))
	require.NoError(t, err)
	first := result.TokenPair.RefreshToken

	pair2, err := authService.RefreshTokens(ctx, first)
	require.NoError(t, err)

	// Replaying the rotated token fails and burns the family
	_, err = authService.RefreshTokens(ctx, first)
	require.ErrorIs(t, err, service.ErrRefreshTokenRevoked)

	// The descendant token died with the family
	_, err = authService.RefreshTokens(ctx, pair2.RefreshToken)
	require.ErrorIs(t, err, service.ErrRefreshTokenRevoked)
}

func TestAuth_LogoutRevokesTokens(t *testing.T) {
	// AC-AUTH-009: Logout Revokes Tokens
	tdb := testdb.New(t)
	defer tdb.Close()

	authService := createAuthService(t, tdb)
	ctx := context.Background()

	result, err := authService.RegisterOwner(ctx, ownerRegistration("logout@test.local", "logout"))
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, result.User.ID))

	_, err = authService.RefreshTokens(ctx, result.TokenPair.RefreshToken)
	require.ErrorIs(t, err, service.ErrRefreshTokenRevoked)
}

func TestAuth_ChangePassword(t *testing.T) {
	// AC-AUTH-010: Change Password
	tdb := testdb.New(t)
	defer tdb.Close()

	authService := createAuthService(t, tdb)
	ctx := context.Background()

	result, err := authService.RegisterOwner(ctx, ownerRegistration("chpass@test.local", "chpass"))
	require.NoError(t, err)
	userID := result.User.ID

	// Wrong old password
	err = authService.ChangePassword(ctx, userID, "wrongoldpass", "newpassword456")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	// New password must still satisfy the policy
	err = authService.ChangePassword(ctx, userID, "password123", "short")
	require.ErrorIs(t, err, service.ErrPasswordTooShort)

	// Successful change
	err = authService.ChangePassword(ctx, userID, "password123", "newpassword456")
	require.NoError(t, err)

	// Old password no longer works
	_, err = authService.Login(ctx, service.LoginRequest{
		Email:    "chpass@test.local",
		Password: "password123",
	})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	// New password does
	_, err = authService.Login(ctx, service.LoginRequest{
		Email:    "chpass@test.local",
		Password: "newpassword456",
	})
	require.NoError(t, err)

	// Every refresh token issued before the change is revoked
	_, err = authService.RefreshTokens(ctx, result.TokenPair.RefreshToken)
	require.ErrorIs(t, err, service.ErrRefreshTokenRevoked)
}

func TestAuth_Me(t *testing.T) {
	// AC-AUTH-011: Me
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	authService := createAuthService(t, tdb)
	ctx := context.Background()

	owner, ownerProfile := f.CreateOwner(t)
	me, err := authService.Me(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, me.User.ID)
	require.NotNil(t, me.OwnerProfile)
	assert.Equal(t, ownerProfile.ID, me.OwnerProfile.ID)
	assert.Nil(t, me.CaregiverProfile)

	caregiver, caregiverProfile := f.CreateCaregiver(t)
	me, err = authService.Me(ctx, caregiver.ID)
	require.NoError(t, err)
	require.NotNil(t, me.CaregiverProfile)
	assert.Equal(t, caregiverProfile.ID, me.CaregiverProfile.ID)
	assert.Nil(t, me.OwnerProfile)

	// Admin accounts carry no marketplace profile
	admin := f.CreateAdmin(t)
	me, err = authService.Me(ctx, admin.ID)
	require.NoError(t, err)
	assert.Nil(t, me.OwnerProfile)
	assert.Nil(t, me.CaregiverProfile)

	_, err = authService.Me(ctx, "user:doesnotexist")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}
