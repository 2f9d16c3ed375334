package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pawmarket/api/pkg/jwt"
)

// stubValidator drives Auth/OptionalAuth without a real signer
type stubValidator struct {
	claims *jwt.Claims
	err    error
}

func (s *stubValidator) ValidateAccessToken(token string) (*jwt.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func ownerValidator() *stubValidator {
	return &stubValidator{claims: &jwt.Claims{
		UserID:   "user:owner1",
		Email:    "owner@pawmarket.dev",
		Username: "dogmom42",
		Role:     "owner",
	}}
}

func rejectingValidator(err error) *stubValidator {
	return &stubValidator{err: err}
}

// recordingHandler remembers whether it ran and with what context
type recordingHandler struct {
	called bool
	ctx    context.Context
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func bookingsRequest(authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func TestAuth_RejectsBadHeaders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic c29tZXRva2Vu"},
		{"bearer without token", "Bearer"},
		{"bearer glued to token", "Bearertoken"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			next := &recordingHandler{}
			rr := httptest.NewRecorder()

			Auth(ownerValidator())(next).ServeHTTP(rr, bookingsRequest(tc.header))

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("expected %d, got %d", http.StatusUnauthorized, rr.Code)
			}
			if next.called {
				t.Error("handler ran despite rejected credentials")
			}
		})
	}
}

func TestAuth_RejectsInvalidTokens(t *testing.T) {
	t.Parallel()

	// Expired, forged and malformed tokens all collapse to 401; the body
	// detail differs but the handler never runs.
	for _, tokenErr := range []error{jwt.ErrTokenExpired, jwt.ErrInvalidSignature, jwt.ErrInvalidToken} {
		next := &recordingHandler{}
		rr := httptest.NewRecorder()

		Auth(rejectingValidator(tokenErr))(next).ServeHTTP(rr, bookingsRequest("Bearer whatever"))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%v: expected %d, got %d", tokenErr, http.StatusUnauthorized, rr.Code)
		}
		if next.called {
			t.Errorf("%v: handler ran despite invalid token", tokenErr)
		}
	}
}

func TestAuth_ValidToken_PopulatesRequestContext(t *testing.T) {
	t.Parallel()
	next := &recordingHandler{}
	rr := httptest.NewRecorder()

	Auth(ownerValidator())(next).ServeHTTP(rr, bookingsRequest("Bearer good"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rr.Code)
	}
	if !next.called {
		t.Fatal("handler did not run")
	}
	if got := GetUserID(next.ctx); got != "user:owner1" {
		t.Errorf("user id: expected user:owner1, got %q", got)
	}
	if got := GetUserEmail(next.ctx); got != "owner@pawmarket.dev" {
		t.Errorf("email: expected owner@pawmarket.dev, got %q", got)
	}
	if got := GetUserRole(next.ctx); got != "owner" {
		t.Errorf("role: expected owner, got %q", got)
	}
	claims := GetClaims(next.ctx)
	if claims == nil {
		t.Fatal("expected claims in context")
	}
	if claims.Username != "dogmom42" {
		t.Errorf("username: expected dogmom42, got %q", claims.Username)
	}
}

func TestAuth_BearerSchemeIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	next := &recordingHandler{}
	rr := httptest.NewRecorder()

	Auth(ownerValidator())(next).ServeHTTP(rr, bookingsRequest("bearer good"))

	if rr.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, rr.Code)
	}
	if !next.called {
		t.Error("handler did not run")
	}
}

func TestAuth_CaregiverRoleFlowsThrough(t *testing.T) {
	t.Parallel()
	validator := &stubValidator{claims: &jwt.Claims{
		UserID: "user:walker7",
		Email:  "walker@pawmarket.dev",
		Role:   "caregiver",
	}}
	next := &recordingHandler{}
	rr := httptest.NewRecorder()

	Auth(validator)(next).ServeHTTP(rr, bookingsRequest("Bearer good"))

	if got := GetUserRole(next.ctx); got != "caregiver" {
		t.Errorf("role: expected caregiver, got %q", got)
	}
}

func TestOptionalAuth_ProceedsAnonymously(t *testing.T) {
	t.Parallel()

	// The public caregiver directory uses OptionalAuth: absent, malformed
	// or invalid credentials all degrade to an anonymous request.
	cases := []struct {
		name      string
		validator *stubValidator
		header    string
	}{
		{"no header", ownerValidator(), ""},
		{"wrong scheme", ownerValidator(), "Basic c29tZXRva2Vu"},
		{"expired token", rejectingValidator(jwt.ErrTokenExpired), "Bearer stale"},
		{"garbage token", rejectingValidator(jwt.ErrInvalidToken), "Bearer junk"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			next := &recordingHandler{}
			rr := httptest.NewRecorder()

			OptionalAuth(tc.validator)(next).ServeHTTP(rr, bookingsRequest(tc.header))

			if rr.Code != http.StatusOK {
				t.Errorf("expected %d, got %d", http.StatusOK, rr.Code)
			}
			if !next.called {
				t.Error("handler did not run")
			}
			if got := GetUserID(next.ctx); got != "" {
				t.Errorf("expected anonymous context, got user %q", got)
			}
		})
	}
}

func TestOptionalAuth_ValidToken_IdentifiesUser(t *testing.T) {
	t.Parallel()
	next := &recordingHandler{}
	rr := httptest.NewRecorder()

	OptionalAuth(ownerValidator())(next).ServeHTTP(rr, bookingsRequest("Bearer good"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rr.Code)
	}
	if got := GetUserID(next.ctx); got != "user:owner1" {
		t.Errorf("expected user:owner1, got %q", got)
	}
	if got := GetUserRole(next.ctx); got != "owner" {
		t.Errorf("expected owner role, got %q", got)
	}
}

func TestContextAccessors_ZeroValues(t *testing.T) {
	t.Parallel()

	// Accessors tolerate missing and mistyped values rather than panicking
	empty := context.Background()
	if GetUserID(empty) != "" || GetUserEmail(empty) != "" || GetUserRole(empty) != "" {
		t.Error("expected empty strings from an unauthenticated context")
	}
	if GetClaims(empty) != nil {
		t.Error("expected nil claims from an unauthenticated context")
	}

	mistyped := context.WithValue(context.Background(), UserIDKey, 12345)
	mistyped = context.WithValue(mistyped, ClaimsKey, "not claims")
	if GetUserID(mistyped) != "" {
		t.Error("expected empty string for a mistyped user id")
	}
	if GetClaims(mistyped) != nil {
		t.Error("expected nil for mistyped claims")
	}
}

func TestContextAccessors_RoundTrip(t *testing.T) {
	t.Parallel()

	claims := &jwt.Claims{UserID: "user:owner1", Email: "owner@pawmarket.dev", Role: "owner"}
	ctx := context.WithValue(context.Background(), UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
	ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
	ctx = context.WithValue(ctx, ClaimsKey, claims)

	if got := GetUserID(ctx); got != "user:owner1" {
		t.Errorf("user id: got %q", got)
	}
	if got := GetUserEmail(ctx); got != "owner@pawmarket.dev" {
		t.Errorf("email: got %q", got)
	}
	if got := GetUserRole(ctx); got != "owner" {
		t.Errorf("role: got %q", got)
	}
	if got := GetClaims(ctx); got == nil || got.UserID != claims.UserID {
		t.Errorf("claims: got %+v", got)
	}
}
