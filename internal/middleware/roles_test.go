package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/pkg/jwt"
)

// ============================================================================
// Test Helpers
// ============================================================================

func requestWithRole(role model.UserRole) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	ctx := context.WithValue(req.Context(), UserIDKey, "user:test")
	ctx = context.WithValue(ctx, UserRoleKey, string(role))
	ctx = context.WithValue(ctx, ClaimsKey, &jwt.Claims{
		UserID: "user:test",
		Role:   string(role),
	})
	return req.WithContext(ctx)
}

// ============================================================================
// RequireRole() Tests
// ============================================================================

func TestRequireRole_MatchingRole_CallsNext(t *testing.T) {
	t.Parallel()
	handler := &recordingHandler{}

	req := requestWithRole(model.UserRoleCaregiver)
	rr := httptest.NewRecorder()

	RequireRole(model.UserRoleCaregiver)(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !handler.called {
		t.Error("handler should have been called")
	}
}

func TestRequireRole_WrongRole_ReturnsForbidden(t *testing.T) {
	t.Parallel()
	handler := &recordingHandler{}

	req := requestWithRole(model.UserRoleOwner)
	rr := httptest.NewRecorder()

	RequireRole(model.UserRoleCaregiver)(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
	if handler.called {
		t.Error("handler should not have been called")
	}
}

func TestRequireRole_AdminBypassesRoleCheck(t *testing.T) {
	t.Parallel()
	handler := &recordingHandler{}

	req := requestWithRole(model.UserRoleAdmin)
	rr := httptest.NewRecorder()

	RequireRole(model.UserRoleOwner)(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !handler.called {
		t.Error("admin should pass any role gate")
	}
}

func TestRequireRole_MultipleRoles_AnyMatches(t *testing.T) {
	t.Parallel()
	gate := RequireRole(model.UserRoleOwner, model.UserRoleCaregiver)

	for _, role := range []model.UserRole{model.UserRoleOwner, model.UserRoleCaregiver} {
		handler := &recordingHandler{}
		rr := httptest.NewRecorder()

		gate(handler).ServeHTTP(rr, requestWithRole(role))

		if rr.Code != http.StatusOK {
			t.Errorf("%s: expected status %d, got %d", role, http.StatusOK, rr.Code)
		}
	}
}

func TestRequireRole_NoRoleInContext_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()
	handler := &recordingHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rr := httptest.NewRecorder()

	RequireRole(model.UserRoleOwner)(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if handler.called {
		t.Error("handler should not have been called")
	}
}

// ============================================================================
// RequireAdmin() Tests
// ============================================================================

func TestRequireAdmin_Admin_CallsNext(t *testing.T) {
	t.Parallel()
	handler := &recordingHandler{}

	req := requestWithRole(model.UserRoleAdmin)
	rr := httptest.NewRecorder()

	RequireAdmin()(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !handler.called {
		t.Error("handler should have been called")
	}
}

func TestRequireAdmin_NonAdmin_ReturnsForbidden(t *testing.T) {
	t.Parallel()

	for _, role := range []model.UserRole{model.UserRoleOwner, model.UserRoleCaregiver} {
		handler := &recordingHandler{}
		rr := httptest.NewRecorder()

		RequireAdmin()(handler).ServeHTTP(rr, requestWithRole(role))

		if rr.Code != http.StatusForbidden {
			t.Errorf("%s: expected status %d, got %d", role, http.StatusForbidden, rr.Code)
		}
		if handler.called {
			t.Errorf("%s: handler should not have been called", role)
		}
	}
}

func TestRequireAdmin_NoClaims_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()
	handler := &recordingHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rr := httptest.NewRecorder()

	RequireAdmin()(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

// ============================================================================
// GetUserRole Tests
// ============================================================================

func TestGetUserRole_Present_ReturnsValue(t *testing.T) {
	t.Parallel()
	ctx := context.WithValue(context.Background(), UserRoleKey, "caregiver")

	if got := GetUserRole(ctx); got != "caregiver" {
		t.Errorf("expected caregiver, got %q", got)
	}
}

func TestGetUserRole_Missing_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	if got := GetUserRole(context.Background()); got != "" {
		t.Errorf("expected empty role, got %q", got)
	}
}
