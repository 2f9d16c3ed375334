package helpers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/pkg/jwt"
)

// JWTHelper issues signed tokens for tests using a throwaway in-memory key.
type JWTHelper struct {
	t   *testing.T
	svc *jwt.Service
}

// NewJWTHelper generates a fresh RSA key and wraps a token service around it.
func NewJWTHelper(t *testing.T) *JWTHelper {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating RSA key: %v", err)
	}

	return &JWTHelper{
		t:   t,
		svc: jwt.NewTestService(key, "pawmarket-test", time.Hour),
	}
}

// GenerateToken signs an access token carrying the user's identity claims.
func (h *JWTHelper) GenerateToken(user *model.User) string {
	h.t.Helper()

	token, err := h.svc.Sign(jwt.Claims{
		Subject:  user.ID,
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		h.t.Fatalf("signing token: %v", err)
	}
	return token
}

// NewTestJWTService creates a JWT service with in-memory keys for tests that
// wire the real auth stack.
func NewTestJWTService(t *testing.T) *jwt.Service {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating RSA key: %v", err)
	}

	return jwt.NewTestService(key, "pawmarket-test", 15*time.Minute)
}

// AssertRecordExists fails the test unless the record is present.
func AssertRecordExists(t *testing.T, db database.Database, table, id string) {
	t.Helper()

	if !recordExists(t, db, table, id) {
		t.Errorf("expected record %s to exist", qualifiedID(table, id))
	}
}

// AssertRecordNotExists fails the test if the record is present.
func AssertRecordNotExists(t *testing.T, db database.Database, table, id string) {
	t.Helper()

	if recordExists(t, db, table, id) {
		t.Errorf("expected record %s to be absent", qualifiedID(table, id))
	}
}

func recordExists(t *testing.T, db database.Database, table, id string) bool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Accept both bare IDs and full table:id forms.
	if _, rest, ok := strings.Cut(id, ":"); ok {
		id = rest
	}

	results, err := db.Query(ctx, "SELECT * FROM type::record($table, $id)", map[string]interface{}{
		"table": table,
		"id":    id,
	})
	if err != nil {
		return false
	}
	return hasRows(results)
}

func qualifiedID(table, id string) string {
	if strings.Contains(id, ":") {
		return id
	}
	return table + ":" + id
}

// hasRows reports whether a SurrealDB query response carried any rows.
func hasRows(results []interface{}) bool {
	if len(results) == 0 {
		return false
	}
	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return false
	}
	switch rows := resp["result"].(type) {
	case nil:
		return false
	case []interface{}:
		return len(rows) > 0
	default:
		return true
	}
}

// Pointer helpers for optional request fields.

func StringPtr(s string) *string { return &s }

func IntPtr(i int) *int { return &i }

func BoolPtr(b bool) *bool { return &b }
