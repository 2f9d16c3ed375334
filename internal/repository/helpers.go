package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// newRecordSuffix mints a random record ID suffix for records whose ID must
// be known before the creating transaction commits.
func newRecordSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// isUniqueConstraintError reports whether err is SurrealDB rejecting a write
// that would violate a unique index, such as a second account on one email.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unique") ||
		strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "already exists")
}

// parseTime normalizes the shapes SurrealDB hands back for datetime fields.
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	case string:
		for _, layout := range []string{time.RFC3339, time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// extractQueryResults unwraps the rows from a SurrealDB query response,
// which arrives either as [{"result": [...]}] or as a bare array.
func extractQueryResults(result interface{}) ([]interface{}, bool) {
	rows, ok := result.([]interface{})
	if !ok || len(rows) == 0 {
		return nil, false
	}
	if envelope, ok := rows[0].(map[string]interface{}); ok {
		if inner, ok := envelope["result"].([]interface{}); ok {
			return inner, true
		}
	}
	return rows, true
}

// extractCount pulls the value of a `count()` projection out of a query
// response, tolerating both the enveloped and the flattened shape.
func extractCount(result interface{}) int {
	resp, ok := result.(map[string]interface{})
	if !ok {
		return 0
	}
	if status, ok := resp["status"].(string); ok && status == "OK" {
		if rows, ok := resp["result"].([]interface{}); ok && len(rows) > 0 {
			if row, ok := rows[0].(map[string]interface{}); ok {
				return asInt(row["count"])
			}
		}
	}
	return asInt(resp["count"])
}

// asInt converts the numeric types CBOR decoding may produce.
func asInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case float32:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	}
	return 0
}

// Field accessors for rows decoded as map[string]interface{}. Each returns
// the zero value (or nil for pointer forms) when the key is absent or the
// wrong type.

func getString(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func getStringPtr(m map[string]interface{}, key string) *string {
	if s, ok := m[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

func getInt(m map[string]interface{}, key string) int {
	return asInt(m[key])
}

func getFloat(m map[string]interface{}, key string) float64 {
	switch n := m[key].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	}
	return 0
}

func getBool(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func getTime(m map[string]interface{}, key string) *time.Time {
	v, ok := m[key]
	if !ok {
		return nil
	}
	if t := parseTime(v); !t.IsZero() {
		return &t
	}
	return nil
}
