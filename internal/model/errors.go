package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode is a stable machine-readable identifier carried alongside the
// HTTP status, grouped by thousand into failure families.
type ErrorCode int

const (
	// Authentication errors (1xxx)
	ErrCodeUnauthorized ErrorCode = 1001
	ErrCodeTokenExpired ErrorCode = 1002
	ErrCodeTokenInvalid ErrorCode = 1003
	ErrCodeLoginFailed  ErrorCode = 1004

	// Authorization errors (2xxx)
	ErrCodeForbidden ErrorCode = 2001
	ErrCodeWrongRole ErrorCode = 2002

	// Resource errors (3xxx)
	ErrCodeNotFound      ErrorCode = 3001
	ErrCodeAlreadyExists ErrorCode = 3002
	ErrCodeConflict      ErrorCode = 3003

	// Validation errors (4xxx)
	ErrCodeValidation    ErrorCode = 4001
	ErrCodeInvalidInput  ErrorCode = 4002
	ErrCodeLimitExceeded ErrorCode = 4003

	// Internal errors (5xxx)
	ErrCodeInternal    ErrorCode = 5001
	ErrCodeDatabase    ErrorCode = 5002
	ErrCodeExternalAPI ErrorCode = 5003
)

// problemTypeBase prefixes the type URI of every problem response.
const problemTypeBase = "https://api.pawmarket.dev/errors/"

// ProblemDetails represents RFC 9457 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	// Extension fields
	Code    ErrorCode `json:"code,omitempty"`
	Limit   *int      `json:"limit,omitempty"`
	Current *int      `json:"current,omitempty"`
}

// FieldError names one field that failed validation and why.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lets a ProblemDetails travel through error returns.
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON writes the problem details as JSON response
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func newProblem(slug, title string, status int, detail string, code ErrorCode) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + slug,
		Title:  title,
		Status: status,
		Detail: detail,
		Code:   code,
	}
}

// Constructors for the problem responses the API hands out.

func NewUnauthorizedError(detail string) *ProblemDetails {
	return newProblem("unauthorized", "Unauthorized", http.StatusUnauthorized, detail, ErrCodeUnauthorized)
}

func NewForbiddenError(detail string) *ProblemDetails {
	return newProblem("forbidden", "Forbidden", http.StatusForbidden, detail, ErrCodeForbidden)
}

func NewNotFoundError(resource string) *ProblemDetails {
	return newProblem("not-found", "Not Found", http.StatusNotFound,
		fmt.Sprintf("%s not found", resource), ErrCodeNotFound)
}

func NewConflictError(detail string) *ProblemDetails {
	return newProblem("conflict", "Conflict", http.StatusConflict, detail, ErrCodeConflict)
}

func NewBadRequestError(detail string) *ProblemDetails {
	return newProblem("bad-request", "Bad Request", http.StatusBadRequest, detail, ErrCodeInvalidInput)
}

func NewInternalError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return newProblem("internal", "Internal Server Error", http.StatusInternalServerError, detail, ErrCodeInternal)
}

// NewValidationError summarizes the first field failure in the detail and
// carries the full list in the errors extension.
func NewValidationError(errors []FieldError) *ProblemDetails {
	detail := "One or more fields failed validation"
	if len(errors) > 0 {
		detail = fmt.Sprintf("%s: %s", errors[0].Field, errors[0].Message)
		if len(errors) > 1 {
			detail = fmt.Sprintf("%s (and %d more errors)", detail, len(errors)-1)
		}
	}

	p := newProblem("validation", "Validation Error", http.StatusUnprocessableEntity, detail, ErrCodeValidation)
	p.Errors = errors
	return p
}

// NewLimitExceededError reports a per-account cap being hit, such as the
// maximum number of pets. The limit and current extensions let clients
// show how far over the caller is.
func NewLimitExceededError(resource string, limit, current int) *ProblemDetails {
	p := newProblem("limit-exceeded", "Limit Exceeded", http.StatusUnprocessableEntity,
		fmt.Sprintf("Maximum of %d %s reached", limit, resource), ErrCodeLimitExceeded)
	p.Limit = &limit
	p.Current = &current
	return p
}

func NewMethodNotAllowedError(allowed string) *ProblemDetails {
	return newProblem("method-not-allowed", "Method Not Allowed", http.StatusMethodNotAllowed,
		fmt.Sprintf("Only %s method is allowed", allowed), 0)
}

func NewRateLimitError(retryAfter int) *ProblemDetails {
	return newProblem("rate-limited", "Too Many Requests", http.StatusTooManyRequests,
		fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter), 0)
}
