package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pawmarket/api/internal/model"
)

// DataResponse is the envelope for single-resource responses. Links carry
// HATEOAS-style references (self, related bookings, and so on).
type DataResponse struct {
	Data  interface{}       `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// CollectionResponse is the envelope for list responses
type CollectionResponse struct {
	Data       interface{}       `json:"data"`
	Pagination *PaginationInfo   `json:"pagination,omitempty"`
	Links      map[string]string `json:"_links,omitempty"`
}

// PaginationInfo carries the cursor for the next page, if any
type PaginationInfo struct {
	Cursor  string `json:"cursor,omitempty"`
	HasMore bool   `json:"has_more"`
}

// WriteJSON writes data as a JSON body under the given status. A nil data
// leaves the body empty.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a single resource inside the data envelope
func WriteData(w http.ResponseWriter, status int, data interface{}, links map[string]string) {
	WriteJSON(w, status, DataResponse{Data: data, Links: links})
}

// WriteCollection writes a list inside the collection envelope
func WriteCollection(w http.ResponseWriter, status int, data interface{}, pagination *PaginationInfo, links map[string]string) {
	WriteJSON(w, status, CollectionResponse{Data: data, Pagination: pagination, Links: links})
}

// WriteError writes an RFC 9457 problem response. Delegates to the
// ProblemDetails writer so handlers and middleware produce identical
// error shapes, including the problem+json content type.
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// WriteNoContent answers 204 for deletes and other bodyless successes.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSON decodes a request body, rejecting fields the target struct
// does not declare so typos surface as errors instead of silent drops
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
