package handler

import "net/http"

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "pawmarket-api",
	}, nil)
}
