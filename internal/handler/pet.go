package handler

import (
	"net/http"

	"github.com/pawmarket/api/internal/middleware"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// PetHandler handles pet endpoints. All operations are scoped to the
// authenticated owner; other users' pets read as not found.
type PetHandler struct {
	petService *service.PetService
}

// NewPetHandler creates a new pet handler
func NewPetHandler(petService *service.PetService) *PetHandler {
	return &PetHandler{
		petService: petService,
	}
}

// Create handles POST /api/v1/pets - register a pet
func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreatePetRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	pet, err := h.petService.Create(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, pet, map[string]string{
		"self": "/api/v1/pets/" + pet.ID,
	})
}

// List handles GET /api/v1/pets - list own pets
func (h *PetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	pets, err := h.petService.List(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, pets, nil, map[string]string{
		"self": "/api/v1/pets",
	})
}

// Get handles GET /api/v1/pets/{petId}
func (h *PetHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	petID := r.PathValue("petId")
	if petID == "" {
		WriteError(w, model.NewBadRequestError("pet ID required"))
		return
	}

	pet, err := h.petService.Get(r.Context(), userID, petID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, pet, map[string]string{
		"self": "/api/v1/pets/" + petID,
	})
}

// Update handles PATCH /api/v1/pets/{petId}
func (h *PetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	petID := r.PathValue("petId")
	if petID == "" {
		WriteError(w, model.NewBadRequestError("pet ID required"))
		return
	}

	var req model.UpdatePetRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	pet, err := h.petService.Update(r.Context(), userID, petID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, pet, map[string]string{
		"self": "/api/v1/pets/" + petID,
	})
}

// Delete handles DELETE /api/v1/pets/{petId}
func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	petID := r.PathValue("petId")
	if petID == "" {
		WriteError(w, model.NewBadRequestError("pet ID required"))
		return
	}

	if err := h.petService.Delete(r.Context(), userID, petID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
