package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pawmarket/api/internal/middleware"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// AdminUsersHandler handles admin user management endpoints
type AdminUsersHandler struct {
	usersService *service.AdminUsersService
}

// NewAdminUsersHandler creates a new admin users handler
func NewAdminUsersHandler(usersService *service.AdminUsersService) *AdminUsersHandler {
	return &AdminUsersHandler{usersService: usersService}
}

// ListUsers handles GET /api/v1/admin/users
//
// Query parameters: page, page_size, search, role.
func (h *AdminUsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	req := service.ListUsersRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   q.Get("search"),
		Role:     q.Get("role"),
	}

	result, err := h.usersService.ListUsers(r.Context(), req)
	if err != nil {
		h.handleAdminUserError(w, err)
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"self": "/api/v1/admin/users",
	})
}

// GetUser handles GET /api/v1/admin/users/{userId}
func (h *AdminUsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	user, err := h.usersService.GetUser(r.Context(), userID)
	if err != nil {
		h.handleAdminUserError(w, err)
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self": "/api/v1/admin/users/" + userID,
	})
}

// UpdateUser handles PATCH /api/v1/admin/users/{userId} - toggle active
// and/or change role
func (h *AdminUsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetUserID(r.Context())
	if adminID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	var req service.AdminUpdateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if req.Active == nil && req.Role == nil {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "active", Message: "at least one of active, role must be set"},
		}))
		return
	}

	user, err := h.usersService.UpdateUser(r.Context(), adminID, userID, req)
	if err != nil {
		h.handleAdminUserError(w, err)
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self": "/api/v1/admin/users/" + userID,
	})
}

func (h *AdminUsersHandler) handleAdminUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		WriteError(w, model.NewNotFoundError("user"))
	case errors.Is(err, service.ErrInvalidRole):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "role", Message: "role must be owner, caregiver or admin"},
		}))
	case errors.Is(err, service.ErrCannotEditSelf):
		WriteError(w, model.NewForbiddenError("cannot change your own account"))
	default:
		WriteError(w, model.NewInternalError("user management failed"))
	}
}
