package service

import (
	"context"

	"github.com/pawmarket/api/internal/model"
)

// AdminUserRepository defines the user repo interface needed by AdminUsersService
type AdminUserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, role model.UserRole, search string, limit, offset int) ([]*model.User, error)
	Count(ctx context.Context, role model.UserRole) (int, error)
	SetActive(ctx context.Context, userID string, active bool) error
	SetRole(ctx context.Context, userID string, role model.UserRole) error
}

// AdminUsersService handles admin user management operations
type AdminUsersService struct {
	userRepo AdminUserRepository
}

// NewAdminUsersService creates a new admin users service
func NewAdminUsersService(userRepo AdminUserRepository) *AdminUsersService {
	return &AdminUsersService{
		userRepo: userRepo,
	}
}

// ListUsersRequest defines the request for listing users
type ListUsersRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ListUsersResponse contains the paginated user list
type ListUsersResponse struct {
	Users    []*model.User `json:"users"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// AdminUpdateUserRequest patches a user's account. Nil fields are untouched.
type AdminUpdateUserRequest struct {
	Active *bool   `json:"active,omitempty"`
	Role   *string `json:"role,omitempty"`
}

// ListUsers returns a paginated list of users with search and role filter
func (s *AdminUsersService) ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	role := model.UserRole(req.Role)
	if req.Role != "" && !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	users, err := s.userRepo.List(ctx, role, req.Search, req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx, role)
	if err != nil {
		return nil, err
	}

	return &ListUsersResponse{
		Users:    users,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// GetUser returns a single account for the admin panel
func (s *AdminUsersService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateUser patches a user's active flag and/or role. Admins cannot touch
// their own account through this path so they cannot lock themselves out.
func (s *AdminUsersService) UpdateUser(ctx context.Context, adminUserID, targetUserID string, req AdminUpdateUserRequest) (*model.User, error) {
	if adminUserID == targetUserID {
		return nil, ErrCannotEditSelf
	}

	user, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Role != nil {
		role := model.UserRole(*req.Role)
		if !model.ValidRole(role) {
			return nil, ErrInvalidRole
		}
		if role != user.Role {
			if err := s.userRepo.SetRole(ctx, targetUserID, role); err != nil {
				return nil, err
			}
			user.Role = role
		}
	}

	if req.Active != nil && *req.Active != user.Active {
		if err := s.userRepo.SetActive(ctx, targetUserID, *req.Active); err != nil {
			return nil, err
		}
		user.Active = *req.Active
	}

	return user, nil
}
