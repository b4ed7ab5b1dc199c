package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kyc-identity/internal/adapters/persistence/models"
	"kyc-identity/internal/adapters/persistence/repositories"
	"kyc-identity/internal/core/domain"

	"gorm.io/gorm"
)

// UserService handles profile and administrative user management.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsersInput represents list users input.
type ListUsersInput struct {
	Page     int
	Limit    int
	Role     *models.Role
	IsActive *bool
}

// ListUsersOutput represents list users output.
type ListUsersOutput struct {
	Users      []*models.UserResponse `json:"users"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// UpdateProfileInput represents profile fields a user may change on their
// own record. Nil fields are left untouched.
type UpdateProfileInput struct {
	FirstName     *string    `json:"first_name"`
	LastName      *string    `json:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	PhoneNumber   *string    `json:"phone_number"`
	AddressLine1  *string    `json:"address_line1"`
	AddressLine2  *string    `json:"address_line2"`
	City          *string    `json:"city"`
	StateProvince *string    `json:"state_province"`
	PostalCode    *string    `json:"postal_code"`
	Country       *string    `json:"country"`
}

// UpdateUserByAdminInput adds the security-relevant fields only admins may
// change.
type UpdateUserByAdminInput struct {
	UpdateProfileInput
	Email      *string      `json:"email"`
	Role       *models.Role `json:"role"`
	IsActive   *bool        `json:"is_active"`
	IsVerified *bool        `json:"is_verified"`
}

// ListUsers lists users with pagination and optional role/status filters.
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit
	filter := repositories.ListUsersFilter{Role: input.Role, IsActive: input.IsActive}

	users, total, err := s.userRepo.List(ctx, offset, input.Limit, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListUsersOutput{
		Users:      responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetUserByID gets a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// GetProfile gets the caller's own profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.UserResponse, error) {
	return s.GetUserByID(ctx, userID)
}

// UpdateProfile updates the caller's own profile attributes. Profile fields
// are not security-relevant; email, role and status changes go through the
// admin path.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	applyProfileUpdate(user, input)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// UpdateUserByAdmin updates any user's record, including email, role and
// status.
func (s *UserService) UpdateUserByAdmin(ctx context.Context, id string, input *UpdateUserByAdminInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrDuplicateEmail
			}
			user.Email = email
		}
	}

	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, fmt.Errorf("%w: invalid role %q", domain.ErrValidation, *input.Role)
		}
		user.Role = *input.Role
	}

	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsVerified != nil {
		user.IsVerified = *input.IsVerified
	}

	applyProfileUpdate(user, &input.UpdateProfileInput)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

func applyProfileUpdate(user *models.User, input *UpdateProfileInput) {
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.AddressLine1 != nil {
		user.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		user.AddressLine2 = *input.AddressLine2
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.StateProvince != nil {
		user.StateProvince = *input.StateProvince
	}
	if input.PostalCode != nil {
		user.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		user.Country = *input.Country
	}
}
