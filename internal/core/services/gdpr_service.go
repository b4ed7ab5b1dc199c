package services

import (
	"context"
	"errors"
	"log"
	"time"

	"kyc-identity/internal/adapters/persistence/models"
	"kyc-identity/internal/adapters/persistence/repositories"
	"kyc-identity/internal/core/domain"

	"gorm.io/gorm"
)

// GDPRService implements the data-subject rights operations: export of all
// stored personal data and erasure on request.
type GDPRService struct {
	userRepo repositories.UserRepository
}

// NewGDPRService creates a new GDPR service.
func NewGDPRService(userRepo repositories.UserRepository) *GDPRService {
	return &GDPRService{userRepo: userRepo}
}

// ExportAddress groups the address attributes in the export document.
type ExportAddress struct {
	Line1         string `json:"line1,omitempty"`
	Line2         string `json:"line2,omitempty"`
	City          string `json:"city,omitempty"`
	StateProvince string `json:"state_province,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Country       string `json:"country,omitempty"`
}

// UserDataExport is the complete personal data record handed to the data
// subject.
type UserDataExport struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	DateOfBirth *time.Time    `json:"date_of_birth,omitempty"`
	PhoneNumber string        `json:"phone_number,omitempty"`
	Address     ExportAddress `json:"address"`
	Role        models.Role   `json:"role"`
	IsActive    bool          `json:"is_active"`
	IsVerified  bool          `json:"is_verified"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ExportedAt  time.Time     `json:"exported_at"`
}

// ExportUserData collects everything stored about the user.
func (s *GDPRService) ExportUserData(ctx context.Context, userID string) (*UserDataExport, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	log.Printf("📦 GDPR data export for user: %s", user.ID)

	return &UserDataExport{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DateOfBirth: user.DateOfBirth,
		PhoneNumber: user.PhoneNumber,
		Address: ExportAddress{
			Line1:         user.AddressLine1,
			Line2:         user.AddressLine2,
			City:          user.City,
			StateProvince: user.StateProvince,
			PostalCode:    user.PostalCode,
			Country:       user.Country,
		},
		Role:       user.Role,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
		ExportedAt: time.Now().UTC(),
	}, nil
}

// EraseUserData anonymizes the user's personal attributes, disables the
// account and soft-deletes the record. The row is hard-purged later by the
// retention sweep.
func (s *GDPRService) EraseUserData(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	// Anonymized placeholder keeps the email column unique.
	user.Email = "erased+" + user.ID + "@anonymized.invalid"
	user.FirstName = "Erased"
	user.LastName = "User"
	user.DateOfBirth = nil
	user.PhoneNumber = ""
	user.AddressLine1 = ""
	user.AddressLine2 = ""
	user.City = ""
	user.StateProvince = ""
	user.PostalCode = ""
	user.Country = ""
	user.IsActive = false

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}

	log.Printf("🗑️ GDPR erasure completed for user: %s", user.ID)
	return nil
}
