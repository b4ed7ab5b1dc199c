package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"kyc-identity/internal/adapters/persistence/models"
	"kyc-identity/internal/adapters/persistence/repositories"
	"kyc-identity/internal/core/domain"
	"kyc-identity/internal/pkg/password"
	"kyc-identity/internal/pkg/token"

	"gorm.io/gorm"
)

// AuthService orchestrates the credential hasher, the token codec and the
// user repository to implement the authentication flows. It holds no
// mutable state of its own and is safe for concurrent use.
type AuthService struct {
	userRepo repositories.UserRepository
	codec    *token.Codec
	hasher   *password.Hasher
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repositories.UserRepository,
	codec *token.Codec,
	hasher *password.Hasher,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		codec:    codec,
		hasher:   hasher,
	}
}

// RegisterInput represents registration input.
type RegisterInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// LoginInput represents login input.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the authenticated user and a fresh token pair.
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Register creates a new identity with the standard user role and returns a
// fresh token pair for it.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	email := NormalizeEmail(input.Email)

	if input.Password != input.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}
	if !password.ValidateStrength(input.Password) {
		return nil, fmt.Errorf("%w: password must be at least %d characters with one uppercase letter, one lowercase letter and one digit",
			domain.ErrValidation, password.MinLength)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          email,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		HashedPassword: hashed,
		Role:           models.RoleUser,
		IsActive:       true,
		IsVerified:     false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost the uniqueness race against a concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	pair, err := s.codec.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the identical error so the caller cannot probe for
// registered addresses.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(input.Password, user.HashedPassword) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	pair, err := s.codec.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a brand-new pair (rotation).
// Missing and inactive subjects collapse into the same invalid-token error
// as verification failures.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	subject, err := s.codec.SubjectOf(refreshToken, token.ClassRefresh)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, subject)
	if err != nil || !user.IsActive {
		return nil, fmt.Errorf("%w: user not found or inactive", domain.ErrInvalidToken)
	}

	pair, err := s.codec.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// ChangePassword replaces the stored hash after verifying the current
// password. Existing tokens stay valid until they expire naturally.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if !s.hasher.Verify(currentPassword, user.HashedPassword) {
		return domain.ErrInvalidCredentials
	}

	if !password.ValidateStrength(newPassword) {
		return fmt.Errorf("%w: new password must be at least %d characters with one uppercase letter, one lowercase letter and one digit",
			domain.ErrValidation, password.MinLength)
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.HashedPassword = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password changed for user: %s", user.Email)
	return nil
}

// Activate re-enables a deactivated account. Idempotent.
func (s *AuthService) Activate(ctx context.Context, userID string) (*models.UserResponse, error) {
	return s.setActive(ctx, userID, true)
}

// Deactivate disables an account, blocking login and refresh. Idempotent.
func (s *AuthService) Deactivate(ctx context.Context, userID string) (*models.UserResponse, error) {
	return s.setActive(ctx, userID, false)
}

// VerifyEmail marks the user's email as verified. Informational only; it
// does not gate authentication.
func (s *AuthService) VerifyEmail(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if !user.IsVerified {
		user.IsVerified = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return user.ToResponse(), nil
}

// ValidateAccessToken resolves an access token to the live user record it
// authenticates. Any failure, including a missing or inactive subject, is
// reported as an invalid token.
func (s *AuthService) ValidateAccessToken(ctx context.Context, accessToken string) (*models.User, error) {
	subject, err := s.codec.SubjectOf(accessToken, token.ClassAccess)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, subject)
	if err != nil || !user.IsActive {
		return nil, domain.ErrInvalidToken
	}

	return user, nil
}

func (s *AuthService) setActive(ctx context.Context, userID string, active bool) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if user.IsActive != active {
		user.IsActive = active
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return user.ToResponse(), nil
}

// NormalizeEmail lowercases and trims an email so lookups and the
// uniqueness invariant are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
