package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kyc-identity/internal/adapters/persistence/models"
	"kyc-identity/internal/adapters/persistence/repositories"
	"kyc-identity/internal/core/domain"
)

func TestExportUserData(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	svc := NewGDPRService(repo)
	ctx := context.Background()

	dob := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)
	u := &models.User{
		Email:          "subject@example.com",
		FirstName:      "Data",
		LastName:       "Subject",
		HashedPassword: "irrelevant",
		Role:           models.RoleUser,
		IsActive:       true,
		DateOfBirth:    &dob,
		PhoneNumber:    "+4915112345678",
		AddressLine1:   "1 Main St",
		City:           "Berlin",
		Country:        "de",
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatal(err)
	}

	export, err := svc.ExportUserData(ctx, u.ID)
	if err != nil {
		t.Fatalf("ExportUserData returned error: %v", err)
	}
	if export.Email != "subject@example.com" || export.FirstName != "Data" {
		t.Errorf("unexpected identity fields: %+v", export)
	}
	if export.DateOfBirth == nil || !export.DateOfBirth.Equal(dob) {
		t.Errorf("dateOfBirth = %v, want %v", export.DateOfBirth, dob)
	}
	if export.Address.Line1 != "1 Main St" || export.Address.City != "Berlin" {
		t.Errorf("unexpected address: %+v", export.Address)
	}
	if export.ExportedAt.IsZero() {
		t.Error("exportedAt not set")
	}

	if _, err := svc.ExportUserData(ctx, "no-such-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown user: err = %v, want ErrNotFound", err)
	}
}

func TestEraseUserData(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	svc := NewGDPRService(repo)
	ctx := context.Background()

	u := seedUser(t, repo, "erase-me@example.com", models.RoleUser)
	u.PhoneNumber = "+4915112345678"
	u.AddressLine1 = "1 Main St"
	if err := repo.Update(ctx, u); err != nil {
		t.Fatal(err)
	}

	if err := svc.EraseUserData(ctx, u.ID); err != nil {
		t.Fatalf("EraseUserData returned error: %v", err)
	}

	// The record is soft-deleted and no longer resolvable.
	if _, err := repo.GetByID(ctx, u.ID); err == nil {
		t.Error("erased user still resolvable by ID")
	}
	if _, err := repo.GetByEmail(ctx, "erase-me@example.com"); err == nil {
		t.Error("erased user still resolvable by original email")
	}

	// Erasure is not idempotent past the soft delete.
	if err := svc.EraseUserData(ctx, u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second erase: err = %v, want ErrNotFound", err)
	}

	if err := svc.EraseUserData(ctx, "no-such-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown user: err = %v, want ErrNotFound", err)
	}
}

func TestEraseFreesEmailForReRegistration(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	gdpr := NewGDPRService(repo)
	ctx := context.Background()

	u := seedUser(t, repo, "comeback@example.com", models.RoleUser)
	if err := gdpr.EraseUserData(ctx, u.ID); err != nil {
		t.Fatal(err)
	}

	// The anonymized placeholder keeps uniqueness without squatting on the
	// original address.
	replacement := &models.User{
		Email:          "comeback@example.com",
		FirstName:      "Re",
		LastName:       "Registered",
		HashedPassword: "irrelevant",
		Role:           models.RoleUser,
		IsActive:       true,
	}
	if err := repo.Create(ctx, replacement); err != nil {
		t.Fatalf("re-registration with erased email failed: %v", err)
	}
	if strings.HasPrefix(replacement.Email, "erased+") {
		t.Error("replacement account got the placeholder address")
	}
}
