package config

import (
	"log"

	"kyc-identity/internal/adapters/persistence/models"
	"kyc-identity/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder bootstraps the first administrator account.
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance.
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run seeds an admin account when none exists and bootstrap credentials
// are configured. Registration always produces standard users, so without
// this there is no way to mint the first admin.
func (s *Seeder) Run() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if s.cfg.Security.AdminEmail == "" || s.cfg.Security.AdminPassword == "" {
		log.Println("⚠️ Skipping admin seed: BOOTSTRAP_ADMIN_EMAIL/PASSWORD not set")
		return nil
	}

	hasher := password.NewHasher(s.cfg.Security.BcryptCost)
	hashed, err := hasher.Hash(s.cfg.Security.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:          s.cfg.Security.AdminEmail,
		FirstName:      "System",
		LastName:       "Administrator",
		HashedPassword: hashed,
		Role:           models.RoleAdmin,
		IsActive:       true,
		IsVerified:     true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}
