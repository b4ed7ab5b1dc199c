package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of roles a user can hold. Roles are mutually
// exclusive; an admin is not implicitly a compliance officer.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleCompliance Role = "compliance_officer"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleCompliance:
		return true
	}
	return false
}

// User represents the users table. Email is the unique, case-insensitive
// login identifier; the plaintext password is never stored.
type User struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	Email          string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FirstName      string         `gorm:"size:100;not null" json:"first_name"`
	LastName       string         `gorm:"size:100;not null" json:"last_name"`
	HashedPassword string         `gorm:"size:255;not null" json:"-"`
	Role           Role           `gorm:"size:32;default:'user';not null" json:"role"`
	IsActive       bool           `gorm:"default:true;not null" json:"is_active"`
	IsVerified     bool           `gorm:"default:false;not null" json:"is_verified"`
	DateOfBirth    *time.Time     `json:"date_of_birth,omitempty"`
	PhoneNumber    string         `gorm:"size:50" json:"phone_number,omitempty"`
	AddressLine1   string         `gorm:"size:255" json:"address_line1,omitempty"`
	AddressLine2   string         `gorm:"size:255" json:"address_line2,omitempty"`
	City           string         `gorm:"size:100" json:"city,omitempty"`
	StateProvince  string         `gorm:"size:100" json:"state_province,omitempty"`
	PostalCode     string         `gorm:"size:20" json:"postal_code,omitempty"`
	Country        string         `gorm:"size:2" json:"country,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an opaque unique identifier.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// FullName returns the display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// FullAddress returns the formatted address, or empty when no primary line
// is set.
func (u *User) FullAddress() string {
	if u.AddressLine1 == "" {
		return ""
	}

	parts := []string{u.AddressLine1}
	for _, p := range []string{u.AddressLine2, u.City, u.StateProvince, u.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if u.Country != "" {
		parts = append(parts, strings.ToUpper(u.Country))
	}

	return strings.Join(parts, ", ")
}

// UserResponse DTO
type UserResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	FullName      string     `json:"full_name"`
	Role          Role       `json:"role"`
	IsActive      bool       `json:"is_active"`
	IsVerified    bool       `json:"is_verified"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	AddressLine1  string     `json:"address_line1,omitempty"`
	AddressLine2  string     `json:"address_line2,omitempty"`
	City          string     `json:"city,omitempty"`
	StateProvince string     `json:"state_province,omitempty"`
	PostalCode    string     `json:"postal_code,omitempty"`
	Country       string     `json:"country,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.FullName(),
		Role:          u.Role,
		IsActive:      u.IsActive,
		IsVerified:    u.IsVerified,
		DateOfBirth:   u.DateOfBirth,
		PhoneNumber:   u.PhoneNumber,
		AddressLine1:  u.AddressLine1,
		AddressLine2:  u.AddressLine2,
		City:          u.City,
		StateProvince: u.StateProvince,
		PostalCode:    u.PostalCode,
		Country:       u.Country,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// AutoMigrate creates or updates the schema for all identity tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}
