package models

import "testing"

func TestRoleValid(t *testing.T) {
	valid := []Role{RoleUser, RoleAdmin, RoleCompliance}
	for _, r := range valid {
		if !r.Valid() {
			t.Errorf("Role(%q).Valid() = false, want true", r)
		}
	}

	invalid := []Role{"", "superuser", "ADMIN", "User"}
	for _, r := range invalid {
		if r.Valid() {
			t.Errorf("Role(%q).Valid() = true, want false", r)
		}
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Jane", "Doe", "Jane Doe"},
		{"Jane", "", "Jane"},
		{"", "Doe", "Doe"},
		{"", "", ""},
	}

	for _, tt := range tests {
		u := &User{FirstName: tt.first, LastName: tt.last}
		if got := u.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestFullAddress(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		u := &User{
			AddressLine1:  "1 Main St",
			AddressLine2:  "Apt 4",
			City:          "Berlin",
			StateProvince: "BE",
			PostalCode:    "10115",
			Country:       "de",
		}
		want := "1 Main St, Apt 4, Berlin, BE, 10115, DE"
		if got := u.FullAddress(); got != want {
			t.Errorf("FullAddress = %q, want %q", got, want)
		}
	})

	t.Run("sparse", func(t *testing.T) {
		u := &User{AddressLine1: "1 Main St", City: "Berlin"}
		if got := u.FullAddress(); got != "1 Main St, Berlin" {
			t.Errorf("FullAddress = %q", got)
		}
	})

	t.Run("no primary line", func(t *testing.T) {
		u := &User{City: "Berlin", Country: "de"}
		if got := u.FullAddress(); got != "" {
			t.Errorf("FullAddress = %q, want empty", got)
		}
	})
}

func TestToResponseOmitsCredentials(t *testing.T) {
	u := &User{
		ID:             "u1",
		Email:          "jane@example.com",
		FirstName:      "Jane",
		LastName:       "Doe",
		HashedPassword: "$2a$12$secret",
		Role:           RoleUser,
		IsActive:       true,
	}

	resp := u.ToResponse()
	if resp.ID != "u1" || resp.Email != "jane@example.com" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.FullName != "Jane Doe" {
		t.Errorf("fullName = %q", resp.FullName)
	}
}
