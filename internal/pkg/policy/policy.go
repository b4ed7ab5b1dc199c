// Package policy holds the pure RBAC decision functions. Administrators
// override every single-role check through one rule applied here, never
// special-cased per endpoint.
package policy

import "kyc-identity/internal/adapters/persistence/models"

// IsAdmin reports whether actor holds the administrator role.
func IsAdmin(actor *models.User) bool {
	return actor != nil && actor.Role == models.RoleAdmin
}

// IsCompliance reports whether actor holds the compliance officer role.
// Admins are not implicitly compliance officers.
func IsCompliance(actor *models.User) bool {
	return actor != nil && actor.Role == models.RoleCompliance
}

// CanAccessOwnOrAdmin allows access to a user record when actor owns it or
// is an administrator.
func CanAccessOwnOrAdmin(actor *models.User, targetID string) bool {
	if actor == nil {
		return false
	}
	return actor.ID == targetID || IsAdmin(actor)
}

// RequireRole allows actors holding role; administrators pass every
// single-role check.
func RequireRole(actor *models.User, role models.Role) bool {
	if actor == nil {
		return false
	}
	return actor.Role == role || IsAdmin(actor)
}

// RequireOneOf allows actors holding any of roles; administrators always
// pass.
func RequireOneOf(actor *models.User, roles ...models.Role) bool {
	if actor == nil {
		return false
	}
	if IsAdmin(actor) {
		return true
	}
	for _, role := range roles {
		if actor.Role == role {
			return true
		}
	}
	return false
}
