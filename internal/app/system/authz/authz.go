// internal/app/system/authz/authz.go
package authz

import (
	"strings"

	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/domain/models"
)

// Role is one of the flat capability tags a user can hold. Roles are an
// exact-containment set, never a hierarchy: holding ADMIN does not satisfy
// a ROOT requirement, and holding ROOT does not satisfy an ADMIN one.
// Call sites name the exact role they need.
type Role string

const (
	RoleUser  Role = "USER"  // cannot manage movies or users
	RoleAdmin Role = "ADMIN" // manages movies, users and groups in its realm
	RoleRoot  Role = "ROOT"  // manages realms, backup and restore
)

// ParseRoles splits the comma-joined tag set stored on a user.
// Blank tags are dropped; tags are uppercased.
func ParseRoles(s string) []Role {
	parts := strings.Split(s, ",")
	roles := make([]Role, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		roles = append(roles, Role(p))
	}
	return roles
}

// JoinRoles renders a role set back to the stored comma-joined form.
func JoinRoles(roles ...Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}

// HasRole reports whether the user's role set contains exactly role.
func HasRole(u *models.User, role Role) bool {
	for _, r := range ParseRoles(u.Roles) {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin is a convenience wrapper for the most common check.
func IsAdmin(u *models.User) bool { return HasRole(u, RoleAdmin) }

// IsRoot reports whether the user holds the ROOT role.
func IsRoot(u *models.User) bool { return HasRole(u, RoleRoot) }

// RequireRole fails with an authorization error unless the user's role set
// contains exactly the named role.
func RequireRole(u *models.User, role Role) error {
	if !HasRole(u, role) {
		return apierr.New(apierr.Authorization, "need role %s to do this", role)
	}
	return nil
}
