package admin

import "github.com/persona/persona-api/internal/domain/user"

// Permission represents an admin capability
type Permission string

const (
	PermUserManagement    Permission = "USER_MANAGEMENT"
	PermContentModeration Permission = "CONTENT_MODERATION"
	PermSystemSettings    Permission = "SYSTEM_SETTINGS"
)

// AllPermissions lists every permission the system defines
var AllPermissions = []Permission{PermUserManagement, PermContentModeration, PermSystemSettings}

// RolePermissions maps roles to their permissions.
// Each grant is listed explicitly; there is no inheritance between roles.
var RolePermissions = map[user.Role][]Permission{
	user.RoleAdmin: {
		PermUserManagement,
		PermContentModeration,
		PermSystemSettings,
	},
	user.RoleModerator: {
		PermContentModeration,
	},
}

// HasPermission reports whether role is granted perm
func HasPermission(role user.Role, perm Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// IsStaff reports whether role may enter the admin area at all
func IsStaff(role user.Role) bool {
	return role == user.RoleAdmin || role == user.RoleModerator
}

// PermissionsFor returns the permissions granted to role as strings
func PermissionsFor(role user.Role) []string {
	perms := RolePermissions[role]
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}
