package models

// Role describes a platform role shown on the roles screen.
type Role struct {
	ID          string
	Name        string
	Description string
	UserCount   int
}

// Permission is a grantable capability grouped by category.
type Permission struct {
	ID       string
	Name     string
	Category string
}

// Roles is the static role catalog. Role management is display-only in
// the admin dashboard; the backend owns assignment.
var Roles = []Role{
	{ID: "admin", Name: "Administrator", Description: "Full system access and management capabilities", UserCount: 3},
	{ID: "moderator", Name: "Moderator", Description: "Can moderate content and manage users", UserCount: 8},
	{ID: "premium", Name: "Premium User", Description: "Enhanced features and priority support", UserCount: 245},
	{ID: "user", Name: "Basic User", Description: "Standard platform access", UserCount: 15164},
}

// Permissions is the static permission catalog.
var Permissions = []Permission{
	{ID: "user_management", Name: "User Management", Category: "Users"},
	{ID: "content_moderation", Name: "Content Moderation", Category: "Content"},
	{ID: "analytics_view", Name: "View Analytics", Category: "Analytics"},
	{ID: "system_settings", Name: "System Settings", Category: "System"},
	{ID: "feedback_management", Name: "Feedback Management", Category: "Support"},
	{ID: "token_management", Name: "Token Management", Category: "System"},
	{ID: "session_monitoring", Name: "Session Monitoring", Category: "Monitoring"},
	{ID: "role_management", Name: "Role Management", Category: "Users"},
}

// RolePermissions maps a role ID to the permission IDs it holds. The
// admin role always holds every permission.
var RolePermissions = map[string][]string{
	"admin":     {"user_management", "content_moderation", "analytics_view", "system_settings", "feedback_management", "token_management", "session_monitoring", "role_management"},
	"moderator": {"user_management", "content_moderation", "feedback_management", "session_monitoring"},
	"premium":   {"analytics_view"},
	"user":      {},
}

// HasPermission reports whether the role holds the permission.
func HasPermission(roleID, permissionID string) bool {
	for _, p := range RolePermissions[roleID] {
		if p == permissionID {
			return true
		}
	}
	return false
}
