package models

// Available roles
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleEditor    = "editor"
)

// GetDefaultRoles returns the default roles for a new user
func GetDefaultRoles() Roles {
	return Roles{RoleUser}
}

// GetAllRoles returns every available role
func GetAllRoles() []string {
	return []string{
		RoleUser,
		RoleAdmin,
		RoleModerator,
		RoleEditor,
	}
}
