package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// GetDefaultRoles returns the roles given to a newly registered user
func GetDefaultRoles() Roles {
	return Roles{RoleUser}
}

func GetAllRoles() []string {
	return []string{
		RoleUser,
		RoleAdmin,
	}
}
