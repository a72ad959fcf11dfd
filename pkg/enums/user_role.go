package enums

import "fmt"

// UserRole identifies which side of the marketplace an actor belongs to.
type UserRole string

const (
	UserRoleClient     UserRole = "client"
	UserRolePartner    UserRole = "partner"
	UserRoleSpecialist UserRole = "specialist"
	UserRoleAdmin      UserRole = "admin"
)

var validUserRoles = []UserRole{
	UserRoleClient,
	UserRolePartner,
	UserRoleSpecialist,
	UserRoleAdmin,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
