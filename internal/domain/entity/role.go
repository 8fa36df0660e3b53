// Package entity contains the core business objects of the project.
package entity

// Role represents the type of account a user holds in the system.
// Roles are mutually exclusive and immutable after account creation.
type Role string

const (
	// RoleTalent indicates a job seeker account.
	RoleTalent Role = "talent"
	// RoleEmployer indicates a company/recruiter account.
	RoleEmployer Role = "employer"
	// RoleModerator indicates a staff account with no public profile.
	RoleModerator Role = "moderator"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleTalent, RoleEmployer, RoleModerator:
		return true
	default:
		return false
	}
}

// RoleFromString converts a string to a Role, reporting whether it is valid.
func RoleFromString(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
