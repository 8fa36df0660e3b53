// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrRoleProfileMismatch is returned when a user's role does not agree with
// the profiles attached to the account. A talent must carry exactly one talent
// profile, an employer exactly one employer profile, a moderator neither.
var ErrRoleProfileMismatch = errors.New("role does not match attached profiles")

// User is the core entity in the system, representing one account.
// It carries the credential state (password hash, verification) shared across all roles.
type User struct {
	ID              uuid.UUID        // The unique identifier for the user.
	Email           string           // Login identifier, unique with case-insensitive comparison.
	Name            string           // The user's display name or company contact name.
	PasswordHash    string           // bcrypt hash of the password. Never the plaintext.
	Role            Role             // Immutable after creation.
	Active          bool             // Deactivated accounts cannot authenticate.
	EmailVerified   bool             // Login is gated on verification.
	SecurityToken   *SecurityToken   // At most one outstanding verify/reset action. Nil when none pending.
	TalentProfile   *TalentProfile   // Present iff Role == RoleTalent.
	EmployerProfile *EmployerProfile // Present iff Role == RoleEmployer.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TalentProfile holds data specific to job seeker accounts.
type TalentProfile struct {
	UserID    uuid.UUID // Foreign Key that links this profile to a core User entity.
	Headline  string    // Short professional headline shown on applications.
	ResumeURL string    // Location of the uploaded resume, managed by an external storage service.
	UpdatedAt time.Time
}

// EmployerProfile holds data specific to company accounts.
type EmployerProfile struct {
	UserID      uuid.UUID // Foreign Key that links this profile to a core User entity.
	CompanyName string    // The employer's registered company name.
	Website     string
	About       string
	UpdatedAt   time.Time
}

// NewUser builds a user with the profile its role requires attached.
// This is the only way new accounts come into existence, so the
// role/profile pairing cannot be wrong at creation time.
func NewUser(name, email, passwordHash string, role Role) (*User, error) {
	if !role.IsValid() {
		return nil, errors.Errorf("invalid role %q", role)
	}

	user := &User{
		Name:         name,
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
	}

	switch role {
	case RoleTalent:
		user.TalentProfile = &TalentProfile{}
	case RoleEmployer:
		user.EmployerProfile = &EmployerProfile{}
	case RoleModerator:
		// Moderators carry no public profile.
	}

	return user, nil
}

// CheckProfileConsistency re-derives the expected profile existence from the
// role and compares it against what is actually attached. The auth gate runs
// this on every request so drift introduced after token issuance is caught
// immediately instead of trusting stale claims.
func (u *User) CheckProfileConsistency() error {
	var ok bool
	switch u.Role {
	case RoleTalent:
		ok = u.TalentProfile != nil && u.EmployerProfile == nil
	case RoleEmployer:
		ok = u.EmployerProfile != nil && u.TalentProfile == nil
	case RoleModerator:
		ok = u.TalentProfile == nil && u.EmployerProfile == nil
	default:
		ok = false
	}

	if !ok {
		return errors.Wrapf(ErrRoleProfileMismatch, "user %s with role %s", u.ID, u.Role)
	}

	return nil
}

// NormalizeEmail lowercases and trims an email address so that lookups and
// uniqueness behave case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
