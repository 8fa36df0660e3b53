// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"unicode"

	"jobboard/config"
	"jobboard/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{
		cost:     cost,
		strength: cfg.PasswordStrength,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), errors.Wrap(err, "bcrypt.GenerateFromPassword")
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength rejects passwords that do not meet the configured
// requirements. With no configuration only a minimal length check applies.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	strength := h.strength
	if strength == nil {
		if len(password) < 8 {
			return errors.New("password must be at least 8 characters")
		}

		return nil
	}

	if len(password) < strength.MinLength {
		return errors.Errorf("password must be at least %d characters", strength.MinLength)
	}
	if strength.MaxLength > 0 && len(password) > strength.MaxLength {
		return errors.Errorf("password must be at most %d characters", strength.MaxLength)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if strength.RequireUppercase && !hasUpper {
		return errors.New("password must contain an uppercase letter")
	}
	if strength.RequireLowercase && !hasLower {
		return errors.New("password must contain a lowercase letter")
	}
	if strength.RequireNumbers && !hasNumber {
		return errors.New("password must contain a number")
	}
	if strength.RequireSpecial && !hasSpecial {
		return errors.New("password must contain a special character")
	}

	return nil
}
