// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"jobboard/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the persistence contract for user accounts.
// Profile rows ride along with the user: Create persists the attached
// profile and Update saves whichever profile the entity carries.
type UserRepository interface {
	// Create persists a new user together with its role profile.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by ID, preloading its profiles.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by email. The comparison is
	// case-insensitive; implementations match on the normalized form.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update saves credential state changes (password hash, verification
	// flags, security token) and the attached profile.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user. Refresh tokens and profiles cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}
