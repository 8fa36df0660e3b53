// Package usecase defines the application layer contracts and their DTOs.
package usecase

import (
	"context"
	"time"

	"jobboard/internal/domain/entity"

	"github.com/google/uuid"
)

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput is the result of a successful credential check. When the
// account's email is not verified yet, RequiresVerification is set and no
// tokens are issued; this is an outcome, not an error.
type LoginOutput struct {
	RequiresVerification bool
	AccessToken          string
	RefreshSecret        string
	RefreshTTL           time.Duration
	User                 *entity.User
}

// RefreshOutput carries the new token pair minted by a rotation.
type RefreshOutput struct {
	AccessToken   string
	RefreshSecret string
	RefreshTTL    time.Duration
}

// SessionUsecase drives the session lifecycle: establishing sessions from
// credentials, extending them through refresh token rotation, and ending
// them. Credential failures are deliberately indistinguishable to callers.
type SessionUsecase interface {
	// Login verifies credentials and, for verified active accounts, issues
	// an access token and a refresh token. Unverified accounts get a fresh
	// verification mail and a RequiresVerification outcome instead.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Refresh exchanges a refresh secret for a new token pair via ledger
	// rotation. Any non-rotatable token yields the same generic error.
	Refresh(ctx context.Context, refreshSecret string) (*RefreshOutput, error)

	// Logout revokes the presented refresh secret. Idempotent: revoking an
	// unknown or already revoked secret still succeeds.
	Logout(ctx context.Context, refreshSecret string) error

	// LogoutAll ends every session the user holds.
	LogoutAll(ctx context.Context, userID uuid.UUID) error
}
