package usecase

import (
	"context"

	"jobboard/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterTalentInput carries the fields for a talent signup.
type RegisterTalentInput struct {
	Name     string
	Email    string
	Password string
	Headline string
}

// RegisterEmployerInput carries the fields for an employer signup.
type RegisterEmployerInput struct {
	Name        string
	Email       string
	Password    string
	CompanyName string
	Website     string
}

// RegisterOutput returns the created account. No tokens are issued at
// registration; the user logs in after verifying their email.
type RegisterOutput struct {
	User *entity.User
}

// AccountUsecase manages account state outside of live sessions:
// registration, email verification, password reset and deletion.
type AccountUsecase interface {
	// RegisterTalent creates a talent account with its talent profile and
	// sends a verification mail.
	RegisterTalent(ctx context.Context, input *RegisterTalentInput) (*RegisterOutput, error)

	// RegisterEmployer creates an employer account with its employer profile
	// and sends a verification mail.
	RegisterEmployer(ctx context.Context, input *RegisterEmployerInput) (*RegisterOutput, error)

	// VerifyEmail consumes a verification token and marks the email verified.
	VerifyEmail(ctx context.Context, email, token string) error

	// RequestPasswordReset issues a reset token and mails it. It reports
	// success whether or not the email is registered, to avoid enumeration.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes a reset token, replaces the password hash and
	// revokes every refresh token the user holds, all in one transaction.
	ResetPassword(ctx context.Context, email, token, newPassword string) error

	// DeleteAccount removes the user; profiles and tokens cascade.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
