package service

import (
	"context"
	"time"
)

// Mailer is the narrow boundary to the mail delivery system. The auth core
// only ever hands over the raw secret for the link; rendering and delivery
// happen in a separate service.
type Mailer interface {
	// SendVerificationMail asks the mail service to deliver an email
	// verification link containing the raw token.
	SendVerificationMail(ctx context.Context, email, token string, expiresAt time.Time) error

	// SendPasswordResetMail asks the mail service to deliver a password
	// reset link containing the raw token.
	SendPasswordResetMail(ctx context.Context, email, token string, expiresAt time.Time) error
}
