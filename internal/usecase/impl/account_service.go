package impl

import (
	"context"
	"log/slog"
	"time"

	"jobboard/config"
	deliverycontext "jobboard/internal/delivery/context"
	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/repository"
	"jobboard/internal/domain/service"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager       repository.TransactionManager
	hasher          service.PasswordHasher
	tokenSvc        service.TokenService
	mailer          service.Mailer
	verificationTTL time.Duration
	logger          *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	cfg *config.Config,
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	mailer service.Mailer,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager:       txManager,
		hasher:          hasher,
		tokenSvc:        tokenSvc,
		mailer:          mailer,
		verificationTTL: cfg.Auth.VerificationTokenTTL,
		logger:          logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterTalent creates a talent account with its talent profile.
func (srv *accountService) RegisterTalent(ctx context.Context, input *usecase.RegisterTalentInput) (*usecase.RegisterOutput, error) {
	user, secret, err := srv.register(ctx, input.Name, input.Email, input.Password, entity.RoleTalent)
	if err != nil {
		return nil, err
	}
	user.TalentProfile.Headline = input.Headline

	return srv.finishRegistration(ctx, user, secret)
}

// RegisterEmployer creates an employer account with its employer profile.
func (srv *accountService) RegisterEmployer(ctx context.Context, input *usecase.RegisterEmployerInput) (*usecase.RegisterOutput, error) {
	user, secret, err := srv.register(ctx, input.Name, input.Email, input.Password, entity.RoleEmployer)
	if err != nil {
		return nil, err
	}
	user.EmployerProfile.CompanyName = input.CompanyName
	user.EmployerProfile.Website = input.Website

	return srv.finishRegistration(ctx, user, secret)
}

// register builds the user entity shared by both signup flows and mints
// its verification token. Nothing is persisted yet.
func (srv *accountService) register(ctx context.Context, name, email, password string, role entity.Role) (*entity.User, string, error) {
	if err := srv.hasher.ValidatePasswordStrength(password); err != nil {
		return nil, "", errors.Wrap(domainerrors.ErrPasswordStrength, err.Error())
	}

	passwordHash, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	user, err := entity.NewUser(name, email, passwordHash, role)
	if err != nil {
		return nil, "", errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	secret, err := srv.tokenSvc.NewSecret()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to generate verification token")
	}

	user.SecurityToken = &entity.SecurityToken{
		Kind:      entity.SecurityTokenVerify,
		TokenHash: srv.tokenSvc.HashSecret(secret),
		ExpiresAt: time.Now().Add(srv.verificationTTL),
	}

	return user, secret, nil
}

// finishRegistration persists the account and sends the verification mail.
func (srv *accountService) finishRegistration(ctx context.Context, user *entity.User, secret string) (*usecase.RegisterOutput, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, user.Email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrEmailAlreadyRegistered, "email taken")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email uniqueness")
		}

		return errors.Wrap(userRepo.Create(ctx, user), "failed to create user")
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.Any("error", err), slog.String("role", user.Role.String()))

		return nil, err
	}

	if err := srv.mailer.SendVerificationMail(ctx, user.Email, secret, user.SecurityToken.ExpiresAt); err != nil {
		// The account exists; the user can trigger a resend by logging in.
		srv.log(ctx).Error("Failed to send verification mail", slog.Any("error", err), slog.Any("user_id", user.ID))
	}

	srv.log(ctx).Info("User registered", slog.Any("user_id", user.ID), slog.String("role", user.Role.String()))

	return &usecase.RegisterOutput{User: user}, nil
}

// VerifyEmail consumes a verification token and marks the email verified.
// Token mismatch, wrong kind and expiry all collapse into the same error.
func (srv *accountService) VerifyEmail(ctx context.Context, email, token string) error {
	tokenHash := srv.tokenSvc.HashSecret(token)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrSecurityTokenInvalid, "unknown email")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !user.SecurityToken.Matches(entity.SecurityTokenVerify, tokenHash, time.Now()) {
			return errors.Wrap(domainerrors.ErrSecurityTokenInvalid, "verification token mismatch")
		}

		user.EmailVerified = true
		user.SecurityToken = nil

		return errors.Wrap(userRepo.Update(ctx, user), "failed to mark email verified")
	})
	if err != nil {
		srv.log(ctx).Debug("Email verification rejected", slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Email verified", slog.String("email", entity.NormalizeEmail(email)))

	return nil
}

// RequestPasswordReset issues a reset token and mails it. Unknown emails
// are logged and swallowed so the endpoint cannot be used for enumeration.
func (srv *accountService) RequestPasswordReset(ctx context.Context, email string) error {
	normalized := entity.NormalizeEmail(email)

	secret, err := srv.tokenSvc.NewSecret()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	var expiresAt time.Time

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByEmail(ctx, normalized)
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		expiresAt = time.Now().Add(srv.verificationTTL)
		user.SecurityToken = &entity.SecurityToken{
			Kind:      entity.SecurityTokenReset,
			TokenHash: srv.tokenSvc.HashSecret(secret),
			ExpiresAt: expiresAt,
		}

		return errors.Wrap(userRepo.Update(ctx, user), "failed to save reset token")
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Password reset requested for unknown email", slog.String("email", normalized))

			return nil
		}

		srv.log(ctx).Error("Failed to prepare password reset", slog.Any("error", err))

		return err
	}

	if err := srv.mailer.SendPasswordResetMail(ctx, normalized, secret, expiresAt); err != nil {
		srv.log(ctx).Error("Failed to send password reset mail", slog.Any("error", err))

		return errors.Wrap(err, "failed to send password reset mail")
	}

	return nil
}

// ResetPassword consumes a reset token and replaces the password hash.
// Every refresh token the user holds is revoked in the same transaction,
// so no session outlives the old password.
func (srv *accountService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if err := srv.hasher.ValidatePasswordStrength(newPassword); err != nil {
		return errors.Wrap(domainerrors.ErrPasswordStrength, err.Error())
	}

	passwordHash, err := srv.hasher.Hash(newPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	tokenHash := srv.tokenSvc.HashSecret(token)

	var userID uuid.UUID

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		user, err := userRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrSecurityTokenInvalid, "unknown email")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !user.SecurityToken.Matches(entity.SecurityTokenReset, tokenHash, time.Now()) {
			return errors.Wrap(domainerrors.ErrSecurityTokenInvalid, "reset token mismatch")
		}

		user.PasswordHash = passwordHash
		user.SecurityToken = nil
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		if _, err := refreshRepo.RevokeAllByUserID(ctx, user.ID, time.Now()); err != nil {
			return errors.Wrap(err, "failed to revoke user tokens")
		}
		userID = user.ID

		return nil
	})
	if err != nil {
		srv.log(ctx).Debug("Password reset rejected", slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("user_id", userID))

	return nil
}

// DeleteAccount removes the user. Profiles and refresh tokens cascade at
// the database level.
func (srv *accountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user already deleted")
			}

			return errors.Wrap(err, "failed to find user")
		}

		return errors.Wrap(userRepo.Delete(ctx, userID), "failed to delete user")
	})
	if err != nil {
		srv.log(ctx).Warn("Account deletion failed", slog.Any("error", err), slog.Any("user_id", userID))

		return err
	}

	srv.log(ctx).Info("Account deleted", slog.Any("user_id", userID))

	return nil
}
