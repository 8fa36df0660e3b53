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

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager       repository.TransactionManager
	ledger          usecase.RefreshTokenLedger
	hasher          service.PasswordHasher
	tokenSvc        service.TokenService
	mailer          service.Mailer
	verificationTTL time.Duration
	logger          *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	cfg *config.Config,
	txManager repository.TransactionManager,
	ledger usecase.RefreshTokenLedger,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	mailer service.Mailer,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		txManager:       txManager,
		ledger:          ledger,
		hasher:          hasher,
		tokenSvc:        tokenSvc,
		mailer:          mailer,
		verificationTTL: cfg.Auth.VerificationTokenTTL,
		logger:          logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the presented credentials and issues a token pair.
// Unknown email and wrong password produce the same error so the response
// does not reveal which accounts exist.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	var user *entity.User

	// Read through the transaction manager so the lookup hits the primary,
	// not a stale replica.
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "email not registered")
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Debug("Login rejected", slog.String("email", email))

		return nil, err
	}

	// Unverified accounts get a fresh verification mail instead of tokens.
	// This runs before the password check so a user who lost the original
	// mail can recover without a valid session.
	if !user.EmailVerified {
		if err := srv.resendVerification(ctx, user); err != nil {
			return nil, err
		}

		return &usecase.LoginOutput{RequiresVerification: true, User: user}, nil
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Debug("Login rejected", slog.Any("user_id", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	if !user.Active {
		return nil, errors.Wrap(domainerrors.ErrAccountDisabled, "account disabled")
	}

	accessToken, err := srv.tokenSvc.IssueAccessToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshSecret, err := srv.tokenSvc.NewSecret()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh secret")
	}

	refreshTTL := srv.tokenSvc.RefreshTokenTTL()
	if err := srv.ledger.Store(ctx, refreshSecret, user.ID, time.Now().Add(refreshTTL)); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User logged in", slog.Any("user_id", user.ID), slog.String("role", user.Role.String()))

	return &usecase.LoginOutput{
		AccessToken:   accessToken,
		RefreshSecret: refreshSecret,
		RefreshTTL:    refreshTTL,
		User:          user,
	}, nil
}

// resendVerification mints a new verification token, replaces the stored
// one and mails the raw secret. The mail is sent after the row is saved so
// the link in the user's inbox always matches the database.
func (srv *sessionService) resendVerification(ctx context.Context, user *entity.User) error {
	secret, err := srv.tokenSvc.NewSecret()
	if err != nil {
		return errors.Wrap(err, "failed to generate verification token")
	}

	expiresAt := time.Now().Add(srv.verificationTTL)
	user.SecurityToken = &entity.SecurityToken{
		Kind:      entity.SecurityTokenVerify,
		TokenHash: srv.tokenSvc.HashSecret(secret),
		ExpiresAt: expiresAt,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return errors.Wrap(repoFactory.UserRepo().Update(ctx, user), "failed to save verification token")
	})
	if err != nil {
		srv.log(ctx).Error("Failed to save verification token", slog.Any("error", err), slog.Any("user_id", user.ID))

		return err
	}

	if err := srv.mailer.SendVerificationMail(ctx, user.Email, secret, expiresAt); err != nil {
		srv.log(ctx).Error("Failed to send verification mail", slog.Any("error", err), slog.Any("user_id", user.ID))

		return errors.Wrap(err, "failed to send verification mail")
	}

	srv.log(ctx).Info("Verification mail resent", slog.Any("user_id", user.ID))

	return nil
}

// Refresh rotates the presented secret and mints a new access token.
// All rotation failures collapse into the same generic error; the ledger
// already logged the interesting ones.
func (srv *sessionService) Refresh(ctx context.Context, refreshSecret string) (*usecase.RefreshOutput, error) {
	result, err := srv.ledger.Rotate(ctx, refreshSecret)
	if err != nil {
		return nil, err
	}

	if !result.OK {
		return nil, errors.Wrapf(domainerrors.ErrRefreshTokenInvalid, "rotation failed: %s", result.Failure)
	}

	accessToken, err := srv.tokenSvc.IssueAccessToken(result.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &usecase.RefreshOutput{
		AccessToken:   accessToken,
		RefreshSecret: result.NewSecret,
		RefreshTTL:    srv.tokenSvc.RefreshTokenTTL(),
	}, nil
}

// Logout revokes the presented refresh secret. Always succeeds from the
// caller's perspective.
func (srv *sessionService) Logout(ctx context.Context, refreshSecret string) error {
	return srv.ledger.Revoke(ctx, refreshSecret)
}

// LogoutAll ends every session the user holds.
func (srv *sessionService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return srv.ledger.RevokeAll(ctx, userID)
}
