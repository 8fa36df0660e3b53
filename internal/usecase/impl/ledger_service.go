// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "jobboard/internal/delivery/context"
	"jobboard/internal/domain/entity"
	"jobboard/internal/domain/repository"
	"jobboard/internal/domain/service"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ledgerService implements the RefreshTokenLedger interface. Every state
// transition runs inside a transaction so that two concurrent presentations
// of the same secret serialize into one rotation and one replay.
type ledgerService struct {
	txManager   repository.TransactionManager
	refreshRepo repository.RefreshTokenRepository
	tokenSvc    service.TokenService
	logger      *slog.Logger
}

// NewLedgerService is the constructor for ledgerService.
func NewLedgerService(
	txManager repository.TransactionManager,
	refreshRepo repository.RefreshTokenRepository,
	tokenSvc service.TokenService,
	logger *slog.Logger,
) usecase.RefreshTokenLedger {
	return &ledgerService{
		txManager:   txManager,
		refreshRepo: refreshRepo,
		tokenSvc:    tokenSvc,
		logger:      logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *ledgerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Store records the hash of a freshly minted secret. The raw secret never
// reaches the database.
func (srv *ledgerService) Store(ctx context.Context, secret string, userID uuid.UUID, expiresAt time.Time) error {
	token := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: srv.tokenSvc.HashSecret(secret),
		ExpiresAt: expiresAt,
	}

	if err := srv.refreshRepo.Create(ctx, token); err != nil {
		srv.log(ctx).Error("Failed to store refresh token", slog.Any("error", err), slog.Any("user_id", userID))

		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}

// Rotate retires the presented secret and mints its successor in a single
// transaction. The lookup takes the row lock, so of two concurrent
// presentations of the same active token one rotates and the other blocks,
// re-reads the retired row and is classified as a replay.
// The lookup is state-agnostic; classification happens here:
//   - no row            -> unknown token
//   - rotated or revoked -> replay, revoke the user's whole token family
//   - past expiry        -> expired, revoke just that row
//   - active             -> link a successor and return the new secret
func (srv *ledgerService) Rotate(ctx context.Context, presentedSecret string) (*usecase.RotateResult, error) {
	result := &usecase.RotateResult{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()

		token, err := refreshRepo.FindByHashForUpdate(ctx, srv.tokenSvc.HashSecret(presentedSecret))
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				result.Failure = usecase.RotateUnknownToken

				return nil
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		now := time.Now()

		// A token that was already rotated or revoked is being replayed.
		// Someone is holding a retired secret, so every token the user has
		// is considered compromised.
		if token.IsRotated() || token.Revoked {
			revoked, err := refreshRepo.RevokeAllByUserID(ctx, token.UserID, now)
			if err != nil {
				return errors.Wrap(err, "failed to revoke token family")
			}

			srv.log(ctx).Error("Refresh token replay detected, revoked all user tokens",
				slog.Any("user_id", token.UserID),
				slog.Any("token_id", token.ID),
				slog.Int64("revoked_count", revoked),
			)

			result.Failure = usecase.RotateReplayDetected
			result.UserID = token.UserID

			return nil
		}

		if token.IsExpired(now) {
			token.Revoked = true
			token.RevokedAt = &now
			if err := refreshRepo.Update(ctx, token); err != nil {
				return errors.Wrap(err, "failed to revoke expired token")
			}

			result.Failure = usecase.RotateExpired

			return nil
		}

		newSecret, err := srv.tokenSvc.NewSecret()
		if err != nil {
			return errors.Wrap(err, "failed to generate refresh secret")
		}

		successor := &entity.RefreshToken{
			ID:        uuid.New(),
			UserID:    token.UserID,
			TokenHash: srv.tokenSvc.HashSecret(newSecret),
			ExpiresAt: now.Add(srv.tokenSvc.RefreshTokenTTL()),
		}
		if err := refreshRepo.Create(ctx, successor); err != nil {
			return errors.Wrap(err, "failed to create successor token")
		}

		token.ReplacedByID = &successor.ID
		if err := refreshRepo.Update(ctx, token); err != nil {
			return errors.Wrap(err, "failed to retire rotated token")
		}

		result.OK = true
		result.UserID = token.UserID
		result.NewSecret = newSecret
		result.ExpiresAt = successor.ExpiresAt

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Refresh token rotation failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	return result, nil
}

// Revoke invalidates a single secret. Missing and already revoked rows are
// treated as success so the operation leaks nothing about token existence.
func (srv *ledgerService) Revoke(ctx context.Context, secret string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()

		token, err := refreshRepo.FindByHashForUpdate(ctx, srv.tokenSvc.HashSecret(secret))
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		if token.Revoked {
			return nil
		}

		now := time.Now()
		token.Revoked = true
		token.RevokedAt = &now

		return errors.Wrap(refreshRepo.Update(ctx, token), "failed to revoke refresh token")
	})
	if err != nil {
		srv.log(ctx).Error("Failed to revoke refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke refresh token")
	}

	return nil
}

// RevokeAll invalidates every active token the user holds. Runs as one
// UPDATE statement, so it is atomic without an explicit transaction.
func (srv *ledgerService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	revoked, err := srv.refreshRepo.RevokeAllByUserID(ctx, userID, time.Now())
	if err != nil {
		srv.log(ctx).Error("Failed to revoke user tokens", slog.Any("error", err), slog.Any("user_id", userID))

		return errors.Wrap(err, "failed to revoke user tokens")
	}

	srv.log(ctx).Info("Revoked all refresh tokens", slog.Any("user_id", userID), slog.Int64("revoked_count", revoked))

	return nil
}

// ReapExpired deletes rows whose expiry has passed. Purely housekeeping:
// expired tokens are already unusable through the lazy expiry check.
func (srv *ledgerService) ReapExpired(ctx context.Context) (int64, error) {
	reaped, err := srv.refreshRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		srv.log(ctx).Error("Failed to reap expired tokens", slog.Any("error", err))

		return 0, errors.Wrap(err, "failed to reap expired tokens")
	}

	if reaped > 0 {
		srv.log(ctx).Info("Reaped expired refresh tokens", slog.Int64("count", reaped))
	}

	return reaped, nil
}
