// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/repository"
	"jobboard/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// refreshTokenRepository implements the domain.RefreshTokenRepository interface using GORM.
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create inserts a new ledger row.
func (repo *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	tokenM := fromRefreshTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			// Two secrets hashing to the same value means a duplicate issue,
			// which the caller treats as an infrastructure fault.
			return domainerrors.NewDatabaseExecuteError(err, "duplicate token hash")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create refresh token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindByHash retrieves a row by its stored secret hash, regardless of state.
// Classifying revoked/rotated/expired rows is the ledger's job.
func (repo *refreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	return repo.findByHash(repo.db.WithContext(ctx), tokenHash)
}

// FindByHashForUpdate retrieves the row under SELECT ... FOR UPDATE so the
// surrounding transaction holds the row lock until commit. A concurrent
// rotation of the same token blocks here and then sees the committed
// replaced_by_id, so exactly one of two racing rotations wins.
func (repo *refreshTokenRepository) FindByHashForUpdate(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	return repo.findByHash(
		repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}),
		tokenHash,
	)
}

func (repo *refreshTokenRepository) findByHash(db *gorm.DB, tokenHash string) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel
	err := db.
		Where("token_hash = ?", tokenHash).
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find refresh token by hash")
	}

	return toRefreshTokenDomain(&tokenM), nil
}

// Update persists state transitions (revoked flags, successor links).
func (repo *refreshTokenRepository) Update(ctx context.Context, token *entity.RefreshToken) error {
	tokenM := fromRefreshTokenDomain(token)

	result := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("id = ?", tokenM.ID).
		Select("revoked", "revoked_at", "replaced_by_id").
		Updates(tokenM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update refresh token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

// FindByUserID retrieves all rows for a user, newest first.
func (repo *refreshTokenRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	var tokenMs []model.RefreshTokenModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tokenMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find refresh tokens by user id")
	}

	tokens := make([]*entity.RefreshToken, 0, len(tokenMs))
	for i := range tokenMs {
		tokens = append(tokens, toRefreshTokenDomain(&tokenMs[i]))
	}

	return tokens, nil
}

// RevokeAllByUserID marks every non-revoked row for the user revoked in a
// single UPDATE statement and returns the number of rows touched.
func (repo *refreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uuid.UUID, revokedAt time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Updates(map[string]any{
			"revoked":    true,
			"revoked_at": revokedAt,
		})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke user refresh tokens")
	}

	return result.RowsAffected, nil
}

// DeleteExpired reaps rows past their expiry.
func (repo *refreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete expired refresh tokens")
	}

	return result.RowsAffected, nil
}

// toRefreshTokenDomain maps the persistence model back to a pure domain entity.
func toRefreshTokenDomain(tokenM *model.RefreshTokenModel) *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:           tokenM.ID,
		UserID:       tokenM.UserID,
		TokenHash:    tokenM.TokenHash,
		ExpiresAt:    tokenM.ExpiresAt,
		CreatedAt:    tokenM.CreatedAt,
		Revoked:      tokenM.Revoked,
		RevokedAt:    tokenM.RevokedAt,
		ReplacedByID: tokenM.ReplacedByID,
	}
}

// fromRefreshTokenDomain maps a pure domain entity to a GORM persistence model.
func fromRefreshTokenDomain(token *entity.RefreshToken) *model.RefreshTokenModel {
	return &model.RefreshTokenModel{
		ID:           token.ID,
		UserID:       token.UserID,
		TokenHash:    token.TokenHash,
		ExpiresAt:    token.ExpiresAt,
		CreatedAt:    token.CreatedAt,
		Revoked:      token.Revoked,
		RevokedAt:    token.RevokedAt,
		ReplacedByID: token.ReplacedByID,
	}
}
