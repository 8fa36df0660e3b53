package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"jobboard/internal/domain/entity"
	"jobboard/internal/domain/repository"
	mockRepo "jobboard/internal/mocks/repository"
	mockSvc "jobboard/internal/mocks/service"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ledgerServiceFixture struct {
	service     usecase.RefreshTokenLedger
	txManager   *mockRepo.MockTransactionManager
	refreshRepo *mockRepo.MockRefreshTokenRepository
	tokenSvc    *mockSvc.MockTokenService
}

func createTestLedgerService(t *testing.T) *ledgerServiceFixture {
	txManager := mockRepo.NewMockTransactionManager(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	tokenSvc := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &ledgerServiceFixture{
		service:     NewLedgerService(txManager, refreshRepo, tokenSvc, logger),
		txManager:   txManager,
		refreshRepo: refreshRepo,
		tokenSvc:    tokenSvc,
	}
}

// expectTransaction routes Execute through the given transactional repo mock.
func (fx *ledgerServiceFixture) expectTransaction(t *testing.T, ctx context.Context, txRepo *mockRepo.MockRefreshTokenRepository) {
	t.Helper()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockFactory.EXPECT().RefreshTokenRepo().Return(txRepo)

			return fn(mockFactory)
		})
}

func TestLedgerService_Store_PersistsOnlyHash(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()
	userID := uuid.New()
	expiresAt := time.Now().Add(time.Hour)

	fx.tokenSvc.EXPECT().HashSecret("raw-secret").Return("hashed-secret")
	fx.refreshRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(ctx context.Context, token *entity.RefreshToken) {
			assert.Equal(t, "hashed-secret", token.TokenHash)
			assert.NotContains(t, token.TokenHash, "raw-secret")
			assert.Equal(t, userID, token.UserID)
			assert.Equal(t, expiresAt, token.ExpiresAt)
		}).
		Return(nil)

	err := fx.service.Store(ctx, "raw-secret", userID, expiresAt)

	require.NoError(t, err)
}

func TestLedgerService_Rotate_ActiveTokenGetsSuccessor(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()
	userID := uuid.New()
	oldToken := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: "old-hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	txRepo := mockRepo.NewMockRefreshTokenRepository(t)
	fx.expectTransaction(t, ctx, txRepo)

	fx.tokenSvc.EXPECT().HashSecret("old-secret").Return("old-hash")
	txRepo.EXPECT().FindByHashForUpdate(ctx, "old-hash").Return(oldToken, nil)

	fx.tokenSvc.EXPECT().NewSecret().Return("new-secret", nil)
	fx.tokenSvc.EXPECT().HashSecret("new-secret").Return("new-hash")
	fx.tokenSvc.EXPECT().RefreshTokenTTL().Return(time.Hour * 24 * 7)

	var successorID uuid.UUID
	txRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(ctx context.Context, token *entity.RefreshToken) {
			successorID = token.ID
			assert.Equal(t, "new-hash", token.TokenHash)
			assert.Equal(t, userID, token.UserID)
		}).
		Return(nil)
	txRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(ctx context.Context, token *entity.RefreshToken) {
			require.NotNil(t, token.ReplacedByID)
			assert.Equal(t, successorID, *token.ReplacedByID)
			assert.False(t, token.Revoked)
		}).
		Return(nil)

	result, err := fx.service.Rotate(ctx, "old-secret")

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "new-secret", result.NewSecret)
	assert.Equal(t, userID, result.UserID)
}

func TestLedgerService_Rotate_ReplayRevokesWholeFamily(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()
	userID := uuid.New()
	successorID := uuid.New()
	rotatedToken := &entity.RefreshToken{
		ID:           uuid.New(),
		UserID:       userID,
		TokenHash:    "rotated-hash",
		ExpiresAt:    time.Now().Add(time.Hour),
		ReplacedByID: &successorID,
	}

	txRepo := mockRepo.NewMockRefreshTokenRepository(t)
	fx.expectTransaction(t, ctx, txRepo)

	fx.tokenSvc.EXPECT().HashSecret("rotated-secret").Return("rotated-hash")
	txRepo.EXPECT().FindByHashForUpdate(ctx, "rotated-hash").Return(rotatedToken, nil)
	txRepo.EXPECT().
		RevokeAllByUserID(ctx, userID, mock.AnythingOfType("time.Time")).
		Return(int64(3), nil)

	result, err := fx.service.Rotate(ctx, "rotated-secret")

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, usecase.RotateReplayDetected, result.Failure)
	assert.Equal(t, userID, result.UserID)
	assert.Empty(t, result.NewSecret)
}

// Two clients presenting the same secret at once: the winner rotates, the
// loser's locked lookup blocks until the winner commits and then returns the
// row with its successor link already set. The loser must come out of the
// race classified as a replay, with the whole family revoked.
func TestLedgerService_Rotate_ConcurrentLoserIsReplay(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()
	userID := uuid.New()
	tokenID := uuid.New()
	winnerSuccessorID := uuid.New()

	txRepo := mockRepo.NewMockRefreshTokenRepository(t)
	fx.expectTransaction(t, ctx, txRepo)

	fx.tokenSvc.EXPECT().HashSecret("raced-secret").Return("raced-hash")
	txRepo.EXPECT().
		FindByHashForUpdate(ctx, "raced-hash").
		Return(&entity.RefreshToken{
			ID:           tokenID,
			UserID:       userID,
			TokenHash:    "raced-hash",
			ExpiresAt:    time.Now().Add(time.Hour),
			ReplacedByID: &winnerSuccessorID,
		}, nil)
	txRepo.EXPECT().
		RevokeAllByUserID(ctx, userID, mock.AnythingOfType("time.Time")).
		Return(int64(2), nil)

	result, err := fx.service.Rotate(ctx, "raced-secret")

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, usecase.RotateReplayDetected, result.Failure)
	assert.Equal(t, userID, result.UserID)
	assert.Empty(t, result.NewSecret)
}

func TestLedgerService_Rotate_RevokedTokenIsReplay(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()
	revokedToken := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: "revoked-hash",
		ExpiresAt: now.Add(time.Hour),
		Revoked:   true,
		RevokedAt: &now,
	}

	txRepo := mockRepo.NewMockRefreshTokenRepository(t)
	fx.expectTransaction(t, ctx, txRepo)

	fx.tokenSvc.EXPECT().HashSecret("revoked-secret").Return("revoked-hash")
	txRepo.EXPECT().FindByHashForUpdate(ctx, "revoked-hash").Return(revokedToken, nil)
	txRepo.EXPECT().
		RevokeAllByUserID(ctx, userID, mock.AnythingOfType("time.Time")).
		Return(int64(1), nil)

	result, err := fx.service.Rotate(ctx, "revoked-secret")

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, usecase.RotateReplayDetected, result.Failure)
}

func TestLedgerService_Rotate_ExpiredTokenNeverRotates(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()
	expiredToken := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		TokenHash: "expired-hash",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	txRepo := mockRepo.NewMockRefreshTokenRepository(t)
	fx.expectTransaction(t, ctx, txRepo)

	fx.tokenSvc.EXPECT().HashSecret("expired-secret").Return("expired-hash")
	txRepo.EXPECT().FindByHashForUpdate(ctx, "expired-hash").Return(expiredToken, nil)
	txRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(ctx context.Context, token *entity.RefreshToken) {
			assert.True(t, token.Revoked)
			assert.NotNil(t, token.RevokedAt)
		}).
		Return(nil)

	result, err := fx.service.Rotate(ctx, "expired-secret")

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, usecase.RotateExpired, result.Failure)
}

func TestLedgerService_Rotate_UnknownToken(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()

	txRepo := mockRepo.NewMockRefreshTokenRepository(t)
	fx.expectTransaction(t, ctx, txRepo)

	fx.tokenSvc.EXPECT().HashSecret("nobody-knows").Return("unknown-hash")
	txRepo.EXPECT().FindByHashForUpdate(ctx, "unknown-hash").Return(nil, repository.ErrRefreshTokenNotFound)

	result, err := fx.service.Rotate(ctx, "nobody-knows")

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, usecase.RotateUnknownToken, result.Failure)
}

func TestLedgerService_Revoke_UnknownSecretSucceeds(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()

	txRepo := mockRepo.NewMockRefreshTokenRepository(t)
	fx.expectTransaction(t, ctx, txRepo)

	fx.tokenSvc.EXPECT().HashSecret("gone").Return("gone-hash")
	txRepo.EXPECT().FindByHashForUpdate(ctx, "gone-hash").Return(nil, repository.ErrRefreshTokenNotFound)

	err := fx.service.Revoke(ctx, "gone")

	require.NoError(t, err)
}

func TestLedgerService_Revoke_AlreadyRevokedIsNoop(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()
	now := time.Now()
	revokedToken := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		TokenHash: "hash",
		ExpiresAt: now.Add(time.Hour),
		Revoked:   true,
		RevokedAt: &now,
	}

	txRepo := mockRepo.NewMockRefreshTokenRepository(t)
	fx.expectTransaction(t, ctx, txRepo)

	fx.tokenSvc.EXPECT().HashSecret("secret").Return("hash")
	txRepo.EXPECT().FindByHashForUpdate(ctx, "hash").Return(revokedToken, nil)
	// No Update expected: revoking twice must not touch the row again.

	err := fx.service.Revoke(ctx, "secret")

	require.NoError(t, err)
}

func TestLedgerService_Revoke_ActiveToken(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()
	activeToken := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		TokenHash: "hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	txRepo := mockRepo.NewMockRefreshTokenRepository(t)
	fx.expectTransaction(t, ctx, txRepo)

	fx.tokenSvc.EXPECT().HashSecret("secret").Return("hash")
	txRepo.EXPECT().FindByHashForUpdate(ctx, "hash").Return(activeToken, nil)
	txRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(ctx context.Context, token *entity.RefreshToken) {
			assert.True(t, token.Revoked)
			assert.NotNil(t, token.RevokedAt)
		}).
		Return(nil)

	err := fx.service.Revoke(ctx, "secret")

	require.NoError(t, err)
}

func TestLedgerService_RevokeAll(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.refreshRepo.EXPECT().
		RevokeAllByUserID(ctx, userID, mock.AnythingOfType("time.Time")).
		Return(int64(2), nil)

	err := fx.service.RevokeAll(ctx, userID)

	require.NoError(t, err)
}

func TestLedgerService_ReapExpired(t *testing.T) {
	fx := createTestLedgerService(t)

	ctx := context.Background()

	fx.refreshRepo.EXPECT().
		DeleteExpired(ctx, mock.AnythingOfType("time.Time")).
		Return(int64(5), nil)

	reaped, err := fx.service.ReapExpired(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(5), reaped)
}
