package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"jobboard/config"
	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/repository"
	mockRepo "jobboard/internal/mocks/repository"
	mockSvc "jobboard/internal/mocks/service"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountServiceFixture struct {
	service   usecase.AccountUsecase
	txManager *mockRepo.MockTransactionManager
	hasher    *mockSvc.MockPasswordHasher
	tokenSvc  *mockSvc.MockTokenService
	mailer    *mockSvc.MockMailer
}

func createTestAccountService(t *testing.T) *accountServiceFixture {
	txManager := mockRepo.NewMockTransactionManager(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenSvc := mockSvc.NewMockTokenService(t)
	mailer := mockSvc.NewMockMailer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			VerificationTokenTTL: 24 * time.Hour,
		},
	}

	return &accountServiceFixture{
		service:   NewAccountService(cfg, txManager, hasher, tokenSvc, mailer, logger),
		txManager: txManager,
		hasher:    hasher,
		tokenSvc:  tokenSvc,
		mailer:    mailer,
	}
}

func TestAccountService_RegisterTalent_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterTalentInput{
		Name:     "Test Talent",
		Email:    "Talent@Example.com",
		Password: "Password123!",
		Headline: "Backend engineer",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed-password", nil)
	fx.tokenSvc.EXPECT().NewSecret().Return("verify-secret", nil)
	fx.tokenSvc.EXPECT().HashSecret("verify-secret").Return("verify-hash")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().
				FindByEmail(ctx, "talent@example.com").
				Return(nil, repository.ErrUserNotFound)
			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					user.ID = uuid.New()

					assert.Equal(t, entity.RoleTalent, user.Role)
					assert.Equal(t, "talent@example.com", user.Email)
					require.NotNil(t, user.TalentProfile)
					assert.Equal(t, "Backend engineer", user.TalentProfile.Headline)
					assert.Nil(t, user.EmployerProfile)
					require.NotNil(t, user.SecurityToken)
					assert.Equal(t, entity.SecurityTokenVerify, user.SecurityToken.Kind)
					assert.False(t, user.EmailVerified)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	fx.mailer.EXPECT().
		SendVerificationMail(ctx, "talent@example.com", "verify-secret", mock.AnythingOfType("time.Time")).
		Return(nil)

	output, err := fx.service.RegisterTalent(ctx, input)

	require.NoError(t, err)
	require.NoError(t, output.User.CheckProfileConsistency())
}

func TestAccountService_RegisterEmployer_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterEmployerInput{
		Name:        "HR Person",
		Email:       "hr@acme.example",
		Password:    "Password123!",
		CompanyName: "ACME Corp",
		Website:     "https://acme.example",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed-password", nil)
	fx.tokenSvc.EXPECT().NewSecret().Return("verify-secret", nil)
	fx.tokenSvc.EXPECT().HashSecret("verify-secret").Return("verify-hash")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().
				FindByEmail(ctx, "hr@acme.example").
				Return(nil, repository.ErrUserNotFound)
			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					user.ID = uuid.New()

					assert.Equal(t, entity.RoleEmployer, user.Role)
					require.NotNil(t, user.EmployerProfile)
					assert.Equal(t, "ACME Corp", user.EmployerProfile.CompanyName)
					assert.Nil(t, user.TalentProfile)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	fx.mailer.EXPECT().
		SendVerificationMail(ctx, "hr@acme.example", "verify-secret", mock.AnythingOfType("time.Time")).
		Return(nil)

	output, err := fx.service.RegisterEmployer(ctx, input)

	require.NoError(t, err)
	require.NoError(t, output.User.CheckProfileConsistency())
}

func TestAccountService_RegisterTalent_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterTalentInput{
		Name:     "Test Talent",
		Email:    "taken@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed-password", nil)
	fx.tokenSvc.EXPECT().NewSecret().Return("verify-secret", nil)
	fx.tokenSvc.EXPECT().HashSecret("verify-secret").Return("verify-hash")

	existing := &entity.User{ID: uuid.New(), Email: "taken@example.com"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, "taken@example.com").Return(existing, nil)

			return fn(mockFactory)
		})

	output, err := fx.service.RegisterTalent(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyRegistered))
}

func TestAccountService_RegisterTalent_WeakPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterTalentInput{
		Name:     "Test Talent",
		Email:    "talent@example.com",
		Password: "short",
	}

	fx.hasher.EXPECT().
		ValidatePasswordStrength("short").
		Return(errors.New("password must be at least 8 characters"))

	output, err := fx.service.RegisterTalent(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
}

func TestAccountService_VerifyEmail_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	user, _ := entity.NewUser("Test", "talent@example.com", "hash", entity.RoleTalent)
	user.ID = uuid.New()
	user.SecurityToken = &entity.SecurityToken{
		Kind:      entity.SecurityTokenVerify,
		TokenHash: "verify-hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	fx.tokenSvc.EXPECT().HashSecret("verify-secret").Return("verify-hash")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, "talent@example.com").Return(user, nil)
			mockUserRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, updated *entity.User) {
					assert.True(t, updated.EmailVerified)
					assert.Nil(t, updated.SecurityToken)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.VerifyEmail(ctx, "talent@example.com", "verify-secret")

	require.NoError(t, err)
}

func TestAccountService_VerifyEmail_ExpiredToken(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	user, _ := entity.NewUser("Test", "talent@example.com", "hash", entity.RoleTalent)
	user.ID = uuid.New()
	user.SecurityToken = &entity.SecurityToken{
		Kind:      entity.SecurityTokenVerify,
		TokenHash: "verify-hash",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	fx.tokenSvc.EXPECT().HashSecret("verify-secret").Return("verify-hash")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, "talent@example.com").Return(user, nil)

			return fn(mockFactory)
		})

	err := fx.service.VerifyEmail(ctx, "talent@example.com", "verify-secret")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSecurityTokenInvalid))
}

func TestAccountService_VerifyEmail_WrongKindRejected(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	user, _ := entity.NewUser("Test", "talent@example.com", "hash", entity.RoleTalent)
	user.ID = uuid.New()
	// A reset token must not be redeemable as a verification token.
	user.SecurityToken = &entity.SecurityToken{
		Kind:      entity.SecurityTokenReset,
		TokenHash: "token-hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	fx.tokenSvc.EXPECT().HashSecret("token-secret").Return("token-hash")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, "talent@example.com").Return(user, nil)

			return fn(mockFactory)
		})

	err := fx.service.VerifyEmail(ctx, "talent@example.com", "token-secret")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSecurityTokenInvalid))
}

func TestAccountService_RequestPasswordReset_UnknownEmailSilently(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.tokenSvc.EXPECT().NewSecret().Return("reset-secret", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().
				FindByEmail(ctx, "ghost@example.com").
				Return(nil, repository.ErrUserNotFound)

			return fn(mockFactory)
		})

	// No mail expected for unknown emails, and no error either.
	err := fx.service.RequestPasswordReset(ctx, "ghost@example.com")

	require.NoError(t, err)
}

func TestAccountService_ResetPassword_RevokesAllSessions(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	user, _ := entity.NewUser("Test", "talent@example.com", "old-hash", entity.RoleTalent)
	user.ID = uuid.New()
	user.EmailVerified = true
	user.SecurityToken = &entity.SecurityToken{
		Kind:      entity.SecurityTokenReset,
		TokenHash: "reset-hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	fx.hasher.EXPECT().ValidatePasswordStrength("NewPassword123!").Return(nil)
	fx.hasher.EXPECT().Hash("NewPassword123!").Return("new-hash", nil)
	fx.tokenSvc.EXPECT().HashSecret("reset-secret").Return("reset-hash")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

			mockUserRepo.EXPECT().FindByEmail(ctx, "talent@example.com").Return(user, nil)
			mockUserRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, updated *entity.User) {
					assert.Equal(t, "new-hash", updated.PasswordHash)
					assert.Nil(t, updated.SecurityToken)
				}).
				Return(nil)
			mockRefreshRepo.EXPECT().
				RevokeAllByUserID(ctx, user.ID, mock.AnythingOfType("time.Time")).
				Return(int64(2), nil)

			return fn(mockFactory)
		})

	err := fx.service.ResetPassword(ctx, "talent@example.com", "reset-secret", "NewPassword123!")

	require.NoError(t, err)
}

func TestAccountService_DeleteAccount_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "talent@example.com"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
			mockUserRepo.EXPECT().Delete(ctx, userID).Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.DeleteAccount(ctx, userID)

	require.NoError(t, err)
}
