// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/repository"
	"jobboard/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading their role profile.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("TalentProfile").
		Preload("EmployerProfile").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by email. Emails are stored normalized,
// but the comparison folds case anyway so lookups stay case-insensitive even
// for rows written before normalization.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("TalentProfile").
		Preload("EmployerProfile").
		Where("lower(email) = lower(?)", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity, including its role profile.
// GORM's Create with associations inserts into users and talent_profiles
// or employer_profiles together.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("invalid foreign key reference")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	if user.TalentProfile != nil && userM.TalentProfile != nil {
		user.TalentProfile.UserID = userM.TalentProfile.UserID
		user.TalentProfile.UpdatedAt = userM.TalentProfile.UpdatedAt
	}
	if user.EmployerProfile != nil && userM.EmployerProfile != nil {
		user.EmployerProfile.UserID = userM.EmployerProfile.UserID
		user.EmployerProfile.UpdatedAt = userM.EmployerProfile.UpdatedAt
	}

	return nil
}

// Update saves credential state (password hash, verification flag, security
// token) and the attached role profile.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	// The explicit column list forces zero values (cleared security token
	// columns, EmailVerified=false) to be written instead of skipped.
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userM.ID).
		Select("name", "password_hash", "active", "email_verified",
			"security_token_kind", "security_token_hash", "security_token_expires_at").
		Updates(userM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	if userM.TalentProfile != nil {
		if err := repo.db.WithContext(ctx).Save(userM.TalentProfile).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update talent profile")
		}
	}
	if userM.EmployerProfile != nil {
		if err := repo.db.WithContext(ctx).Save(userM.EmployerProfile).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update employer profile")
		}
	}

	return nil
}

// Delete removes the user row. Profiles and refresh tokens cascade through
// the foreign key constraints.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// toUserDomain maps the persistence model back to a pure domain entity.
func toUserDomain(userM *model.UserModel) *entity.User {
	user := &entity.User{
		ID:            userM.ID,
		Email:         userM.Email,
		Name:          userM.Name,
		PasswordHash:  userM.PasswordHash,
		Role:          entity.Role(userM.Role),
		Active:        userM.Active,
		EmailVerified: userM.EmailVerified,
		CreatedAt:     userM.CreatedAt,
		UpdatedAt:     userM.UpdatedAt,
	}

	if userM.SecurityTokenKind != nil && userM.SecurityTokenHash != nil && userM.SecurityTokenExpiresAt != nil {
		user.SecurityToken = &entity.SecurityToken{
			Kind:      entity.SecurityTokenKind(*userM.SecurityTokenKind),
			TokenHash: *userM.SecurityTokenHash,
			ExpiresAt: *userM.SecurityTokenExpiresAt,
		}
	}

	if userM.TalentProfile != nil {
		user.TalentProfile = &entity.TalentProfile{
			UserID:    userM.TalentProfile.UserID,
			Headline:  userM.TalentProfile.Headline,
			ResumeURL: userM.TalentProfile.ResumeURL,
			UpdatedAt: userM.TalentProfile.UpdatedAt,
		}
	}
	if userM.EmployerProfile != nil {
		user.EmployerProfile = &entity.EmployerProfile{
			UserID:      userM.EmployerProfile.UserID,
			CompanyName: userM.EmployerProfile.CompanyName,
			Website:     userM.EmployerProfile.Website,
			About:       userM.EmployerProfile.About,
			UpdatedAt:   userM.EmployerProfile.UpdatedAt,
		}
	}

	return user
}

// fromUserDomain maps a pure domain entity to a GORM persistence model.
func fromUserDomain(user *entity.User) *model.UserModel {
	userM := &model.UserModel{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		PasswordHash:  user.PasswordHash,
		Role:          user.Role.String(),
		Active:        user.Active,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}

	if user.SecurityToken != nil {
		kind := string(user.SecurityToken.Kind)
		hash := user.SecurityToken.TokenHash
		expiresAt := user.SecurityToken.ExpiresAt
		userM.SecurityTokenKind = &kind
		userM.SecurityTokenHash = &hash
		userM.SecurityTokenExpiresAt = &expiresAt
	}

	if user.TalentProfile != nil {
		userM.TalentProfile = &model.TalentProfileModel{
			UserID:    user.TalentProfile.UserID,
			Headline:  user.TalentProfile.Headline,
			ResumeURL: user.TalentProfile.ResumeURL,
		}
	}
	if user.EmployerProfile != nil {
		userM.EmployerProfile = &model.EmployerProfileModel{
			UserID:      user.EmployerProfile.UserID,
			CompanyName: user.EmployerProfile.CompanyName,
			Website:     user.EmployerProfile.Website,
			About:       user.EmployerProfile.About,
		}
	}

	return userM
}
