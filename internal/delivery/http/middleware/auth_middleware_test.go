package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/repository"
	"jobboard/internal/domain/service"
	mockRepo "jobboard/internal/mocks/repository"
	mockSvc "jobboard/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authMiddlewareFixture struct {
	middleware *AuthMiddleware
	tokenSvc   *mockSvc.MockTokenService
	userRepo   *mockRepo.MockUserRepository
}

func createTestAuthMiddleware(t *testing.T) *authMiddlewareFixture {
	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	return &authMiddlewareFixture{
		middleware: NewAuthMiddleware(tokenSvc, userRepo),
		tokenSvc:   tokenSvc,
		userRepo:   userRepo,
	}
}

// invoke runs the Authenticate middleware against a request carrying the given
// Authorization header and reports the recorded response plus whether the
// wrapped handler ran.
func (fx *authMiddlewareFixture) invoke(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	handler := fx.middleware.Authenticate(func(c echo.Context) error {
		handlerCalled = true

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return rec, handlerCalled, c
}

func activeTalent() *entity.User {
	user, _ := entity.NewUser("Test", "talent@example.com", "hash", entity.RoleTalent)
	user.ID = uuid.New()
	user.EmailVerified = true

	return user
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	rec, handlerCalled, _ := fx.invoke(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, handlerCalled)
}

func TestAuthMiddleware_NonBearerScheme(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	rec, handlerCalled, _ := fx.invoke(t, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_AUTH_SCHEME")
	assert.False(t, handlerCalled)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	fx.tokenSvc.EXPECT().
		ParseAccessToken("garbage").
		Return(nil, errors.WithStack(domainerrors.ErrAccessTokenInvalid))

	rec, handlerCalled, _ := fx.invoke(t, "Bearer garbage")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, handlerCalled)
}

func TestAuthMiddleware_UserNotFoundReadsLikeInvalidToken(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	userID := uuid.New()
	fx.tokenSvc.EXPECT().
		ParseAccessToken("valid-token").
		Return(&service.AccessClaims{UserID: userID, IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Minute)}, nil)
	fx.userRepo.EXPECT().
		FindByID(mock.Anything, userID).
		Return(nil, repository.ErrUserNotFound)

	rec, handlerCalled, _ := fx.invoke(t, "Bearer valid-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
	assert.False(t, handlerCalled)
}

func TestAuthMiddleware_DisabledAccount(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	user := activeTalent()
	user.Active = false

	fx.tokenSvc.EXPECT().
		ParseAccessToken("valid-token").
		Return(&service.AccessClaims{UserID: user.ID, IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Minute)}, nil)
	fx.userRepo.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil)

	rec, handlerCalled, _ := fx.invoke(t, "Bearer valid-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACCOUNT_DISABLED")
	assert.False(t, handlerCalled)
}

func TestAuthMiddleware_ProfileDrift(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	// A talent whose profile row disappeared after the token was issued.
	user := activeTalent()
	user.TalentProfile = nil

	fx.tokenSvc.EXPECT().
		ParseAccessToken("valid-token").
		Return(&service.AccessClaims{UserID: user.ID, IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Minute)}, nil)
	fx.userRepo.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil)

	rec, handlerCalled, _ := fx.invoke(t, "Bearer valid-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACCOUNT_MISCONFIGURED")
	assert.False(t, handlerCalled)
}

func TestAuthMiddleware_SuccessSetsIdentity(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	user := activeTalent()

	fx.tokenSvc.EXPECT().
		ParseAccessToken("valid-token").
		Return(&service.AccessClaims{UserID: user.ID, IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Minute)}, nil)
	fx.userRepo.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil)

	rec, handlerCalled, c := fx.invoke(t, "Bearer valid-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, handlerCalled)
	assert.Equal(t, user.ID, c.Get(ContextKeyUserID))
	assert.Equal(t, entity.RoleTalent, c.Get(ContextKeyRole))
}

func TestRequireRole(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	run := func(role any) (*httptest.ResponseRecorder, bool) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(ContextKeyRole, role)
		}

		handlerCalled := false
		handler := fx.middleware.RequireRole(entity.RoleEmployer)(func(c echo.Context) error {
			handlerCalled = true

			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))

		return rec, handlerCalled
	}

	t.Run("matching role passes", func(t *testing.T) {
		rec, handlerCalled := run(entity.RoleEmployer)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, handlerCalled)
	})

	t.Run("other role is rejected", func(t *testing.T) {
		rec, handlerCalled := run(entity.RoleTalent)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, handlerCalled)
	})

	t.Run("missing role is rejected", func(t *testing.T) {
		rec, handlerCalled := run(nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, handlerCalled)
	})
}
