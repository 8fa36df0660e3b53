package auth

import (
	"testing"
	"time"

	"jobboard/config"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T, accessTTL time.Duration) service.TokenService {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  accessTTL,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	cfg.SecretKey.Access = "test-access-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_RequiresAccessSecret(t *testing.T) {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL: 15 * time.Minute,
		},
	}

	svc, err := NewJWTService(cfg)

	require.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_IssueAndParseRoundtrip(t *testing.T) {
	svc := newTestJWTService(t, 15*time.Minute)
	userID := uuid.New()

	token, err := svc.IssueAccessToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt, 5*time.Second)
}

func TestJWTService_ParseRejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService(t, -time.Minute)

	token, err := svc.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(token)

	require.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrAccessTokenInvalid))
}

func TestJWTService_ParseRejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService(t, 15*time.Minute)

	token, err := svc.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"

	claims, err := svc.ParseAccessToken(tampered)

	require.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrAccessTokenInvalid))
}

func TestJWTService_ParseRejectsWrongSecret(t *testing.T) {
	issuer := newTestJWTService(t, 15*time.Minute)

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	cfg.SecretKey.Access = "a-different-secret"
	verifier, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	claims, err := verifier.ParseAccessToken(token)

	require.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrAccessTokenInvalid))
}

func TestJWTService_ParseRejectsUnsignedToken(t *testing.T) {
	svc := newTestJWTService(t, 15*time.Minute)

	// alg=none tokens must never be accepted.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(token)

	require.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrAccessTokenInvalid))
}

func TestJWTService_ParseRejectsNonUUIDSubject(t *testing.T) {
	svc := newTestJWTService(t, 15*time.Minute)

	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := signed.SignedString([]byte("test-access-secret"))
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(token)

	require.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrAccessTokenInvalid))
}

func TestJWTService_NewSecretIsUniqueAndOpaque(t *testing.T) {
	svc := newTestJWTService(t, 15*time.Minute)

	seen := make(map[string]struct{})
	for range 16 {
		secret, err := svc.NewSecret()
		require.NoError(t, err)
		// 32 bytes of entropy, base64url without padding.
		assert.Len(t, secret, 43)
		assert.NotContains(t, seen, secret)
		seen[secret] = struct{}{}
	}
}

func TestJWTService_HashSecretIsDeterministicHex(t *testing.T) {
	svc := newTestJWTService(t, 15*time.Minute)

	first := svc.HashSecret("some-secret")
	second := svc.HashSecret("some-secret")
	other := svc.HashSecret("another-secret")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", first)
}

func TestJWTService_TTLAccessors(t *testing.T) {
	svc := newTestJWTService(t, 15*time.Minute)

	assert.Equal(t, 15*time.Minute, svc.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, svc.RefreshTokenTTL())
}
