// Package handler contains the HTTP handlers for the API.
package handler

import (
	"net/http"
	"time"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/response"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// refreshCookieName is the HttpOnly cookie carrying the refresh secret for
// browser clients. Non-browser clients may send the secret in the body instead.
const refreshCookieName = "refresh_token"

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	sessionUC usecase.SessionUsecase
}

// NewSessionHandler is the constructor for SessionHandler.
func NewSessionHandler(sessionUC usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenView struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"` // Refresh token lifetime in seconds.
}

// Login verifies credentials and establishes a session. For accounts that
// have not verified their email yet, no tokens are issued; the response
// reports that verification is pending and a fresh mail has been sent.
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_REQUEST", "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.sessionUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	if out.RequiresVerification {
		return response.Success(c, http.StatusOK, map[string]any{
			"requiresVerification": true,
		}, "Email verification required, a new verification mail has been sent")
	}

	setRefreshCookie(c, out.RefreshSecret, out.RefreshTTL)

	return response.Success(c, http.StatusOK, map[string]any{
		"token": tokenView{
			AccessToken: out.AccessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int64(out.RefreshTTL / time.Second),
		},
		"refreshToken": out.RefreshSecret,
		"user": map[string]any{
			"id":    out.User.ID,
			"email": out.User.Email,
			"name":  out.User.Name,
			"role":  out.User.Role,
		},
	}, "Login successful")
}

// Refresh rotates the refresh token and mints a new access token. The old
// secret is consumed whether or not the rotation succeeds, so a failed
// rotation also clears the client cookie.
func (h *SessionHandler) Refresh(c echo.Context) error {
	secret := h.refreshSecretFrom(c)
	if secret == "" {
		return response.Unauthorized(c, "UNAUTHORIZED", "Refresh token is missing")
	}

	out, err := h.sessionUC.Refresh(c.Request().Context(), secret)
	if err != nil {
		if errors.Is(err, domainerrors.ErrRefreshTokenInvalid) {
			clearRefreshCookie(c)
		}

		return err
	}

	setRefreshCookie(c, out.RefreshSecret, out.RefreshTTL)

	return response.Success(c, http.StatusOK, map[string]any{
		"token": tokenView{
			AccessToken: out.AccessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int64(out.RefreshTTL / time.Second),
		},
		"refreshToken": out.RefreshSecret,
	}, "Token refreshed")
}

// Logout revokes the presented refresh token. Succeeds even when the token
// is unknown or already revoked.
func (h *SessionHandler) Logout(c echo.Context) error {
	if secret := h.refreshSecretFrom(c); secret != "" {
		if err := h.sessionUC.Logout(c.Request().Context(), secret); err != nil {
			return err
		}
	}

	clearRefreshCookie(c)

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// LogoutAll ends every session of the authenticated user.
func (h *SessionHandler) LogoutAll(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	if err := h.sessionUC.LogoutAll(c.Request().Context(), userID); err != nil {
		return err
	}

	clearRefreshCookie(c)

	return response.Success(c, http.StatusOK, nil, "All sessions ended")
}

// Me returns the authenticated identity established by the auth middleware.
func (h *SessionHandler) Me(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"userID": c.Get(middleware.ContextKeyUserID),
		"role":   c.Get(middleware.ContextKeyRole),
	}, "")
}

// refreshSecretFrom pulls the refresh secret from the cookie, falling back
// to the request body for non-browser clients.
func (h *SessionHandler) refreshSecretFrom(c echo.Context) string {
	if cookie, err := c.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req refreshRequest
	if err := c.Bind(&req); err == nil {
		return req.RefreshToken
	}

	return ""
}

// The cookie is scoped to /auth rather than the whole API on purpose: only
// the refresh/logout endpoints ever consume the secret, so no other route
// receives it, XSS on unrelated pages included.
func setRefreshCookie(c echo.Context, secret string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    secret,
		Path:     "/auth",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
