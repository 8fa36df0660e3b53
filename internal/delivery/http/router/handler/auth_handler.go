package handler

import (
	"net/http"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/response"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles account lifecycle endpoints: registration, email
// verification, password reset and deletion.
type AuthHandler struct {
	accountUC usecase.AccountUsecase
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(accountUC usecase.AccountUsecase) *AuthHandler {
	return &AuthHandler{accountUC: accountUC}
}

type registerTalentRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Headline string `json:"headline"`
}

type registerEmployerRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	CompanyName string `json:"companyName" validate:"required"`
	Website     string `json:"website"`
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordResetConfirmRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// RegisterTalent creates a job seeker account.
func (h *AuthHandler) RegisterTalent(c echo.Context) error {
	var req registerTalentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_REQUEST", "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.accountUC.RegisterTalent(c.Request().Context(), &usecase.RegisterTalentInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Headline: req.Headline,
	})
	if err != nil {
		return err
	}

	return registeredResponse(c, out)
}

// RegisterEmployer creates a company account.
func (h *AuthHandler) RegisterEmployer(c echo.Context) error {
	var req registerEmployerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_REQUEST", "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.accountUC.RegisterEmployer(c.Request().Context(), &usecase.RegisterEmployerInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
		Website:     req.Website,
	})
	if err != nil {
		return err
	}

	return registeredResponse(c, out)
}

func registeredResponse(c echo.Context, out *usecase.RegisterOutput) error {
	return response.Success(c, http.StatusCreated, map[string]any{
		"id":    out.User.ID,
		"email": out.User.Email,
		"role":  out.User.Role,
	}, "Registration successful, please verify your email")
}

// VerifyEmail consumes a mailed verification token.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_REQUEST", "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.accountUC.VerifyEmail(c.Request().Context(), req.Email, req.Token); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Email verified")
}

// RequestPasswordReset mails a reset token. Always reports success so the
// endpoint cannot be used to probe which emails are registered.
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req passwordResetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_REQUEST", "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.accountUC.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "If the email is registered, a reset mail has been sent")
}

// ResetPassword consumes a reset token and sets a new password. All existing
// sessions are ended.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req passwordResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_REQUEST", "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.accountUC.ResetPassword(c.Request().Context(), req.Email, req.Token, req.NewPassword); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Password reset, please log in again")
}

// DeleteAccount removes the authenticated user's account.
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	if err := h.accountUC.DeleteAccount(c.Request().Context(), userID); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}
