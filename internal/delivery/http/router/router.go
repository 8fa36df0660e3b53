// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler *handler.SessionHandler
	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler *handler.SessionHandler
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler: params.SessionHandler,
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register/talent", r.authHandler.RegisterTalent)
		authGroup.POST("/register/employer", r.authHandler.RegisterEmployer)
		authGroup.POST("/login", r.sessionHandler.Login)
		authGroup.POST("/refresh", r.sessionHandler.Refresh)
		authGroup.POST("/logout", r.sessionHandler.Logout)
		authGroup.POST("/verify-email", r.authHandler.VerifyEmail)
		authGroup.POST("/password-reset/request", r.authHandler.RequestPasswordReset)
		authGroup.POST("/password-reset/confirm", r.authHandler.ResetPassword)
	}

	// Ending every session requires proving who you are first
	protectedAuthGroup := e.Group("/auth")
	protectedAuthGroup.Use(r.authMiddleware.Authenticate)
	{
		protectedAuthGroup.POST("/logout-all", r.sessionHandler.LogoutAll)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.sessionHandler.Me)
		userGroup.DELETE("/account", r.authHandler.DeleteAccount)
	}
}
