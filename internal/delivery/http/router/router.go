// Package router contains routing setup for the HTTP delivery.
package router

import (
	"estate/internal/delivery/http/middleware"
	"estate/internal/delivery/http/router/handler"
	"estate/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	AgentHandler   *handler.AgentHandler
	ListingHandler *handler.ListingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	agentHandler   *handler.AgentHandler
	listingHandler *handler.ListingHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		agentHandler:   params.AgentHandler,
		listingHandler: params.ListingHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authed := r.authMiddleware.Authenticate
	admin := r.authMiddleware.RequireRole(entity.RoleAdmin)
	adminOrAgent := r.authMiddleware.RequireRoles(entity.RoleAdmin, entity.RoleAgent)

	users := e.Group("/api/users")
	{
		users.POST("/signup", r.accountHandler.Signup)
		users.POST("/login", r.accountHandler.Login)

		users.POST("/logout", r.accountHandler.Logout, authed)
		users.GET("/profile", r.accountHandler.GetProfile, authed)
		users.PUT("/profile", r.accountHandler.UpdateProfile, authed)
		users.GET("/stats", r.accountHandler.DashboardStats, authed)

		users.GET("/", r.accountHandler.List, authed, admin)
		users.DELETE("/:id", r.accountHandler.Delete, authed, admin)
		users.PUT("/:id/status", r.accountHandler.UpdateStatus, authed, admin)
		users.PUT("/:id/role", r.accountHandler.UpdateRole, authed, admin)
	}

	agents := e.Group("/api/agents")
	{
		agents.GET("/profile", r.agentHandler.GetProfile, authed)
		agents.PUT("/profile", r.agentHandler.UpdateProfile, authed)

		agents.GET("/", r.agentHandler.List)
		agents.GET("/:slug", r.agentHandler.GetBySlug)

		agents.POST("/", r.agentHandler.Create, authed, admin)
		agents.PUT("/:id", r.agentHandler.UpdateByID, authed, admin)
		agents.PUT("/:id/status", r.agentHandler.UpdateStatus, authed, admin)
	}

	properties := e.Group("/api/properties")
	{
		properties.GET("/", r.listingHandler.List)
		properties.GET("/:slug", r.listingHandler.GetBySlug)

		properties.POST("/", r.listingHandler.Create, authed, adminOrAgent)
		properties.PUT("/:id", r.listingHandler.Update, authed, adminOrAgent)
		properties.PUT("/:id/agents", r.listingHandler.AssignAgents, authed, adminOrAgent)
		properties.PUT("/:id/status", r.listingHandler.UpdateStatus, authed, adminOrAgent)

		properties.DELETE("/:id", r.listingHandler.Delete, authed, admin)
	}
}
