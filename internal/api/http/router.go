package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docubuddy/internal/api/http/handlers"
	"github.com/spec-kit/docubuddy/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Teams          *handlers.TeamsHandler
	Documents      *handlers.DocumentsHandler
	Workflow       *handlers.WorkflowHandler
	Chat           *handlers.ChatHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	protected.Get("/teams", cfg.Teams.ListTeams)
	protected.Get("/users/search", cfg.Teams.SearchUsers)
	protected.Get("/documents", cfg.Documents.ListDocuments)
	protected.Get("/documents/progress", cfg.Documents.UploadProgress)
	protected.Post("/documents", cfg.Documents.UploadDocuments)
	protected.Post("/chat/ask", cfg.Chat.Ask)

	admin := protected.Group("", auth.RequireAdmin())
	admin.Post("/teams", cfg.Teams.CreateTeam)
	admin.Get("/teams/:id/members", cfg.Teams.ListMembers)
	admin.Post("/teams/:id/members", cfg.Teams.AddMember)
	admin.Delete("/members/:id", cfg.Teams.RemoveMember)
	admin.Delete("/documents/:id", cfg.Documents.DeleteDocument)
	admin.Get("/workflow", cfg.Workflow.GetWorkflow)
	admin.Post("/workflow/select", cfg.Workflow.SelectTeam)
	admin.Post("/workflow/change", cfg.Workflow.ChangeTeam)
}
