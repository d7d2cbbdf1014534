package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	auth := app.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	onboarding := app.Group("/onboarding")
	onboarding.Post("/register", handler.Register)
	onboarding.Post("/create-portfolio", handler.AuthRequired, handler.CreatePortfolio)

	admin := app.Group("/admin", handler.AuthRequired, handler.SuperuserOnly)
	admin.Post("/impersonate", handler.Impersonate)
	admin.Post("/stop-impersonation", handler.StopImpersonation)
	admin.Get("/impersonation-status", handler.ImpersonationStatus)
	admin.Get("/users", handler.ListUsers)
}
