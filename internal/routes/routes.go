package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/livemarket/internal/config"
	"github.com/example/livemarket/internal/handlers"
	"github.com/example/livemarket/internal/middleware"
	"github.com/example/livemarket/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	mailer := services.NewMailer(cfg)
	telegram := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	otpService := services.NewOTPService(db, cfg, mailer)
	registrationService := services.NewRegistrationService(db, cfg, otpService, telegram)
	authService := services.NewAuthService(db, cfg, mailer)

	registrationHandler := handlers.NewRegistrationHandler(registrationService, otpService)
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(db, mailer, telegram)
	landingHandler := handlers.NewLandingHandler(db)
	healthHandler := handlers.NewHealthHandler(db)

	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Public registration flow
	registration := api.Group("/public/registration")
	registration.Post("/initiate", registrationHandler.Initiate)
	registration.Get("/status", registrationHandler.Status)
	registration.Post("/send-otp", registrationHandler.SendOTP)
	registration.Post("/verify-otp", registrationHandler.VerifyOTP)
	registration.Post("/complete", registrationHandler.Complete)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/verify-reset-code", authHandler.VerifyResetCode)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Landing page content
	landing := api.Group("/landing")
	landing.Get("/faqs", landingHandler.ListFaqs)
	landing.Get("/features", landingHandler.ListFeatures)
	landing.Get("/footer", landingHandler.GetFooter)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
	admin.Get("/dashboard", adminHandler.DashboardStats)
	admin.Get("/registrations", adminHandler.ListRegistrations)
	admin.Get("/businesses", adminHandler.ListBusinesses)
	admin.Post("/businesses/:id/approve", adminHandler.ApproveBusiness)
	admin.Post("/businesses/:id/reject", adminHandler.RejectBusiness)

	admin.Post("/faqs", landingHandler.CreateFaq)
	admin.Put("/faqs/:id", landingHandler.UpdateFaq)
	admin.Delete("/faqs/:id", landingHandler.DeleteFaq)
	admin.Post("/features", landingHandler.CreateFeature)
	admin.Put("/features/:id", landingHandler.UpdateFeature)
	admin.Delete("/features/:id", landingHandler.DeleteFeature)
	admin.Put("/footer", landingHandler.UpdateFooter)
}
