package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/paddyguard/paddyguard-backend/internal/handlers"
	"github.com/paddyguard/paddyguard-backend/internal/middleware"
	"github.com/paddyguard/paddyguard-backend/internal/models"
	"github.com/paddyguard/paddyguard-backend/internal/services"
)

// Deps carries everything the route tree needs.
type Deps struct {
	Auth     *handlers.AuthHandler
	Recovery *handlers.RecoveryHandler
	Admin    *handlers.AdminHandler
	Predict  *handlers.PredictHandler
	Sessions *services.SessionService
	Redis    *redis.Client
}

func SetupRoutes(r *chi.Mux, d Deps) {
	// Public auth surface, rate limited per IP.
	r.Group(func(r chi.Router) {
		if d.Redis != nil {
			r.Use(middleware.AuthRateLimit(d.Redis))
		}
		r.Post("/api/auth/register", d.Auth.Register)
		r.Post("/api/auth/login", d.Auth.Login)
		r.Post("/api/auth/recovery/request", d.Recovery.Request)
		r.Post("/api/auth/recovery/verify", d.Recovery.Verify)
		r.Post("/api/auth/recovery/reset", d.Recovery.Reset)
	})

	// Logout works with or without a live session.
	r.Post("/api/auth/logout", d.Auth.Logout)

	// Authenticated surface. Role gating decides which screens a
	// client may drive: farmers get prediction, the admin gets the
	// roster.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Sessions))

		r.Get("/api/auth/me", d.Auth.Me)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleFarmer))
			r.Post("/api/predict", d.Predict.Predict)
			r.Get("/api/predictions", d.Predict.History)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/api/admin/farmers", d.Admin.GetFarmers)
		})
	})
}
