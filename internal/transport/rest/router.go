package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/felixonline247/opolo-cbt-app/internal/auth"
	"github.com/felixonline247/opolo-cbt-app/internal/client"
	"github.com/felixonline247/opolo-cbt-app/internal/payroll"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
	"github.com/felixonline247/opolo-cbt-app/internal/role"
	"github.com/felixonline247/opolo-cbt-app/internal/sales"
	"github.com/felixonline247/opolo-cbt-app/internal/settings"
	"github.com/felixonline247/opolo-cbt-app/internal/staff"
	"github.com/felixonline247/opolo-cbt-app/internal/transport/middleware"
	"github.com/felixonline247/opolo-cbt-app/internal/transport/swagger"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, staffHandler *staff.Handler, roleHandler *role.Handler, salesHandler *sales.Handler, payrollHandler *payroll.Handler, settingsHandler *settings.Handler, clientHandler *client.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				pr.Get("/users/me", authHandler.Me)

				if roleHandler != nil {
					pr.Get("/permissions", roleHandler.GetCatalog)

					pr.Route("/roles", func(rr chi.Router) {
						rr.Get("/", roleHandler.ListRoles)

						rr.Group(func(mr chi.Router) {
							mr.Use(middleware.RequirePermission(permission.ManageSettings))
							mr.Post("/", roleHandler.CreateRole)
							mr.Get("/{id}", roleHandler.GetRole)
							mr.Put("/{id}", roleHandler.UpdateRole)
							mr.Delete("/{id}", roleHandler.DeleteRole)
						})
					})
				}

				if salesHandler != nil {
					pr.Route("/sales", func(sr chi.Router) {
						sr.Post("/", salesHandler.CreateSale)
						sr.Get("/", salesHandler.ListSales)
						sr.Get("/summary", salesHandler.GetPerformanceSummary)
						sr.Get("/{id}", salesHandler.GetSale)
						sr.Patch("/{id}", salesHandler.UpdateSale)
						sr.Delete("/{id}", salesHandler.DeleteSale)
					})
				}

				if payrollHandler != nil {
					pr.Route("/payroll", func(pyr chi.Router) {
						pyr.Get("/", payrollHandler.GetPeriodCompensation)

						pyr.Group(func(rr chi.Router) {
							rr.Use(middleware.RequirePermission(permission.ViewReports))
							rr.Get("/report", payrollHandler.DownloadPeriodReport)
						})

						pyr.Route("/staff/{id}", func(str chi.Router) {
							str.Get("/payouts", payrollHandler.GetPayoutHistory)

							str.Group(func(dr chi.Router) {
								dr.Use(middleware.RequirePermission(permission.ProcessPayouts))
								dr.Post("/disburse", payrollHandler.DisbursePayout)
							})

							str.Group(func(mr chi.Router) {
								mr.Use(middleware.RequirePermission(permission.ManageStaff))
								mr.Patch("/strategy", payrollHandler.UpdateStrategy)
							})
						})
					})
				}

				if staffHandler != nil {
					pr.Route("/staff", func(str chi.Router) {
						str.Use(middleware.RequirePermission(permission.ManageStaff))
						str.Post("/", staffHandler.CreateStaff)
						str.Get("/", staffHandler.ListStaff)
						str.Get("/{id}", staffHandler.GetStaff)
						str.Patch("/{id}", staffHandler.UpdateStaff)
						str.Delete("/{id}", staffHandler.DeactivateStaff)
					})
				}

				if clientHandler != nil {
					pr.Route("/clients", func(cr chi.Router) {
						cr.Get("/", clientHandler.ListClients)
						cr.Get("/{id}", clientHandler.GetClient)

						cr.Group(func(mr chi.Router) {
							mr.Use(middleware.RequirePermission(permission.CreateSales))
							mr.Post("/", clientHandler.CreateClient)
						})

						cr.Group(func(mr chi.Router) {
							mr.Use(middleware.RequirePermission(permission.DeleteSales))
							mr.Delete("/{id}", clientHandler.DeleteClient)
						})
					})
				}

				if settingsHandler != nil {
					pr.Route("/settings", func(str chi.Router) {
						str.Get("/", settingsHandler.GetSettings)
						str.Get("/services", settingsHandler.ListServicePresets)

						str.Group(func(mr chi.Router) {
							mr.Use(middleware.RequirePermission(permission.ManageSettings))
							mr.Patch("/", settingsHandler.UpdateSettings)
							mr.Post("/services", settingsHandler.CreateServicePreset)
							mr.Delete("/services/{id}", settingsHandler.DeleteServicePreset)
						})
					})
				}
			})
		}
	})
}
