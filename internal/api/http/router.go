package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-helpdesk/grievance-service/internal/api/http/handlers"
	"github.com/campus-helpdesk/grievance-service/internal/auth"
	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Grievances      *handlers.GrievancesHandler
	StaffGrievances *handlers.StaffGrievancesHandler
	Directory       *handlers.DirectoryHandler
	AuthMiddleware  *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/staff/login", cfg.Auth.Login)

	// Public intake and tracking; submitters are unauthenticated.
	app.Post("/grievances", cfg.Grievances.Submit)
	app.Get("/grievances", cfg.Grievances.History)
	app.Get("/grievances/track/*", cfg.Grievances.Track)
	app.Get("/departments", cfg.Directory.ListDepartments)
	app.Get("/categories", cfg.Directory.ListCategories)
	app.Get("/locations", cfg.Directory.ListLocations)

	// Office bearers and admins manage their department's queue and workers.
	staff := app.Group("/staff", cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.StaffRoleOfficeBearer, domain.StaffRoleAdmin))
	staff.Get("/grievances", cfg.StaffGrievances.ListDepartment)
	staff.Post("/grievances/assign/*", cfg.StaffGrievances.Assign)
	staff.Post("/grievances/resolve/*", cfg.StaffGrievances.Resolve)
	staff.Get("/workers", cfg.Directory.ListWorkers)
	staff.Post("/workers", cfg.Directory.CreateWorker)
	staff.Delete("/workers/:id", cfg.Directory.DeleteWorker)

	// Authorities review level-1 escalations.
	authority := app.Group("/authority", cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.StaffRoleAuthority, domain.StaffRoleAdmin))
	authority.Get("/grievances/escalated/:level", cfg.StaffGrievances.ListEscalated)
	authority.Post("/grievances/revert/*", cfg.StaffGrievances.Revert)

	// Admin console.
	admin := app.Group("/admin", cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.StaffRoleAdmin))
	admin.Get("/grievances", cfg.StaffGrievances.ListAll)
	admin.Post("/grievances/revert-to-level1/*", cfg.StaffGrievances.RevertToLevel1)
	admin.Post("/grievances/transfer/*", cfg.StaffGrievances.Transfer)
	admin.Get("/dashboard/stats", cfg.StaffGrievances.Stats)
	admin.Post("/departments", cfg.Directory.CreateDepartment)
	admin.Delete("/departments/:id", cfg.Directory.DeleteDepartment)
	admin.Get("/categories", cfg.Directory.ListCategoriesAdmin)
	admin.Post("/categories", cfg.Directory.CreateCategory)
	admin.Delete("/categories/:id", cfg.Directory.DeleteCategory)
	admin.Post("/locations", cfg.Directory.CreateLocation)
	admin.Delete("/locations/:id", cfg.Directory.DeleteLocation)
	admin.Get("/office-bearers", cfg.Directory.ListOfficeBearers)
	admin.Post("/office-bearers", cfg.Directory.CreateOfficeBearer)
	admin.Delete("/office-bearers/:id", cfg.Directory.DeleteOfficeBearer)
	admin.Get("/authorities", cfg.Directory.ListAuthorities)
	admin.Post("/authorities", cfg.Directory.CreateAuthority)
	admin.Delete("/authorities/:id", cfg.Directory.DeleteAuthority)
}
