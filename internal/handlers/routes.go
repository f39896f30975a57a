package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/middleware"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/services"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Auth          *AuthHandler
	Training      *TrainingHandler
	Incidents     *IncidentHandler
	Resources     *ResourceHandler
	Employees     *EmployeeHandler
	Announcements *AnnouncementHandler
	Dashboard     *DashboardHandler

	AuthService *services.AuthService
	Logger      *security.Logger

	LoginLimiter    *security.RateLimiter
	IncidentLimiter *security.RateLimiter
	QuizLimiter     *security.RateLimiter
}

// SetupRoutes registers the full API surface. All /api routes except the
// auth group require a bearer token; role guards are applied per group.
func SetupRoutes(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if !database.IsConnected() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register/company", d.Auth.RegisterCompany)
	auth.Post("/register/employee", d.Auth.RegisterEmployee)
	auth.Post("/login", middleware.LoginGuard(d.LoginLimiter, d.Logger), d.Auth.Login)

	protected := api.Use(middleware.Protected(d.AuthService, d.Logger))

	training := protected.Group("/training")
	training.Get("/topics", d.Training.ListTopics)
	training.Get("/progress", d.Training.GetProgress)
	training.Get("/progress/:matricola", d.Training.GetProgress)
	training.Get("/assignments", d.Training.ListAssigned)
	training.Get("/assignments/:matricola", d.Training.ListAssigned)
	training.Post("/assignments/:id/complete", d.Training.Complete)
	training.Patch("/assignments/:id/status", d.Training.UpdateStatus)
	training.Post("/quizzes/:id/submit", middleware.RateLimit(d.QuizLimiter, d.Logger), d.Training.SubmitQuiz)

	incidents := protected.Group("/incidents")
	incidents.Post("/", middleware.RateLimit(d.IncidentLimiter, d.Logger), d.Incidents.Create)
	incidents.Get("/", middleware.SupervisorOnly(d.Logger), d.Incidents.ListCompany)
	incidents.Get("/mine", d.Incidents.ListMine)
	incidents.Get("/:id", d.Incidents.Get)
	incidents.Patch("/:id/status", middleware.MaintainerOnly(d.Logger), d.Incidents.UpdateStatus)
	incidents.Post("/:id/attachments", d.Incidents.UploadAttachment)
	incidents.Get("/:id/attachments", d.Incidents.ListAttachments)

	protected.Get("/attachments/:id", d.Incidents.DownloadAttachment)

	resources := protected.Group("/resources")
	resources.Post("/", middleware.RequireRoles(d.Logger, models.RoleSafetyOfficer), d.Resources.Create)
	resources.Get("/", d.Resources.List)
	resources.Get("/:id", d.Resources.Get)
	resources.Patch("/:id/status", middleware.MaintainerOnly(d.Logger), d.Resources.UpdateStatus)
	resources.Post("/:id/attachments", d.Resources.UploadAttachment)
	resources.Get("/:id/attachments", d.Resources.ListAttachments)

	employees := protected.Group("/employees")
	employees.Get("/", middleware.SupervisorOnly(d.Logger), d.Employees.List)
	employees.Get("/:matricola", d.Employees.GetProfile)
	employees.Patch("/:matricola", d.Employees.UpdateProfile)
	employees.Patch("/:matricola/role", middleware.EmployerOnly(d.Logger), d.Employees.UpdateRole)

	announcements := protected.Group("/announcements")
	announcements.Post("/", middleware.SupervisorOnly(d.Logger), d.Announcements.Create)
	announcements.Get("/", d.Announcements.List)
	announcements.Delete("/:id", middleware.SupervisorOnly(d.Logger), d.Announcements.Delete)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", middleware.SupervisorOnly(d.Logger), d.Dashboard.CompanyStats)
	dashboard.Get("/audit", middleware.EmployerOnly(d.Logger), d.Dashboard.AuditTrail)
}
