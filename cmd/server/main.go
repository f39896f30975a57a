package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/config"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/handlers"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/middleware"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/services"
)

func main() {
	logger := security.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Critical("configuration load failed", err)
		os.Exit(1)
	}

	if err := database.Connect(database.Config{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	}); err != nil {
		logger.Critical("database connection failed", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.Database.URL); err != nil {
		logger.Critical("migrations failed", err)
		os.Exit(1)
	}

	secCfg := security.DefaultSecurityConfig()
	validator := security.NewValidationService(secCfg)
	monitor := security.NewSecurityMonitor(logger, secCfg, nil)
	lockout := security.NewAccountLockout(secCfg.AccountLockoutThreshold, secCfg.AccountLockoutDuration)

	loginLimiter := security.NewRateLimiter(secCfg.RateLimitLogin, time.Minute)
	incidentLimiter := security.NewRateLimiter(secCfg.RateLimitIncident, time.Minute)
	quizLimiter := security.NewRateLimiter(secCfg.RateLimitQuiz, time.Minute)
	defer loginLimiter.Stop()
	defer incidentLimiter.Stop()
	defer quizLimiter.Stop()

	employeeRepo := repository.NewEmployeeRepository()
	companyRepo := repository.NewCompanyRepository()
	trainingRepo := repository.NewTrainingRepository()
	assignmentRepo := repository.NewAssignmentRepository()
	incidentRepo := repository.NewIncidentRepository()
	resourceRepo := repository.NewResourceRepository()
	announcementRepo := repository.NewAnnouncementRepository()
	attachmentRepo := repository.NewAttachmentRepository()
	auditRepo := repository.NewAuditRepository()
	statsRepo := repository.NewStatsRepository()

	authSvc := services.NewAuthService(
		employeeRepo, companyRepo, validator, logger,
		cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, secCfg.BcryptCost,
	)
	trainingSvc := services.NewTrainingService(assignmentRepo, trainingRepo, logger)
	quizSvc := services.NewQuizService(trainingRepo, assignmentRepo, cfg.Training.QuizPassPolicy, logger)
	incidentSvc := services.NewIncidentService(incidentRepo, validator, logger)

	app := fiber.New(fiber.Config{
		AppName:      "worksafe",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    secCfg.MaxAttachmentSize + 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.SecureHeaders())
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.InputValidation(logger))

	handlers.SetupRoutes(app, handlers.Deps{
		Auth:          handlers.NewAuthHandler(authSvc, lockout, monitor, logger),
		Training:      handlers.NewTrainingHandler(trainingSvc, quizSvc, logger),
		Incidents:     handlers.NewIncidentHandler(incidentSvc, attachmentRepo, auditRepo, validator, logger),
		Resources:     handlers.NewResourceHandler(resourceRepo, attachmentRepo, auditRepo, validator, logger),
		Employees:     handlers.NewEmployeeHandler(employeeRepo, auditRepo, logger),
		Announcements: handlers.NewAnnouncementHandler(announcementRepo, validator, logger),
		Dashboard:     handlers.NewDashboardHandler(statsRepo, auditRepo, monitor, logger),

		AuthService: authSvc,
		Logger:      logger,

		LoginLimiter:    loginLimiter,
		IncidentLimiter: incidentLimiter,
		QuizLimiter:     quizLimiter,
	})

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdown
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			logger.Error("shutdown error", err)
		}
	}()

	logger.Info("worksafe listening on :" + cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Critical("server stopped", err)
		os.Exit(1)
	}
}
