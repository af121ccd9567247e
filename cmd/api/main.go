package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/campus-helpdesk/grievance-service/internal/api/http"
	"github.com/campus-helpdesk/grievance-service/internal/api/http/handlers"
	"github.com/campus-helpdesk/grievance-service/internal/auth"
	"github.com/campus-helpdesk/grievance-service/internal/config"
	"github.com/campus-helpdesk/grievance-service/internal/events"
	"github.com/campus-helpdesk/grievance-service/internal/mailer"
	"github.com/campus-helpdesk/grievance-service/internal/observability"
	"github.com/campus-helpdesk/grievance-service/internal/persistence"
	"github.com/campus-helpdesk/grievance-service/internal/repository"
	"github.com/campus-helpdesk/grievance-service/internal/service"
	"github.com/campus-helpdesk/grievance-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	grievanceRepo := repository.NewGrievanceRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	workerRepo := repository.NewWorkerRepository(pool)
	bearerRepo := repository.NewOfficeBearerRepository(pool)
	authorityRepo := repository.NewAuthorityRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	smtpSender := mailer.NewSMTPSender(cfg.SMTP)
	var sender mailer.Sender
	if smtpSender.IsConfigured() {
		sender = smtpSender
	} else {
		logger.Warn("smtp not configured, outbound mail disabled")
	}

	notificationService := service.NewNotificationService(sender, dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	grievanceService := service.NewGrievanceService(cfg.Ticket, service.GrievanceDependencies{
		GrievanceRepo:  grievanceRepo,
		DepartmentRepo: departmentRepo,
		CategoryRepo:   categoryRepo,
		WorkerRepo:     workerRepo,
		BearerRepo:     bearerRepo,
		AuthorityRepo:  authorityRepo,
		Notifier:       notificationService,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	escalationService := service.NewEscalationService(grievanceRepo, dispatcher, logger)
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		DepartmentRepo: departmentRepo,
		CategoryRepo:   categoryRepo,
		LocationRepo:   locationRepo,
		WorkerRepo:     workerRepo,
		BearerRepo:     bearerRepo,
		AuthorityRepo:  authorityRepo,
		BcryptCost:     cfg.Auth.BcryptCost,
		Logger:         logger,
	})
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		BearerRepo:    bearerRepo,
		AuthorityRepo: authorityRepo,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), bearerRepo, authorityRepo)

	metrics := observability.NewMetrics()

	sweepLock := worker.NewRedisSweepLock(redis.Client, "grievance:escalation:sweep", cfg.Escalation.LockTTL())
	escalationWorker := worker.NewEscalationWorker(escalationService, sweepLock, cfg.Escalation.Interval(), metrics, logger)
	go escalationWorker.Run(ctx)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:            handlers.NewAuthHandler(authService),
		Grievances:      handlers.NewGrievancesHandler(grievanceService),
		StaffGrievances: handlers.NewStaffGrievancesHandler(grievanceService),
		Directory:       handlers.NewDirectoryHandler(directoryService),
		AuthMiddleware:  authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
