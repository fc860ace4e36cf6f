package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/access"
	httptransport "github.com/spec-kit/helpdesk/internal/api/http"
	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/persistence"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/repository/memory"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/internal/worker"
)

type repositories struct {
	users    repository.UserRepository
	tickets  repository.TicketRepository
	comments repository.CommentRepository
}

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
		if err := persistence.RunMigrations(ctx, cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := buildRepositories(pg)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	policy := access.Policy{EnforceOwnership: cfg.Auth.EnforceOwnership}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: repos.users})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repos.tickets,
		Policy:     policy,
		Dispatcher: dispatcher,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		CommentRepo:   repos.comments,
		TicketService: ticketService,
		Policy:        policy,
		Dispatcher:    dispatcher,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TicketService: ticketService,
		UserRepo:      repos.users,
		Logger:        logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	var publisher *events.RedisPublisher
	if redis.Enabled() {
		publisher = events.NewRedisPublisher(redis.Client, cfg.Redis.EventsChannel)
	}
	worker.StartNotificationWorker(dispatcher, notificationService, publisher, logger)

	var sweeper *worker.SweepWorker
	if cfg.Sweep.Enabled {
		sweeper = worker.NewSweepWorker(assignmentService, cfg.Sweep.Schedule, logger)
		if err := sweeper.Start(); err != nil {
			logger.Fatal("failed to schedule sweep", zap.Error(err))
		}
	}

	tokens := authService.TokenManager()
	cookie := auth.SessionCookie{Name: cfg.Auth.CookieName, Secure: cfg.App.IsProduction()}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService, cookie),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Dashboard:      handlers.NewDashboardHandler(cfg.App.Name),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
		RouteGate:      auth.NewRouteGate(tokens, cfg.Auth.CookieName, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if sweeper != nil {
		sweeper.Stop(shutdownCtx)
	}
	_ = app.ShutdownWithContext(shutdownCtx)
}

func buildRepositories(pg *persistence.Postgres) repositories {
	pool := pg.PoolHandle()
	if pool == nil {
		store := memory.NewStore()
		return repositories{users: store.Users(), tickets: store.Tickets(), comments: store.Comments()}
	}
	return repositories{
		users:    repository.NewUserRepository(pool),
		tickets:  repository.NewTicketRepository(pool),
		comments: repository.NewCommentRepository(pool),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
