package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/rupee-vest/rupee_vest/internal/auth"
	"github.com/rupee-vest/rupee_vest/internal/config"
	"github.com/rupee-vest/rupee_vest/internal/identity"
	"github.com/rupee-vest/rupee_vest/internal/investment"
	"github.com/rupee-vest/rupee_vest/internal/ledger"
	"github.com/rupee-vest/rupee_vest/internal/middleware"
	"github.com/rupee-vest/rupee_vest/internal/notification"
	"github.com/rupee-vest/rupee_vest/internal/plan"
	"github.com/rupee-vest/rupee_vest/internal/transaction"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	AMQP   *amqp.Connection
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. With a database it
// wires the PostgreSQL repositories; without one (dev only) everything runs
// in memory and gets seeded with demo data.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	// Storage backends.
	var (
		ledgerBackend   ledger.Ledger
		identityRepo    identity.Repository
		planRepo        plan.Repository
		transactionRepo transaction.Repository
		investmentRepo  investment.Repository
	)
	if d.DB != nil {
		ledgerBackend = ledger.NewPostgresLedger(d.DB)
		identityRepo = identity.NewPostgresRepository(d.DB)
		planRepo = plan.NewPostgresRepository(d.DB)
		transactionRepo = transaction.NewPostgresRepository(d.DB)
		investmentRepo = investment.NewPostgresRepository(d.DB)
	} else {
		ledgerBackend = ledger.NewInMemory()
		identityRepo = identity.NewMemoryRepository()
		planRepo = plan.NewMemoryRepository()
		transactionRepo = transaction.NewMemoryRepository(ledgerBackend)
		// Investments log their completed entries into the transaction store.
		investmentRepo = investment.NewMemoryRepository(ledgerBackend, transactionRepo)
	}

	var notifier notification.Notifier
	if d.AMQP != nil {
		amqpNotifier, err := notification.NewAMQPNotifier(d.AMQP)
		if err != nil {
			return fmt.Errorf("declare notification exchange: %w", err)
		}
		notifier = amqpNotifier
	} else {
		notifier = notification.NewLoggerNotifier(d.Logger)
	}

	// Services and handlers.
	identitySvc := identity.NewService(identityRepo)
	tokenSvc := auth.NewService(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	planSvc := plan.NewService(planRepo)
	transactionSvc := transaction.NewService(transactionRepo, ledgerBackend, notifier)
	investmentSvc := investment.NewService(investmentRepo, planSvc, nil, notifier)

	authHandler := auth.NewHandler(identitySvc, tokenSvc, ledgerBackend)
	planHandler := plan.NewHandler(planSvc)
	transactionHandler := transaction.NewHandler(transactionSvc)
	investmentHandler := investment.NewHandler(investmentSvc)

	if d.DB == nil && d.Cfg.IsDev() {
		if err := seedDemoData(identitySvc, identityRepo, ledgerBackend, planSvc); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		d.Logger.Info("seeded in-memory demo accounts and plans")
	}

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes.
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes. Idempotency runs after JWTAuth so replay keys are
	// scoped to the authenticated account.
	protected := api.Group("", middleware.JWTAuth(tokenSvc))
	if d.Cache != nil {
		protected.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	RegisterWalletRoutes(protected, identitySvc, ledgerBackend)
	RegisterPlanRoutes(protected, planHandler)
	RegisterTransactionRoutes(protected, transactionHandler)
	RegisterInvestmentRoutes(protected, investmentHandler)

	// Admin routes.
	admin := protected.Group("/admin", middleware.AdminOnly())
	RegisterAdminRoutes(admin, transactionHandler, planHandler, identitySvc, ledgerBackend)

	return nil
}
