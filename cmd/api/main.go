package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"

	appanalytics "github.com/jhoicas/fertipos-api/internal/application/analytics"
	"github.com/jhoicas/fertipos-api/internal/application/auth"
	"github.com/jhoicas/fertipos-api/internal/application/sales"
	"github.com/jhoicas/fertipos-api/internal/application/usecase"
	"github.com/jhoicas/fertipos-api/internal/application/validation"
	"github.com/jhoicas/fertipos-api/internal/domain/access"
	"github.com/jhoicas/fertipos-api/internal/infrastructure/cartstore"
	"github.com/jhoicas/fertipos-api/internal/infrastructure/events"
	"github.com/jhoicas/fertipos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/fertipos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fertipos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/fertipos-api/internal/interfaces/http"
	"github.com/jhoicas/fertipos-api/pkg/config"
	"github.com/jhoicas/fertipos-api/pkg/logger"
	"github.com/jhoicas/fertipos-api/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("tax_rate", cfg.POS.TaxRate.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	resolver, err := access.NewResolver(access.DefaultTable)
	if err != nil {
		log.Fatal().Err(err).Msg("tabla de permisos")
	}
	formatter, err := money.NewFormatter(cfg.POS.Currency, language.English)
	if err != nil {
		log.Fatal().Err(err).Msg("moneda")
	}
	validate := validation.New()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Carritos: Redis si está configurado (varias instancias), memoria si no.
	var cartStore sales.CartStore
	if cfg.Redis.Enabled() {
		redisStore, err := cartstore.NewRedisStore(ctx, cfg.Redis, cfg.POS.CartTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisStore.Close()
		cartStore = redisStore
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: carritos en memoria, solo una instancia")
		cartStore = cartstore.NewMemoryStore(cfg.POS.CartTTL)
	}

	var publisher sales.EventPublisher = sales.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kafkaPub := events.NewKafkaPublisher(cfg.Kafka)
		defer kafkaPub.Close()
		publisher = kafkaPub
	}

	posMetrics := metrics.NewPOSMetrics(prometheus.DefaultRegisterer)
	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, resolver, validate, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	tenantUC := usecase.NewTenantUseCase(tenantRepo, txRunner, validate)
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo, validate)
	customerUC := usecase.NewCustomerUseCase(customerRepo, validate)
	tenantStatus := usecase.NewTenantStatusService(tenantRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, resolver)
	posUC := sales.NewPOSSessionUseCase(sales.SessionDeps{
		Store:     cartStore,
		Products:  productRepo,
		Customers: customerRepo,
		Tx:        txRunner,
		Publisher: publisher,
		Metrics:   posMetrics,
		Validate:  validate,
		Log:       log,
		TaxRate:   cfg.POS.TaxRate,
	})
	salesUC := sales.NewSalesUseCase(saleRepo, tenantRepo, infrapdf.NewReceiptRenderer(formatter), formatter)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), httpMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fertipos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		hctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(hctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "db": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		TenantUC:    tenantUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		POSUC:       posUC,
		SalesUC:     salesUC,
		DashboardUC: dashboardUC,
		TenantCheck: tenantStatus,
		Resolver:    resolver,
		LoginLimit:  httpRouter.NewIPRateLimiter(cfg.HTTP.LoginRPS, cfg.HTTP.LoginBurst),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// ventas cobradas cuyo evento aún se está publicando
	posUC.Wait()

	log.Info().Msg("aplicación detenida")
}
