// @title Roadmap Check-up API
// @version 1.0
// @description Check-up program selector: three-step quiz, two-clinic price comparison and lead requests.
// @contact.name API Support
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"roadmap-checkup/internal/adapter"
	"roadmap-checkup/internal/adapter/sheets"
	"roadmap-checkup/internal/adapter/telegram"
	"roadmap-checkup/internal/cache"
	"roadmap-checkup/internal/config"
	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/handler"
	"roadmap-checkup/internal/logger"
	"roadmap-checkup/internal/metrics"
	"roadmap-checkup/internal/middleware"
	"roadmap-checkup/internal/service"
	"strconv"
	"syscall"
	"time"

	_ "roadmap-checkup/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const initialLoadTimeout = 30 * time.Second

func newCache(ctx context.Context, cfg config.RedisConfig) domain.Cache {
	if cfg.Address == "" {
		logger.Get().Warn("REDIS_ADDRESS not set, keeping quiz sessions in memory")
		return adapter.NewMemoryCacheAdapter()
	}
	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Get().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	logger.Get().Info("Successfully connected to Redis", zap.String("address", cfg.Address))
	return adapter.NewRedisCacheAdapter(redisClient)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if cfg.Telegram.BotToken == "" {
		appLogger.Warn("TELEGRAM_BOT_TOKEN not set, lead submissions will fail")
	}
	if cfg.Sheets.ReloadToken == "" {
		appLogger.Info("SHEETS_RELOAD_TOKEN not set, catalog reload endpoint is disabled")
	}

	quizMetrics := metrics.NewQuizMetrics(nil)
	sessionCache := newCache(context.Background(), cfg.Redis)

	sheetClient := sheets.NewClient(cfg.Sheets, nil)
	notifier := telegram.NewNotifier(cfg.Telegram, nil)

	catalogService := service.NewCatalogService(sheetClient, quizMetrics)
	sessionStore := service.NewSessionStore(sessionCache, cfg.Quiz.SessionTTL, cfg.Quiz.SubmitLockTTL)
	quizService := service.NewQuizService(sessionStore, catalogService, quizMetrics, cfg.Quiz.Location())
	leadService := service.NewLeadService(sessionStore, catalogService, notifier, quizMetrics, cfg.Quiz)

	// The quiz answers with "prices not loaded" until this finishes.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), initialLoadTimeout)
		defer cancel()
		catalog := catalogService.Reload(ctx)
		appLogger.Info("Catalog ready",
			zap.String("status", string(catalog.Status)),
			zap.Int("programs", len(catalog.Programs)),
		)
	}()

	quizHandler := handler.NewQuizHandler(quizService, leadService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	healthHandler := handler.NewHealthHandler(catalogService, sessionCache)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PATCH,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/healthz", healthHandler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app.Group("/api"), quizHandler, catalogHandler, cfg.Sheets.ReloadToken)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
