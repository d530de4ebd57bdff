package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"wellness-backend/internal/config"
	"wellness-backend/internal/database"
	"wellness-backend/internal/handlers"
	"wellness-backend/internal/middleware"
	"wellness-backend/internal/repository"
	"wellness-backend/internal/router"
	"wellness-backend/internal/scoring"
	"wellness-backend/internal/services"
	"wellness-backend/internal/websocket"
	"wellness-backend/migrations"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	setupLogging(cfg)
	log.Info("🚀 Starting Wellness Backend...")
	log.Info("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Info("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Info("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(context.Background(), pool, migrations.FS); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Info("✓ Database migrations applied")

	// ──── Step 5: Initialize Chat Upstream ────
	completer, closeCompleter, err := newCompleter(cfg)
	if err != nil {
		log.Fatalf("✗ Chat client initialization failed: %v", err)
	}
	defer closeCompleter()

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	metricRepo := repository.NewMetricRepo(pool)
	engine := scoring.New(cfg.ScoreWindowDays)
	notifier := services.NewNotifier(redisClients.Publisher)
	metricService := services.NewMetricService(metricRepo, engine, notifier)
	chatRelay := services.NewChatRelay(completer)

	// ──── Initialize Handlers ────
	metricHandler := handlers.NewMetricHandler(metricService)
	dashboardHandler := handlers.NewDashboardHandler(metricService)
	chatHandler := handlers.NewChatHandler(chatRelay)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.Subscriber, jwtAuth, cfg.FrontendURL)
	log.Info("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		metricHandler,
		dashboardHandler,
		chatHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Infof("✓ Wellness Backend ready on http://localhost:%s", cfg.Port)
	log.Infof("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Infof("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

func setupLogging(cfg *config.Config) {
	if cfg.Env == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown LOG_LEVEL, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// newCompleter picks the chat upstream for CHAT_PROVIDER. Without a credential
// the relay still runs and answers with the no-credential reply.
func newCompleter(cfg *config.Config) (services.Completer, func(), error) {
	noop := func() {}

	if cfg.ChatCredential() == "" {
		log.WithField("provider", cfg.ChatProvider).Warn("✗ No chat credential configured, chat will use fallback replies")
		return nil, noop, nil
	}

	switch cfg.ChatProvider {
	case config.ChatProviderGemini:
		gemini, err := services.NewGeminiCompleter(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, noop, err
		}
		log.WithField("model", cfg.GeminiModel).Info("✓ Gemini chat client initialized")
		return gemini, gemini.Close, nil
	case config.ChatProviderOpenAI:
		client := &http.Client{Timeout: 25 * time.Second}
		log.WithField("model", cfg.ChatModel).Info("✓ OpenAI-compatible chat client initialized")
		return services.NewOpenAICompleter(cfg.ChatAPIKey, cfg.ChatAPIURL, cfg.ChatModel, client), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown CHAT_PROVIDER %q", cfg.ChatProvider)
	}
}
