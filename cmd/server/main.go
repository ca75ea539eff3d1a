package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rasoi-backend/internal/config"
	"rasoi-backend/internal/database"
	"rasoi-backend/internal/handlers"
	"rasoi-backend/internal/logger"
	"rasoi-backend/internal/metrics"
	"rasoi-backend/internal/middleware"
	"rasoi-backend/internal/repository"
	"rasoi-backend/internal/router"
	"rasoi-backend/internal/services"
	"rasoi-backend/internal/settings"
	"rasoi-backend/migrations"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.IsDevelopment()})
	defer log.Sync()
	log.Info("Starting Rasoi backend", zap.String("env", cfg.Env))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	deps := router.Deps{Log: log, Metrics: m, Gatherer: reg, TrustProxyHeaders: cfg.TrustProxyHeaders}

	// ──── Step 2: Initialize PostgreSQL Connection Pool (optional) ────
	var dishRepo *repository.DishRepo
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("PostgreSQL connection failed", zap.Error(err))
		}
		defer pool.Close()
		log.Info("PostgreSQL connected")

		// ──── Step 3: Run Database Migrations ────
		var migrationFS fs.FS = migrations.FS
		if cfg.MigrationsPath != "" {
			migrationFS = os.DirFS(cfg.MigrationsPath)
		}
		if err := database.RunMigrations(context.Background(), pool, migrationFS, log); err != nil {
			log.Fatal("Database migration failed", zap.Error(err))
		}
		log.Info("Database migrations applied")

		dishRepo = repository.NewDishRepo(pool)
		deps.Recipes = handlers.NewRecipeHandler(repository.NewRecipeRepo(pool), log)
	} else {
		log.Warn("DATABASE_URL not set, recipe and dish routes disabled")
	}

	// ──── Step 4: Initialize Redis Client (optional) ────
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal("Redis connection failed", zap.Error(err))
		}
		defer client.Close()
		redisClient = client
		log.Info("Redis connected")
	}

	var settingsStore settings.Store
	if redisClient != nil {
		settingsStore = settings.NewRedisStore(redisClient)
		deps.ProxyLimiter = middleware.NewRedisLimiter(redisClient, "ratelimit:functions", cfg.ProxyRequestsPerMin, time.Minute)
	} else {
		settingsStore = settings.NewMemoryStore()
		deps.ProxyLimiter = middleware.NewMemoryLimiter(cfg.ProxyRequestsPerMin, cfg.ProxyBurst)
		log.Warn("REDIS_URL not set, using in-process rate limiter and settings store")
	}

	// ──── Step 5: Initialize AI Clients ────
	gateway := services.NewGatewayClient(services.GatewayConfig{
		BaseURL:    cfg.AIGatewayURL,
		APIKey:     cfg.AIGatewayAPIKey,
		ImageModel: cfg.AIImageModel,
		TextModel:  cfg.AITextModel,
		Timeout:    cfg.AIRequestTimeout,
	}, log, m)
	if cfg.AIGatewayAPIKey == "" {
		log.Warn("LOVABLE_API_KEY not set, AI functions will answer 500 until it is configured")
	}

	var text services.TextGenerator = gateway
	if cfg.AITextProvider == "gemini" {
		geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, log, m)
		if err != nil {
			log.Fatal("Gemini client initialization failed", zap.Error(err))
		}
		defer geminiService.Close()
		text = geminiService
		log.Info("Gemini text backend initialized", zap.String("model", cfg.GeminiModel))
	}

	// ──── Initialize Services & Handlers ────
	dishService := services.NewDishService(gateway, text, log, m)
	chatService := services.NewChatService(text)

	deps.Proxy = handlers.NewProxyHandler(dishService, chatService, log)
	if dishRepo != nil {
		deps.Dishes = handlers.NewDishHandler(dishRepo, dishService, log)
	}

	if cfg.SupabaseJWTSecret != "" {
		deps.JWTAuth = middleware.NewJWTAuth(cfg.SupabaseJWTSecret)
		deps.Settings = handlers.NewSettingsHandler(settingsStore, log)
	} else {
		log.Warn("SUPABASE_JWT_SECRET not set, /api/v1 routes disabled")
	}

	// ──── Step 6: Start HTTP Server ────
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     router.New(deps),
		ReadTimeout: 15 * time.Second,
		// Image generation can take well over a minute.
		WriteTimeout: cfg.AIRequestTimeout*2 + 15*time.Second,
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

	log.Info("Rasoi backend ready",
		zap.String("addr", server.Addr),
		zap.String("functions", "/functions/v1"),
		zap.Bool("api", deps.JWTAuth != nil),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server error", zap.Error(err))
	}
}
