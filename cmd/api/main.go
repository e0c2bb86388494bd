package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fraudlens/internal/api"
	"fraudlens/internal/api/handlers"
	"fraudlens/internal/classifier"
	"fraudlens/internal/config"
	"fraudlens/internal/domain/services"
	"fraudlens/internal/explain"
	"fraudlens/internal/infrastructure/cache"
	"fraudlens/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting FraudLens")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional; without it rate limiting and the shared result
	// cache tier are disabled.
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without shared cache")
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	// Gemini explanation enrichment (optional)
	explainer, err := explain.New(ctx, cfg.Gemini, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize explanation generator, using mechanical explanations")
		explainer = nil
	} else if explainer.Enabled() {
		log.Info().Str("model", cfg.Gemini.Model).Msg("AI explanation enrichment enabled")
	}

	// Per-channel classifier chains: fine-tuned model, then zero-shot,
	// then the static neutral verdict.
	smsClassifier := buildChain(cfg.Classifier, "sms", classifier.SMSLabels(), log)
	emailClassifier := buildChain(cfg.Classifier, "email", classifier.EmailLabels(), log)
	chatClassifier := buildChain(cfg.Classifier, "chat", classifier.ChatLabels(), log)

	// Analyzers
	resultCache := cache.NewResultCache(cfg.Analysis.CacheMaxSize)
	smsAnalyzer := services.NewSMSAnalyzer(smsClassifier, explainerOrNil(explainer), services.DefaultSMSFusionConfig(), log)
	emailAnalyzer := services.NewEmailAnalyzer(emailClassifier, explainerOrNil(explainer), services.DefaultEmailFusionConfig(), resultCache, redisCache, cfg.Analysis.CacheTTL, log)
	chatAnalyzer := services.NewChatAnalyzer(chatClassifier, explainerOrNil(explainer), services.DefaultChatFusionConfig(), log)
	usage := services.NewUsageTracker()
	log.Info().Int("cache_max_size", cfg.Analysis.CacheMaxSize).Msg("analyzers initialized")

	// Initialize handlers
	h := handlers.NewHandlers(handlers.Dependencies{
		SMSAnalyzer:   smsAnalyzer,
		EmailAnalyzer: emailAnalyzer,
		ChatAnalyzer:  chatAnalyzer,
		Usage:         usage,
		Cache:         redisCache,
		Logger:        log,
		Version:       cfg.App.Version,
	})

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// buildChain assembles a channel's classifier fallback chain
func buildChain(cfg config.ClassifierConfig, channel string, labels classifier.LabelSet, log *logger.Logger) classifier.Classifier {
	var strategies []classifier.Classifier

	if model := cfg.PrimaryModels[channel]; model != "" && cfg.BaseURL != "" {
		strategies = append(strategies, classifier.NewTextClassificationClient(classifier.HTTPConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   model,
			Timeout: cfg.Timeout,
		}, labels, log))
	}
	if cfg.ZeroShotModel != "" && cfg.BaseURL != "" {
		strategies = append(strategies, classifier.NewZeroShotClient(classifier.HTTPConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.ZeroShotModel,
			Timeout: cfg.Timeout,
		}, labels, log))
	}
	strategies = append(strategies, classifier.NewStatic())

	return classifier.NewFallbackChain(log, strategies...)
}

// explainerOrNil converts a disabled generator into a nil Explainer so
// analyzers skip the enrichment call entirely
func explainerOrNil(g *explain.Generator) services.Explainer {
	if g == nil || !g.Enabled() {
		return nil
	}
	return g
}
