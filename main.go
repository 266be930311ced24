package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Manideep236692/IARE-ChatBot/internal/adapter/llm"
	"github.com/Manideep236692/IARE-ChatBot/internal/config"
	"github.com/Manideep236692/IARE-ChatBot/internal/logger"
	"github.com/Manideep236692/IARE-ChatBot/internal/metrics"
	"github.com/Manideep236692/IARE-ChatBot/internal/policy"
	"github.com/Manideep236692/IARE-ChatBot/internal/prompts"
	"github.com/Manideep236692/IARE-ChatBot/internal/repository"
	"github.com/Manideep236692/IARE-ChatBot/internal/service"
	handler "github.com/Manideep236692/IARE-ChatBot/internal/transport/http"
)

func main() {
	// A missing .env is fine outside local development.
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Int("internal_port", cfg.InternalPort).
		Str("database", cfg.DatabaseURL).
		Str("llm_base_url", cfg.LLMBaseURL).
		Str("llm_model", cfg.LLMModel).
		Msg("starting chat backend")

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set; every authenticated request will be rejected")
	}

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer db.Close()

	// Initialize AI responder
	llmClient := llm.NewLLMClient(cfg, logger.Component(log, "llm"))
	responder := llm.NewResponder(llmClient, cfg.LLMModel,
		llm.WithTemperature(cfg.LLMTemperature),
		llm.WithMaxTokens(cfg.LLMMaxTokens),
		llm.WithTimeout(cfg.LLMTimeout),
	)

	// Initialize persona
	persona, err := prompts.LoadPersona(cfg.PersonaFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load persona")
	}

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize policy engine")
	}

	// Initialize metrics
	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// Initialize service
	svc := service.New(db, responder, persona, policyEngine, cfg, logger.Component(log, "service"), m)

	externalServer := handler.NewExternalServer(svc, cfg, logger.Component(log, "http"), prometheus.DefaultGatherer)
	internalServer := handler.NewInternalServer(svc, logger.Component(log, "internal_http"))

	// Start external server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := externalServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start external server")
		}
	}()

	// Start internal server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.InternalPort)
		if err := internalServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start internal server")
		}
	}()

	log.Info().Int("port", cfg.HTTPPort).Msg("external API started")
	log.Info().Int("port", cfg.InternalPort).Msg("internal API started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down chat backend")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := externalServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown external server gracefully")
	}
	if err := internalServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown internal server gracefully")
	}

	log.Info().Msg("chat backend stopped")
}
