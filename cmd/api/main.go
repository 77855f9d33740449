package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"thumbsmith/internal/http/handlers"
	httpapi "thumbsmith/internal/http/httpapi"
	"thumbsmith/internal/infra"
	"thumbsmith/internal/pipeline"
	"thumbsmith/internal/providers/genai"
	"thumbsmith/internal/providers/render"
	"thumbsmith/internal/providers/strategy"
	"thumbsmith/internal/session"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	client, err := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		TextModel:  cfg.GeminiTextModel,
		ImageModel: cfg.GeminiImageModel,
		HTTPClient: &http.Client{Timeout: cfg.ProviderTimeout},
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure gemini client")
	}

	synthesizer := strategy.NewGeminiSynthesizer(client)
	renderer := render.NewGeminiRenderer(client)

	sessions := session.NewStore(session.Options{
		TTL: cfg.SessionTTL,
		NewPipeline: func() *pipeline.Pipeline {
			return pipeline.New(synthesizer, renderer, logger)
		},
	})

	app := handlers.NewApp(cfg, logger, sessions)
	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
