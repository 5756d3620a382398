// MoodTunes wires the worker agents behind the message bus and serves the
// demo page plus the JSON API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/coordination"
	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/curator"
	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/emotion"
	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/memory"
	weatheragent "github.com/Conceptual-Machines/moodtunes-agents-go/agents/weather"
	"github.com/Conceptual-Machines/moodtunes-agents-go/catalog"
	"github.com/Conceptual-Machines/moodtunes-agents-go/config"
	"github.com/Conceptual-Machines/moodtunes-agents-go/memorystore"
	"github.com/Conceptual-Machines/moodtunes-agents-go/recommend"
	"github.com/Conceptual-Machines/moodtunes-agents-go/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: Could not load .env file: %v", err)
		log.Println("   Continuing with environment variables...")
	}

	cfg := config.FromEnv()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
		}); err != nil {
			log.Printf("⚠️  Sentry init failed: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The catalog is shared by the curator agent and the health endpoint.
	var catalogService *catalog.Service
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		svc, err := catalog.NewService(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		if err != nil {
			log.Printf("⚠️  Spotify catalog unavailable (%v), serving curated fallbacks only", err)
		} else {
			catalogService = svc
		}
	} else {
		log.Println("⚠️  SPOTIFY_CLIENT_ID / SPOTIFY_CLIENT_SECRET not set, serving curated fallbacks only")
	}

	emotionAgent := emotion.NewEmotionAgent(&cfg)
	weatherAgent := weatheragent.NewWeatherAgent(&cfg)
	curatorAgent := curator.NewCuratorAgentWithCatalog(catalogService)
	pipeline := recommend.NewPipeline(emotionAgent, weatherAgent, curatorAgent)
	memoryAgent := memory.NewMemoryAgent(memorystore.NewStore(cfg.MemoryDir))

	coordinator := coordination.NewCoordinator(pipeline, curatorAgent, memoryAgent)
	// The bus outlives the signal context so draining requests can finish.
	if err := coordinator.Start(context.Background()); err != nil {
		log.Fatalf("❌ ERROR: starting coordinator: %v", err)
	}
	defer coordinator.Close()

	srv := server.NewServer(&cfg, coordinator, catalogService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("❌ ERROR: server: %v", err)
		}
	case <-ctx.Done():
		log.Println("🛑 Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️  Forced shutdown: %v", err)
		}
	}

	log.Println("👋 Goodbye")
}
