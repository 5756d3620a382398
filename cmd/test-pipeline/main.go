// Manual harness for the full text-to-tracks pipeline against live APIs.
// Without Spotify credentials the tracks come from the fallback banks.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/curator"
	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/emotion"
	weatheragent "github.com/Conceptual-Machines/moodtunes-agents-go/agents/weather"
	"github.com/Conceptual-Machines/moodtunes-agents-go/catalog"
	"github.com/Conceptual-Machines/moodtunes-agents-go/config"
	"github.com/Conceptual-Machines/moodtunes-agents-go/recommend"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: Could not load .env file: %v", err)
		log.Println("   Continuing with environment variables...")
	}

	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Println("⚠️  No LLM API key set (OPENAI_API_KEY or GEMINI_API_KEY), skipping live pipeline run")
		return
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	var catalogService *catalog.Service
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		svc, err := catalog.NewService(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		if err != nil {
			log.Printf("⚠️  Spotify catalog unavailable (%v), using fallback banks", err)
		} else {
			catalogService = svc
		}
	} else {
		fmt.Println("⚠️  Spotify credentials not set, tracks will come from the fallback banks")
	}

	pipeline := recommend.NewPipeline(
		emotion.NewEmotionAgent(&cfg),
		weatheragent.NewWeatherAgent(&cfg),
		curator.NewCuratorAgentWithCatalog(catalogService),
	)

	inputs := []string{
		"I feel amazing and joyful today",
		"Everything is going wrong and I just want to cry",
		"Full of energy, ready to take on the world",
	}

	for i, text := range inputs {
		fmt.Printf("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
		fmt.Printf("Test %d/%d: %s\n", i+1, len(inputs), text)
		fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

		startTime := time.Now()

		mood, err := pipeline.Classify(ctx, text)
		if err != nil {
			log.Printf("❌ Error: %v", err)
			continue
		}

		rec, err := pipeline.SearchByMood(ctx, mood, 10)
		if err != nil {
			log.Printf("❌ Error: %v", err)
			continue
		}

		fmt.Printf("✅ %s (%d tracks in %v)\n\n", mood, len(rec.Tracks), time.Since(startTime))
		if rec.Degraded {
			fmt.Printf("⚠️  Degraded: %s\n\n", rec.Reason)
		}
		for j, track := range rec.Tracks {
			fmt.Printf("  %2d. %s / %s", j+1, track.Name, track.Artist)
			if track.Album != "" {
				fmt.Printf(" [%s]", track.Album)
			}
			fmt.Println()
		}

		// Small delay between tests
		if i < len(inputs)-1 {
			time.Sleep(1 * time.Second)
		}
	}

	fmt.Printf("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("✅ All tests completed!\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}
