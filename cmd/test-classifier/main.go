// Manual harness for the emotion classifier against the live LLM API.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/emotion"
	"github.com/Conceptual-Machines/moodtunes-agents-go/config"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: Could not load .env file: %v", err)
		log.Println("   Continuing with environment variables...")
	}

	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Println("⚠️  No LLM API key set (OPENAI_API_KEY or GEMINI_API_KEY), skipping live classification run")
		return
	}

	cfg := config.FromEnv()
	agent := emotion.NewEmotionAgent(&cfg)

	samples := []string{
		"I feel amazing and joyful today",
		"This endless rain is making me so gloomy",
		"I could run a marathon right now!",
		"Honestly I'm terrified about tomorrow's interview",
		"Just a quiet evening with a cup of tea",
	}

	ctx := context.Background()

	for i, sample := range samples {
		fmt.Printf("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
		fmt.Printf("Test %d/%d: %s\n", i+1, len(samples), sample)
		fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

		startTime := time.Now()

		result, err := agent.Classify(ctx, sample)
		if err != nil {
			log.Printf("❌ Error: %v", err)
			continue
		}

		fmt.Printf("✅ Emotion: %s (%v)\n", result, time.Since(startTime))

		// Small delay between tests
		if i < len(samples)-1 {
			time.Sleep(500 * time.Millisecond)
		}
	}

	fmt.Printf("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("✅ All tests completed!\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}
