package llm

import (
	"context"
	"fmt"
	"strings"
)

// ProviderFactory creates providers based on model name or explicit provider choice
type ProviderFactory struct {
	openaiAPIKey    string
	geminiAPIKey    string
	defaultProvider string
}

// NewProviderFactory creates a new provider factory. defaultProvider is used
// when neither an explicit provider name nor a recognized model prefix picks
// one; empty means openai.
func NewProviderFactory(openaiAPIKey, geminiAPIKey, defaultProvider string) *ProviderFactory {
	if defaultProvider == "" {
		defaultProvider = providerNameOpenAI
	}
	return &ProviderFactory{
		openaiAPIKey:    openaiAPIKey,
		geminiAPIKey:    geminiAPIKey,
		defaultProvider: defaultProvider,
	}
}

// GetProvider returns the appropriate provider for the given model/provider name
func (f *ProviderFactory) GetProvider(ctx context.Context, model, providerName string) (Provider, error) {
	// If provider is explicitly specified, use that
	if providerName != "" {
		return f.getProviderByName(ctx, providerName)
	}

	// Otherwise, infer from model name
	return f.getProviderByModel(ctx, model)
}

// getProviderByName creates a provider by explicit name
func (f *ProviderFactory) getProviderByName(ctx context.Context, providerName string) (Provider, error) {
	switch strings.ToLower(providerName) {
	case providerNameOpenAI:
		if f.openaiAPIKey == "" {
			return nil, fmt.Errorf("openai API key not configured")
		}
		return NewOpenAIProvider(f.openaiAPIKey), nil

	case providerNameGemini:
		if f.geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini API key not configured")
		}
		return NewGeminiProvider(ctx, f.geminiAPIKey)

	default:
		return nil, fmt.Errorf("unknown provider: %s (allowed: openai, gemini)", providerName)
	}
}

// getProviderByModel infers a provider from the model name, falling back to
// the configured default.
func (f *ProviderFactory) getProviderByModel(ctx context.Context, model string) (Provider, error) {
	modelLower := strings.ToLower(model)

	if strings.HasPrefix(modelLower, "gpt-") {
		return f.getProviderByName(ctx, providerNameOpenAI)
	}

	if strings.HasPrefix(modelLower, "gemini-") {
		return f.getProviderByName(ctx, providerNameGemini)
	}

	return f.getProviderByName(ctx, f.defaultProvider)
}
