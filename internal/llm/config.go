package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/store"
)

// Config selects and configures a provider. API keys come from the
// standard provider environment variables, never from config files.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "mock".
	Provider string
	Model    string
	APIKey   string
	Retry    RetryConfig
}

// RetryConfig tunes the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig is conservative: grading is interactive.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// ConfigFromEnv builds a Config from REPASO_LLM_PROVIDER and the matching
// provider's API key variable.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Provider: os.Getenv("REPASO_LLM_PROVIDER"),
		Model:    os.Getenv("REPASO_LLM_MODEL"),
		Retry:    DefaultRetryConfig(),
	}
	if cfg.Provider == "" {
		return cfg, fmt.Errorf("REPASO_LLM_PROVIDER not set")
	}

	switch cfg.Provider {
	case "anthropic":
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "openai":
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	case "gemini":
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	case "mock":
		return cfg, nil
	default:
		return cfg, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("no API key set for provider %q", cfg.Provider)
	}
	return cfg, nil
}

// NewProvider creates the configured provider wrapped with logging and
// retry: caller → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg)
	case "openai":
		base, err = NewOpenAIProvider(cfg)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	wrapped := base
	if events != nil {
		wrapped = WithLogging(wrapped, cfg.Provider, events)
	}
	return WithRetry(wrapped, cfg.Retry), nil
}

// NewProviderFromEnv is the common entry point for the CLI.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo) (Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, events)
}
