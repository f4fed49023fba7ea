package assistant

import (
	"context"
	"fmt"

	"github.com/learnpath/learnpath/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// event logging middleware.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown chat provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base. The
	// timeout sits outermost so it bounds the whole retry sequence.
	wrapped := Provider(base)
	if events != nil {
		wrapped = WithLogging(wrapped, events)
	}
	wrapped = WithRetry(wrapped, cfg.Retry)
	return WithTimeout(wrapped, cfg.Timeout), nil
}

// NewProviderFromEnv builds a provider from LEARNPATH_* variables, falling
// back to probing the standard API key variables.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no chat provider configured")
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, events)
}
