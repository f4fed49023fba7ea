package assistant

import (
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LEARNPATH_CHAT_PROVIDER", "anthropic")
	t.Setenv("LEARNPATH_ANTHROPIC_API_KEY", "test-key")
	t.Setenv("LEARNPATH_ANTHROPIC_MODEL", "claude-sonnet")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want test-key", cfg.Anthropic.APIKey)
	}
	if cfg.Anthropic.Model != "claude-sonnet" {
		t.Errorf("Model = %q, want claude-sonnet", cfg.Anthropic.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "k"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "llama"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "anth-key")
	t.Setenv("GEMINI_API_KEY", "gem-key")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a discovered config")
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic (priority over gemini)", cfg.Provider)
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("gpt-4o-mini", openaiModels); got != "gpt-4o-mini" {
		t.Errorf("resolveModel friendly = %q", got)
	}
	if got := resolveModel("claude-haiku", anthropicModels); got != "claude-haiku-4-5-20251001" {
		t.Errorf("resolveModel friendly = %q", got)
	}
	if got := resolveModel("custom-model-id", openaiModels); got != "custom-model-id" {
		t.Errorf("resolveModel passthrough = %q", got)
	}
}
