package annotator

import (
	"context"
	"fmt"
)

// Config selects and configures a backend.
type Config struct {
	// Backend is one of "kb", "ollama", "anthropic".
	Backend string

	KBPath   string
	MaxNGram int

	OllamaModel string

	AnthropicModel   string
	AnthropicAPIKey  string
	AnthropicBaseURL string
}

// Backends lists the accepted Config.Backend values.
var Backends = []string{"kb", "ollama", "anthropic"}

// New constructs the configured annotator. Errors here mean the pipeline
// cannot run at all.
func New(ctx context.Context, cfg Config) (Annotator, error) {
	switch cfg.Backend {
	case "", "kb":
		l, err := OpenKB(ctx, cfg.KBPath, cfg.MaxNGram)
		if err != nil {
			return nil, err
		}
		return l, nil
	case "ollama":
		return NewOllama(ctx, cfg.OllamaModel)
	case "anthropic":
		return NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicBaseURL)
	default:
		return nil, fmt.Errorf("%w %q (valid: %v)", ErrUnknownBackend, cfg.Backend, Backends)
	}
}
