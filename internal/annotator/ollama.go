package annotator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ollama/ollama/api"
)

// DefaultOllamaModel is used when no model is configured.
const DefaultOllamaModel = "llama3.2:3b"

// NewOllama creates an annotator backed by a local Ollama server (OLLAMA_HOST).
// The server is health checked so an offline service fails at construction.
func NewOllama(ctx context.Context, model string) (Annotator, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	if model == "" {
		model = DefaultOllamaModel
	}

	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := client.List(checkCtx); err != nil {
		return nil, fmt.Errorf("%w: ollama: %v", ErrUnavailable, err)
	}

	return &llmLinker{
		name: "ollama",
		complete: func(ctx context.Context, prompt string) (string, error) {
			stream := false
			req := &api.GenerateRequest{
				Model:  model,
				Prompt: prompt,
				Format: json.RawMessage(`"json"`),
				Stream: &stream,
			}
			var respText string
			err := client.Generate(ctx, req, func(resp api.GenerateResponse) error {
				respText += resp.Response
				return nil
			})
			return respText, err
		},
	}, nil
}
