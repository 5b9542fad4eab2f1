package annotator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/untoldecay/entitylink/internal/debug"
	"github.com/untoldecay/entitylink/internal/storage"
)

// completeFunc sends a prompt to a model and returns its text response.
type completeFunc func(ctx context.Context, prompt string) (string, error)

// llmLinker asks a language model to find and link mentions in one call.
type llmLinker struct {
	name     string
	complete completeFunc
}

// Name implements Annotator.
func (l *llmLinker) Name() string {
	return l.name
}

// Annotate implements Annotator.
func (l *llmLinker) Annotate(ctx context.Context, text string) ([]Annotation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	resp, err := l.complete(ctx, buildPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("%s generation failed: %w", l.name, err)
	}
	return parseLinks(resp, text)
}

func buildPrompt(text string) string {
	return fmt.Sprintf(`You are an entity linker for Wikidata.

Find every named entity mentioned in the text below and link it to its Wikidata item.

RULES:
1. Output ONLY a valid JSON object.
2. The object MUST have exactly one key: "entities".
3. "entities" MUST be an array of objects with string fields "text", "id", "label" and "description".
4. "text" MUST be copied exactly from the input text.
5. "id" MUST be a Wikidata item id such as "Q42".
6. "label" and "description" are the Wikidata English label and description.
7. If no entity can be linked, output {"entities": []}.

Text:
%s

Required Output Format:
{
  "entities": [
    {"text": "Douglas Adams", "id": "Q42", "label": "Douglas Adams", "description": "English author and humourist"}
  ]
}
`, text)
}

type llmResponse struct {
	Entities []struct {
		Text        string          `json:"text"`
		ID          json.RawMessage `json:"id"`
		Label       string          `json:"label"`
		Description string          `json:"description"`
	} `json:"entities"`
}

// parseLinks decodes a model response. Entries whose text does not occur in
// the input or whose id is not an item id are dropped.
func parseLinks(resp, text string) ([]Annotation, error) {
	var parsed llmResponse
	if err := json.Unmarshal([]byte(cleanJSON(resp)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model json: %w (response: %s)", err, resp)
	}

	var out []Annotation
	searchFrom := 0
	for _, e := range parsed.Entities {
		span := strings.TrimSpace(e.Text)
		if span == "" {
			continue
		}
		id, err := storage.ParseItemID(e.ID)
		if err != nil {
			debug.Logf("Debug: dropping %q: %v", span, err)
			continue
		}
		// Prefer the next occurrence after the previous mention so repeated
		// names map to successive positions.
		start := strings.Index(text[searchFrom:], span)
		if start >= 0 {
			start += searchFrom
		} else if start = strings.Index(text, span); start < 0 {
			debug.Logf("Debug: dropping %q: not found in input", span)
			continue
		}
		end := start + len(span)
		searchFrom = end

		label := e.Label
		if label == "" {
			label = span
		}
		out = append(out, Linked{
			Span:     span,
			ItemID:   id,
			ItemName: label,
			Desc:     e.Description,
			Start:    start,
			End:      end,
		})
	}
	return out, nil
}

func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
