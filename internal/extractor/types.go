package extractor

import (
	"time"

	"github.com/untoldecay/entitylink/internal/types"
)

// ExtractionResult contains the mentions for one text and run metadata.
type ExtractionResult struct {
	Mentions  []types.EntityMention
	Duration  time.Duration
	Extractor string
}
