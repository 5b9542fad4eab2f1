package dataset

import (
	"encoding/json"
	"fmt"

	"github.com/untoldecay/entitylink/internal/types"
)

// decodeRecord accepts both the hub row layout ("id") and the original
// HotpotQA dump layout ("_id").
func decodeRecord(raw json.RawMessage) (types.QARecord, error) {
	var rec struct {
		types.QARecord
		UnderscoreID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return types.QARecord{}, fmt.Errorf("failed to decode record: %w", err)
	}
	out := rec.QARecord
	if out.ID == "" {
		out.ID = rec.UnderscoreID
	}
	if out.ID == "" {
		return types.QARecord{}, fmt.Errorf("record has no id")
	}
	return out, nil
}
