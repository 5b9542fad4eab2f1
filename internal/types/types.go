// Package types defines the records that flow through the entity linking pipeline.
package types

import "encoding/json"

// QARecord is one question/answer example pulled from a dataset source.
type QARecord struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Type     string `json:"type,omitempty"`
	Level    string `json:"level,omitempty"`

	// Context is kept as raw JSON; the hub API and the original dumps
	// encode paragraphs differently and nothing here reads them.
	Context json.RawMessage `json:"context,omitempty"`
}

// EntityMention is a linked span reported by an annotator for one text.
type EntityMention struct {
	Text        string `json:"text"`
	ExternalID  string `json:"wikidata_id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// ResultRow joins a QARecord with one of its mentions. Field order is the
// serialized column order.
type ResultRow struct {
	QuestionID   string `json:"question_id"`
	OriginalText string `json:"original_text"`
	EntityText   string `json:"entity_text"`
	ExternalID   string `json:"wikidata_id"`
	Description  string `json:"description"`
	Label        string `json:"label"`
}
