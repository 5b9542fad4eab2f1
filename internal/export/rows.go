// Package export flattens extraction results into rows, projects them for
// display and persists them as JSON.
package export

import (
	"github.com/untoldecay/entitylink/internal/types"
)

// Flatten joins rec with each of its mentions. A record without mentions
// yields no rows.
func Flatten(rec types.QARecord, mentions []types.EntityMention) []types.ResultRow {
	if len(mentions) == 0 {
		return nil
	}
	rows := make([]types.ResultRow, 0, len(mentions))
	for _, m := range mentions {
		rows = append(rows, types.ResultRow{
			QuestionID:   rec.ID,
			OriginalText: rec.Question,
			EntityText:   m.Text,
			ExternalID:   m.ExternalID,
			Description:  m.Description,
			Label:        m.Label,
		})
	}
	return rows
}

// Truncate shortens s to n runes plus Ellipsis when it is longer than n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + Ellipsis
}

// DisplayHeader names the columns of DisplayRows.
var DisplayHeader = []string{"original_text", "entity_text", "wikidata_id", "description"}

// DisplayRows projects rows for the console. Only the returned copy is
// truncated; rows is not modified.
func DisplayRows(rows []types.ResultRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			Truncate(r.OriginalText, OriginalTextWidth),
			r.EntityText,
			r.ExternalID,
			Truncate(r.Description, DescriptionWidth),
		})
	}
	return out
}
