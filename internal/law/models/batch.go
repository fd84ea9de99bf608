package models

import "time"

// FallbackReformDate is the sentinel applied when a batch row's
// last-reform-date fails to parse. Carried over from the original importer:
// a malformed date does not abort the row. Flagged as questionable leniency,
// kept for compatibility.
const FallbackReformDate = "1900-01-01"

// reformDateLayouts are the accepted last-reform-date formats. The slash
// form is what the legacy CSV exports use.
var reformDateLayouts = []string{
	"2006/01/02",
	"2006-01-02",
	time.RFC3339,
}

// ParseReformDate parses a last-reform-date in any accepted layout and
// returns it normalized to YYYY-MM-DD.
func ParseReformDate(s string) (string, bool) {
	for _, layout := range reformDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// RowResult is the per-row outcome of a batch import, in input order.
type RowResult struct {
	LawID  string   `json:"lawID"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// BatchReport aggregates a whole batch import. It is a response artifact
// only and is never persisted.
type BatchReport struct {
	SuccessCount int         `json:"successCount"`
	ErrorCount   int         `json:"errorCount"`
	Rows         []RowResult `json:"rows"`
}
