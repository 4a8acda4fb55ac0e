package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gyeh/rxaccess/internal/model"
)

// WriteStatsJSON writes summary statistics as indented JSON.
func WriteStatsJSON(w io.Writer, stats model.SummaryStats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stats); err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	return nil
}

// WriteRecordsJSON writes coverage records as an indented JSON array, for
// consumers that prefer the nested key-value form over CSV.
func WriteRecordsJSON(w io.Writer, records []model.CoverageAnalysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return nil
}
