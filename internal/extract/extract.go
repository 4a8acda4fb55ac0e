// Package extract implements the coverage extraction pipeline over CMS
// Part D formulary files: parse the three pipe-delimited sources, join them
// into denormalized coverage records, and score each record.
package extract

import (
	"fmt"
	"path/filepath"

	"github.com/gyeh/rxaccess/internal/catalog"
	"github.com/gyeh/rxaccess/internal/model"
)

// Fixed source filenames within the data directory, as published in the CMS
// monthly formulary release.
const (
	FormularyFileName = "basic_drugs_formulary.txt"
	CostFileName      = "beneficiary_cost.txt"
	PlanInfoFileName  = "plan_information.txt"
)

// Extractor runs the parse → join → score pipeline over one data directory.
type Extractor struct {
	dataDir string
	cat     *catalog.Catalog
}

// New creates an extractor for a directory holding the three source files.
// A nil catalog uses the built-in product set.
func New(dataDir string, cat *catalog.Catalog) *Extractor {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Extractor{dataDir: dataDir, cat: cat}
}

// Catalog returns the catalog the extractor filters against.
func (e *Extractor) Catalog() *catalog.Catalog {
	return e.cat
}

// Extract parses the three source files, joins them, and returns fully
// scored coverage records in formulary file order. Row-level anomalies are
// absorbed by the parsers; only filesystem failures and internally
// inconsistent input surface as errors.
func (e *Extractor) Extract() ([]model.CoverageAnalysis, error) {
	formulary, err := ParseFormularyFile(filepath.Join(e.dataDir, FormularyFileName), e.cat)
	if err != nil {
		return nil, fmt.Errorf("parse formulary: %w", err)
	}

	costs, err := ParseCostFile(filepath.Join(e.dataDir, CostFileName))
	if err != nil {
		return nil, fmt.Errorf("parse beneficiary cost: %w", err)
	}

	plans, err := ParsePlanInfoFile(filepath.Join(e.dataDir, PlanInfoFileName))
	if err != nil {
		return nil, fmt.Errorf("parse plan information: %w", err)
	}

	records, err := Join(formulary, costs, plans, e.cat)
	if err != nil {
		return nil, fmt.Errorf("join: %w", err)
	}

	// Two-stage construction: records leave Join unscored, then each gets
	// its final score in place.
	for i := range records {
		records[i].AccessScore = Score(records[i])
	}

	return records, nil
}
