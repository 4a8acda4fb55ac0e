package extract

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gyeh/rxaccess/internal/catalog"
	"github.com/gyeh/rxaccess/internal/model"
	"github.com/gyeh/rxaccess/internal/ndc"
)

// ParseFormularyFile reads the Basic Drugs Formulary file and returns one
// record per row whose NDC belongs to a catalog product. This filter is what
// keeps the rest of the pipeline bounded to drugs of interest.
//
// Expected columns (pipe-delimited): Contract_ID, Plan_ID, NDC, Tier,
// Prior_Authorization, Step_Therapy, Quantity_Limit. Flags compare
// case-insensitively against "Y"; anything else means not required.
func ParseFormularyFile(path string, cat *catalog.Catalog) ([]model.FormularyRecord, error) {
	r, err := openPipeReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var records []model.FormularyRecord
	for {
		row, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read formulary row %d: %w", r.rowNum, err)
		}

		code := ndc.Normalize(valAt(row, r.colIdx, "ndc"))
		if _, ok := cat.LookupNDC(code); !ok {
			continue
		}

		records = append(records, model.FormularyRecord{
			ContractID:    valAt(row, r.colIdx, "contract_id"),
			PlanID:        valAt(row, r.colIdx, "plan_id"),
			NDC:           code,
			Tier:          valAt(row, r.colIdx, "tier"),
			PriorAuth:     flagSet(valAt(row, r.colIdx, "prior_authorization")),
			StepTherapy:   flagSet(valAt(row, r.colIdx, "step_therapy")),
			QuantityLimit: flagSet(valAt(row, r.colIdx, "quantity_limit")),
		})
	}
	return records, nil
}

// flagSet interprets a CMS Y/N indicator column.
func flagSet(v string) bool {
	return strings.EqualFold(v, "Y")
}
