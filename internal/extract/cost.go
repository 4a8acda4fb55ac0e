package extract

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gyeh/rxaccess/internal/model"
)

// ParseCostFile reads the Beneficiary Cost file.
//
// Expected columns: Contract_ID, Plan_ID, Tier, Cost_Type,
// Retail_Preferred_Cost, Retail_Standard_Cost, Mail_Order_Cost. Empty
// monetary columns default to 0; a row with any non-numeric monetary value
// is skipped whole. Cost type is lower-cased raw text and not validated.
func ParseCostFile(path string) ([]model.CostRecord, error) {
	r, err := openPipeReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var records []model.CostRecord
	for {
		row, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read cost row %d: %w", r.rowNum, err)
		}

		preferred, ok1 := parseMoney(valAt(row, r.colIdx, "retail_preferred_cost"))
		standard, ok2 := parseMoney(valAt(row, r.colIdx, "retail_standard_cost"))
		mailOrder, ok3 := parseMoney(valAt(row, r.colIdx, "mail_order_cost"))
		if !ok1 || !ok2 || !ok3 {
			continue // malformed cost rows are all-or-nothing
		}

		records = append(records, model.CostRecord{
			ContractID:          valAt(row, r.colIdx, "contract_id"),
			PlanID:              valAt(row, r.colIdx, "plan_id"),
			Tier:                valAt(row, r.colIdx, "tier"),
			CostType:            strings.ToLower(valAt(row, r.colIdx, "cost_type")),
			RetailPreferredCost: preferred,
			RetailStandardCost:  standard,
			MailOrderCost:       mailOrder,
		})
	}
	return records, nil
}
