package extract

import (
	"errors"
	"fmt"
	"io"

	"github.com/gyeh/rxaccess/internal/model"
)

// ParsePlanInfoFile reads the Plan Information file into a lookup keyed by
// (contract, plan). A key appearing more than once keeps the last row.
//
// Expected columns: Contract_ID, Plan_ID, Plan_Name, Plan_Type,
// Organization_Name.
func ParsePlanInfoFile(path string) (map[model.PlanKey]model.PlanInfo, error) {
	r, err := openPipeReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	plans := make(map[model.PlanKey]model.PlanInfo)
	for {
		row, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read plan row %d: %w", r.rowNum, err)
		}

		info := model.PlanInfo{
			ContractID:       valAt(row, r.colIdx, "contract_id"),
			PlanID:           valAt(row, r.colIdx, "plan_id"),
			PlanName:         valAt(row, r.colIdx, "plan_name"),
			PlanType:         valAt(row, r.colIdx, "plan_type"),
			OrganizationName: valAt(row, r.colIdx, "organization_name"),
		}
		plans[model.PlanKey{ContractID: info.ContractID, PlanID: info.PlanID}] = info
	}
	return plans, nil
}
