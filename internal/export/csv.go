// Package export serializes coverage records and summary statistics for
// downstream consumers: row-oriented CSV, nested JSON, and analytical
// Parquet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gyeh/rxaccess/internal/model"
)

// csvHeader lists output columns in record field order.
var csvHeader = []string{
	"contract_id", "plan_id", "plan_name", "plan_type", "organization_name",
	"product_name", "molecule", "indication",
	"covered", "tier", "prior_auth", "step_therapy", "quantity_limit",
	"cost_type", "retail_preferred_cost", "retail_standard_cost", "mail_order_cost",
	"access_score",
}

// WriteCSV writes coverage records as comma-separated rows with a header.
func WriteCSV(w io.Writer, records []model.CoverageAnalysis) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, rec := range records {
		row := []string{
			rec.ContractID, rec.PlanID, rec.PlanName, rec.PlanType, rec.OrganizationName,
			rec.ProductName, rec.Molecule, rec.Indication,
			strconv.FormatBool(rec.Covered), rec.Tier,
			strconv.FormatBool(rec.PriorAuth), strconv.FormatBool(rec.StepTherapy),
			strconv.FormatBool(rec.QuantityLimit),
			rec.CostType,
			formatAmount(rec.RetailPreferredCost),
			formatAmount(rec.RetailStandardCost),
			formatAmount(rec.MailOrderCost),
			formatAmount(rec.AccessScore),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
