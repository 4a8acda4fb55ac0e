package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gyeh/rxaccess/internal/catalog"
	"github.com/gyeh/rxaccess/internal/model"
)

// writeFile writes a pipe-delimited fixture and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseFormularyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "formulary.txt",
		`Contract_ID|Plan_ID|NDC|Tier|Prior_Authorization|Step_Therapy|Quantity_Limit
C001|P01|00169451701|2|Y|N|N
C001|P01|00169-4530-01|3|n|y|Y
C002|P02|99999999999|1|N|N|N
C003|P03|00002230001|Specialty|||
`)

	recs, err := ParseFormularyFile(path, catalog.Default())
	if err != nil {
		t.Fatalf("ParseFormularyFile: %v", err)
	}

	// The unknown NDC row is filtered out.
	if len(recs) != 3 {
		t.Fatalf("records = %d, want 3", len(recs))
	}

	want0 := model.FormularyRecord{
		ContractID: "C001", PlanID: "P01", NDC: "00169451701", Tier: "2",
		PriorAuth: true, StepTherapy: false, QuantityLimit: false,
	}
	if recs[0] != want0 {
		t.Errorf("record[0] = %+v, want %+v", recs[0], want0)
	}

	// Dashed NDC normalizes before the catalog check; lowercase flags count.
	if recs[1].NDC != "00169453001" {
		t.Errorf("record[1].NDC = %q, want 00169453001", recs[1].NDC)
	}
	if recs[1].PriorAuth || !recs[1].StepTherapy || !recs[1].QuantityLimit {
		t.Errorf("record[1] flags = %v/%v/%v, want false/true/true",
			recs[1].PriorAuth, recs[1].StepTherapy, recs[1].QuantityLimit)
	}

	// Empty flag columns mean not required.
	if recs[2].PriorAuth || recs[2].StepTherapy || recs[2].QuantityLimit {
		t.Errorf("record[2] has flags set from empty columns: %+v", recs[2])
	}
	if recs[2].Tier != "Specialty" {
		t.Errorf("record[2].Tier = %q, want Specialty", recs[2].Tier)
	}
}

func TestParseFormularyFileMissingColumns(t *testing.T) {
	dir := t.TempDir()
	// No flag columns at all; rows still parse with flags defaulting false.
	path := writeFile(t, dir, "formulary.txt",
		`Contract_ID|Plan_ID|NDC|Tier
C001|P01|00169451701|1
`)

	recs, err := ParseFormularyFile(path, catalog.Default())
	if err != nil {
		t.Fatalf("ParseFormularyFile: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	if recs[0].PriorAuth || recs[0].StepTherapy || recs[0].QuantityLimit {
		t.Errorf("missing flag columns should default false: %+v", recs[0])
	}
}

func TestParseFormularyFileMissing(t *testing.T) {
	if _, err := ParseFormularyFile(filepath.Join(t.TempDir(), "absent.txt"), catalog.Default()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseCostFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cost.txt",
		`Contract_ID|Plan_ID|Tier|Cost_Type|Retail_Preferred_Cost|Retail_Standard_Cost|Mail_Order_Cost
C001|P01|2|Copay|45.00|55.00|40.00
C001|P01|3|COINSURANCE|25|30|
C002|P02|1|copay|abc|10.00|10.00
C003|P03|4|copay|||
`)

	recs, err := ParseCostFile(path)
	if err != nil {
		t.Fatalf("ParseCostFile: %v", err)
	}

	// The non-numeric row is skipped whole.
	if len(recs) != 3 {
		t.Fatalf("records = %d, want 3", len(recs))
	}

	if recs[0].CostType != "copay" {
		t.Errorf("cost type = %q, want %q (lower-cased)", recs[0].CostType, "copay")
	}
	if recs[0].RetailPreferredCost != 45.00 || recs[0].RetailStandardCost != 55.00 || recs[0].MailOrderCost != 40.00 {
		t.Errorf("record[0] amounts = %+v", recs[0])
	}

	// Empty mail order column defaults to zero, row kept.
	if recs[1].CostType != "coinsurance" || recs[1].MailOrderCost != 0 {
		t.Errorf("record[1] = %+v", recs[1])
	}

	// All-empty amounts default to zero, row kept.
	if recs[2].RetailPreferredCost != 0 || recs[2].RetailStandardCost != 0 || recs[2].MailOrderCost != 0 {
		t.Errorf("record[2] amounts should default to 0: %+v", recs[2])
	}
}

func TestParsePlanInfoFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plans.txt",
		`Contract_ID|Plan_ID|Plan_Name|Plan_Type|Organization_Name
C001|P01|Acme Basic|PDP|Acme Health
C002|P02|Beta Choice|MA-PD|Beta Org
C001|P01|Acme Basic Renamed|PDP|Acme Health
`)

	plans, err := ParsePlanInfoFile(path)
	if err != nil {
		t.Fatalf("ParsePlanInfoFile: %v", err)
	}

	if len(plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(plans))
	}

	// Duplicate key keeps the last row.
	got := plans[model.PlanKey{ContractID: "C001", PlanID: "P01"}]
	if got.PlanName != "Acme Basic Renamed" {
		t.Errorf("plan name = %q, want last occurrence to win", got.PlanName)
	}
}

func TestPipeReaderBOMAndEmptyRows(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plans.txt",
		"\xEF\xBB\xBFContract_ID|Plan_ID|Plan_Name|Plan_Type|Organization_Name\n"+
			"\n"+
			"C001|P01|Acme Basic|PDP|Acme Health\n")

	plans, err := ParsePlanInfoFile(path)
	if err != nil {
		t.Fatalf("ParsePlanInfoFile: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("plans = %d, want 1", len(plans))
	}
	if got := plans[model.PlanKey{ContractID: "C001", PlanID: "P01"}]; got.PlanName != "Acme Basic" {
		t.Errorf("BOM header not handled, got %+v", got)
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"", 0, true},
		{"  ", 0, true},
		{"45.00", 45, true},
		{"$1,234.50", 1234.50, true},
		{"abc", 0, false},
		{"12.3.4", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseMoney(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseMoney(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
