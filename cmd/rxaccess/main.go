package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gyeh/rxaccess/internal/catalog"
	"github.com/gyeh/rxaccess/internal/export"
	"github.com/gyeh/rxaccess/internal/extract"
	"github.com/gyeh/rxaccess/internal/model"
	"github.com/gyeh/rxaccess/internal/pgload"
)

func main() {
	dataDir := flag.String("dir", "", "Directory containing the three CMS source files (required)")
	outFile := flag.String("out", "", "Output file (default: coverage_analysis.<format> in the data directory)")
	format := flag.String("format", "csv", "Output format: csv, json, or parquet")
	statsFile := flag.String("stats", "", "Also write summary statistics JSON to this file")
	catalogFile := flag.String("catalog", "", "YAML product catalog (default: built-in GLP-1 set)")
	pgConn := flag.String("pg", "", "PostgreSQL connection string (also load records into Postgres)")
	batchSize := flag.Int("batch", 500, "COPY batch size for Postgres loading")
	flag.Parse()

	if *dataDir == "" {
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  rxaccess -dir <data_dir> [-out coverage.csv] [-format csv|json|parquet]\n")
		fmt.Fprintf(os.Stderr, "           [-stats stats.json] [-catalog products.yaml] [-pg 'postgres://...']\n")
		fmt.Fprintf(os.Stderr, "\nExpected files in the data directory:\n")
		fmt.Fprintf(os.Stderr, "  - %s\n", extract.FormularyFileName)
		fmt.Fprintf(os.Stderr, "  - %s\n", extract.CostFileName)
		fmt.Fprintf(os.Stderr, "  - %s\n", extract.PlanInfoFileName)
		os.Exit(1)
	}

	if err := run(*dataDir, *outFile, *format, *statsFile, *catalogFile, *pgConn, *batchSize); err != nil {
		log.Fatal(err)
	}
}

func run(dataDir, outFile, format, statsFile, catalogFile, pgConn string, batchSize int) error {
	start := time.Now()

	var cat *catalog.Catalog
	if catalogFile != "" {
		var err error
		cat, err = catalog.Load(catalogFile)
		if err != nil {
			return err
		}
		fmt.Printf("Catalog: %s (%d products)\n", catalogFile, cat.Len())
	} else {
		cat = catalog.Default()
		fmt.Printf("Catalog: built-in (%d products)\n", cat.Len())
	}

	fmt.Printf("Extracting coverage from %s...\n", dataDir)
	records, err := extract.New(dataDir, cat).Extract()
	if err != nil {
		return err
	}
	fmt.Printf("  %d coverage records\n", len(records))

	if outFile == "" {
		outFile = filepath.Join(dataDir, "coverage_analysis."+format)
	}

	if err := writeRecords(outFile, format, records); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", outFile)

	stats := extract.Summarize(records)
	printSummary(stats)

	if statsFile != "" {
		f, err := os.Create(statsFile)
		if err != nil {
			return fmt.Errorf("create stats file: %w", err)
		}
		if err := export.WriteStatsJSON(f, stats); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close stats file: %w", err)
		}
		fmt.Printf("Wrote %s\n", statsFile)
	}

	if pgConn != "" {
		fmt.Println("Loading into PostgreSQL...")
		res, err := pgload.Load(context.Background(), pgConn, records, cat, batchSize)
		if err != nil {
			return err
		}
		fmt.Printf("  batch %s: %d coverage rows, %d plans, %d products (%s)\n",
			res.BatchID, res.Coverage, res.Plans, res.Products, res.Elapsed.Round(time.Millisecond))
	}

	fmt.Printf("Done in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func writeRecords(path, format string, records []model.CoverageAnalysis) error {
	switch format {
	case "parquet":
		return export.WriteParquet(path, records)
	case "csv", "json":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		if format == "csv" {
			err = export.WriteCSV(f, records)
		} else {
			err = export.WriteRecordsJSON(f, records)
		}
		if err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unknown format %q (want csv, json, or parquet)", format)
	}
}

func printSummary(stats model.SummaryStats) {
	fmt.Println()
	fmt.Printf("Total Coverage Records: %d\n", stats.TotalRecords)
	fmt.Printf("Unique Plans:           %d\n", stats.UniquePlans)
	fmt.Printf("Average Access Score:   %.1f/100\n", stats.AverageAccessScore)

	products := make([]string, 0, len(stats.ByProduct))
	for name := range stats.ByProduct {
		products = append(products, name)
	}
	sort.Strings(products)

	fmt.Println("\nBy product:")
	for _, name := range products {
		p := stats.ByProduct[name]
		fmt.Printf("  %-10s plans: %-5d avg score: %5.1f  PA: %5.1f%%  ST: %5.1f%%\n",
			name, p.PlansCovering, p.AvgAccessScore, p.PriorAuthRate, p.StepTherapyRate)
	}

	f := stats.AdministrativeFriction
	fmt.Println("\nAdministrative friction:")
	fmt.Printf("  Prior Authorization: %.1f%%\n", f.PriorAuthPct)
	fmt.Printf("  Step Therapy:        %.1f%%\n", f.StepTherapyPct)
	fmt.Printf("  Quantity Limits:     %.1f%%\n", f.QuantityLimitPct)

	tiers := make([]string, 0, len(stats.TierDistribution))
	for tier := range stats.TierDistribution {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)

	fmt.Println("\nTier distribution:")
	for _, tier := range tiers {
		count := stats.TierDistribution[tier]
		pct := float64(count) / float64(stats.TotalRecords) * 100
		fmt.Printf("  Tier %-10s %d (%.1f%%)\n", tier, count, pct)
	}
}
