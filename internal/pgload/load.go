// Package pgload loads coverage records into a normalized PostgreSQL
// schema: one row per plan and product, coverage facts referencing both,
// every load tagged with a batch ID.
package pgload

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/rxaccess/internal/catalog"
	"github.com/gyeh/rxaccess/internal/model"
)

// Result summarizes one completed load.
type Result struct {
	BatchID  uuid.UUID
	Plans    int
	Products int
	Coverage int64
	Elapsed  time.Duration
}

// Load writes coverage records to PostgreSQL in a single transaction:
// plans and products are upserted once each through caches, coverage rows
// go in via COPY in batches of batchSize. The catalog supplies manufacturer
// names for the product rows.
func Load(ctx context.Context, connStr string, records []model.CoverageAnalysis, cat *catalog.Catalog, batchSize int) (*Result, error) {
	start := time.Now()
	if batchSize <= 0 {
		batchSize = 500
	}
	if cat == nil {
		cat = catalog.Default()
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection: %w", err)
	}
	poolConfig.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	batchID := uuid.New()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO load_batches (batch_id) VALUES ($1)`,
		batchID.String(),
	); err != nil {
		return nil, fmt.Errorf("insert batch: %w", err)
	}

	// plan (contract,plan) → plan_pk, product name → product_id
	planCache := make(map[model.PlanKey]int32)
	productCache := make(map[string]int32)

	var copyRows [][]any
	var total int64

	// flush bulk-inserts accumulated coverage rows via COPY.
	flush := func() error {
		if len(copyRows) == 0 {
			return nil
		}
		copied, err := tx.CopyFrom(ctx,
			pgx.Identifier{"coverage"},
			[]string{
				"batch_id", "plan_pk", "product_id", "tier",
				"prior_auth", "step_therapy", "quantity_limit",
				"cost_type", "retail_preferred_cost", "retail_standard_cost",
				"mail_order_cost", "access_score",
			},
			pgx.CopyFromRows(copyRows),
		)
		if err != nil {
			return fmt.Errorf("copy coverage: %w", err)
		}
		total += copied
		copyRows = copyRows[:0]
		return nil
	}

	for i := range records {
		rec := &records[i]

		planKey := model.PlanKey{ContractID: rec.ContractID, PlanID: rec.PlanID}
		planPK, ok := planCache[planKey]
		if !ok {
			err := tx.QueryRow(ctx,
				`INSERT INTO plans (contract_id, plan_id, plan_name, plan_type, organization_name)
				 VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (contract_id, plan_id) DO UPDATE SET
				   plan_name = EXCLUDED.plan_name,
				   plan_type = EXCLUDED.plan_type,
				   organization_name = EXCLUDED.organization_name
				 RETURNING plan_pk`,
				rec.ContractID, rec.PlanID, rec.PlanName, rec.PlanType, rec.OrganizationName,
			).Scan(&planPK)
			if err != nil {
				return nil, fmt.Errorf("upsert plan %s/%s: %w", rec.ContractID, rec.PlanID, err)
			}
			planCache[planKey] = planPK
		}

		productID, ok := productCache[rec.ProductName]
		if !ok {
			manufacturer := ""
			if p, ok := cat.Product(rec.ProductName); ok {
				manufacturer = p.Manufacturer
			}
			err := tx.QueryRow(ctx,
				`INSERT INTO products (name, molecule, indication, manufacturer)
				 VALUES ($1, $2, $3, $4)
				 ON CONFLICT (name) DO UPDATE SET
				   molecule = EXCLUDED.molecule,
				   indication = EXCLUDED.indication,
				   manufacturer = EXCLUDED.manufacturer
				 RETURNING product_id`,
				rec.ProductName, rec.Molecule, rec.Indication, manufacturer,
			).Scan(&productID)
			if err != nil {
				return nil, fmt.Errorf("upsert product %q: %w", rec.ProductName, err)
			}
			productCache[rec.ProductName] = productID
		}

		copyRows = append(copyRows, []any{
			batchID.String(), planPK, productID, rec.Tier,
			rec.PriorAuth, rec.StepTherapy, rec.QuantityLimit,
			rec.CostType, rec.RetailPreferredCost, rec.RetailStandardCost,
			rec.MailOrderCost, rec.AccessScore,
		})

		if len(copyRows) >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE load_batches SET record_count = $1 WHERE batch_id = $2`,
		total, batchID.String(),
	); err != nil {
		return nil, fmt.Errorf("update batch count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &Result{
		BatchID:  batchID,
		Plans:    len(planCache),
		Products: len(productCache),
		Coverage: total,
		Elapsed:  time.Since(start),
	}, nil
}
