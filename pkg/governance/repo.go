package governance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"culturevault/pkg/events"
	"culturevault/pkg/pricing"
	"culturevault/pkg/registry"
)

// weightsDetail renders the replaced coefficient triple so the transition is
// reconstructible from the audit log alone.
func weightsDetail(alpha, beta, gamma int64) string {
	return fmt.Sprintf("alpha=%d beta=%d gamma=%d", alpha, beta, gamma)
}

type GovernanceRepository interface {
	SetMarketValue(ctx context.Context, assetID, value int64, actor string) error
	SetWeights(ctx context.Context, alpha, beta, gamma int64, actor string) (pricing.Weights, error)
}

type postgresGovernanceRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresGovernanceRepository(pool *pgxpool.Pool) GovernanceRepository {
	return &postgresGovernanceRepository{pool: pool}
}

// SetMarketValue overwrites the asset's oracle signal and appends the
// MarketValueUpdated event in the same transaction.
func (r *postgresGovernanceRepository) SetMarketValue(ctx context.Context, assetID, value int64, actor string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM assets WHERE id = $1)`, assetID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return registry.ErrAssetNotFound
	}

	query := `INSERT INTO asset_stats (asset_id, market_value)
              VALUES ($1, $2)
              ON CONFLICT (asset_id) DO UPDATE SET market_value = EXCLUDED.market_value`
	if _, err := tx.Exec(ctx, query, assetID, value); err != nil {
		return err
	}

	if _, err := events.Append(ctx, tx, events.Event{
		Type:    events.TypeMarketValueUpdated,
		AssetID: assetID,
		Actor:   actor,
		Amount:  value,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SetWeights replaces the pricing weight triple wholesale and appends the
// PricingWeightsUpdated event in the same transaction.
func (r *postgresGovernanceRepository) SetWeights(ctx context.Context, alpha, beta, gamma int64, actor string) (pricing.Weights, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return pricing.Weights{}, err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO pricing_weights (singleton, alpha, beta, gamma, updated_at)
              VALUES (TRUE, $1, $2, $3, NOW())
              ON CONFLICT (singleton) DO UPDATE SET alpha = EXCLUDED.alpha, beta = EXCLUDED.beta, gamma = EXCLUDED.gamma, updated_at = NOW()
              RETURNING alpha, beta, gamma, updated_at`

	var w pricing.Weights
	row := tx.QueryRow(ctx, query, alpha, beta, gamma)
	if err := row.Scan(&w.Alpha, &w.Beta, &w.Gamma, &w.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pricing.Weights{}, errors.New("pricing weights row missing")
		}
		return pricing.Weights{}, err
	}

	if _, err := events.Append(ctx, tx, events.Event{
		Type:   events.TypePricingWeightsUpdated,
		Actor:  actor,
		Detail: weightsDetail(w.Alpha, w.Beta, w.Gamma),
	}); err != nil {
		return pricing.Weights{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return pricing.Weights{}, err
	}
	return w, nil
}
