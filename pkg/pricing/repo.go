package pricing

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx that FetchWeights needs; both *pgxpool.Pool
// and pgx.Tx satisfy it, so settlement can read weights inside its own
// transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// FetchWeights reads the live weight triple. The singleton row is seeded by
// the schema, so a missing row is a genuine error, not a default.
func FetchWeights(ctx context.Context, db Querier) (Weights, error) {
	query := `SELECT alpha, beta, gamma, updated_at FROM pricing_weights WHERE singleton`

	var w Weights
	if err := db.QueryRow(ctx, query).Scan(&w.Alpha, &w.Beta, &w.Gamma, &w.UpdatedAt); err != nil {
		return Weights{}, err
	}
	return w, nil
}

type WeightsRepository interface {
	GetWeights(ctx context.Context) (Weights, error)
}

type postgresWeightsRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresWeightsRepository(pool *pgxpool.Pool) WeightsRepository {
	return &postgresWeightsRepository{pool: pool}
}

func (r *postgresWeightsRepository) GetWeights(ctx context.Context) (Weights, error) {
	return FetchWeights(ctx, r.pool)
}
