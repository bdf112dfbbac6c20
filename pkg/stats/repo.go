package stats

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository interface {
	GetStats(ctx context.Context, assetID int64) (AssetStats, error)
}

type postgresStatsRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &postgresStatsRepository{pool: pool}
}

// GetStats reads the counters for an asset. A missing row reads as zeros;
// rows are created lazily by the first purchase or market update.
func (r *postgresStatsRepository) GetStats(ctx context.Context, assetID int64) (AssetStats, error) {
	query := `SELECT access_count, market_value FROM asset_stats WHERE asset_id = $1`

	s := AssetStats{AssetID: assetID}
	if err := r.pool.QueryRow(ctx, query, assetID).Scan(&s.AccessCount, &s.MarketValue); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s, nil
		}
		return AssetStats{}, err
	}

	return s, nil
}
