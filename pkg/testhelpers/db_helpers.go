package testhelpers

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var uniqueCounter int64

func nextSuffix() int64 {
	return atomic.AddInt64(&uniqueCounter, 1)
}

// MintTestAsset inserts an asset with the given cultural value and returns its ID.
func MintTestAsset(t *testing.T, db *pgxpool.Pool, culturalValue int64) int64 {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	title := fmt.Sprintf("test-asset-%d", suffix)
	uri := fmt.Sprintf("ipfs://test/%d", suffix)
	creator := fmt.Sprintf("0xcreator%d", suffix)

	var id int64
	err := db.QueryRow(ctx,
		"INSERT INTO assets (title, metadata_uri, cultural_value, creator, current_owner) VALUES ($1, $2, $3, $4, $4) RETURNING id",
		title, uri, culturalValue, creator).Scan(&id)
	require.NoError(t, err)
	return id
}

// SetTestStats upserts the stats row for an asset.
func SetTestStats(t *testing.T, db *pgxpool.Pool, assetID, accessCount, marketValue int64) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO asset_stats (asset_id, access_count, market_value) VALUES ($1, $2, $3) ON CONFLICT (asset_id) DO UPDATE SET access_count = EXCLUDED.access_count, market_value = EXCLUDED.market_value",
		assetID, accessCount, marketValue)
	require.NoError(t, err)
}

// SetTestWeights replaces the pricing weight singleton.
func SetTestWeights(t *testing.T, db *pgxpool.Pool, alpha, beta, gamma int64) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO pricing_weights (singleton, alpha, beta, gamma) VALUES (TRUE, $1, $2, $3) ON CONFLICT (singleton) DO UPDATE SET alpha = EXCLUDED.alpha, beta = EXCLUDED.beta, gamma = EXCLUDED.gamma, updated_at = NOW()",
		alpha, beta, gamma)
	require.NoError(t, err)
}

// CreditTestBalance gives an account unconsumed credits for an asset.
func CreditTestBalance(t *testing.T, db *pgxpool.Pool, assetID int64, account string, credits int64) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO access_balances (asset_id, account, credits) VALUES ($1, $2, $3) ON CONFLICT (asset_id, account) DO UPDATE SET credits = EXCLUDED.credits",
		assetID, account, credits)
	require.NoError(t, err)
}
