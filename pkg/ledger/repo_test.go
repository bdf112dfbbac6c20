package ledger

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"culturevault/pkg/events"
	"culturevault/pkg/testhelpers"
)

func setupLedgerTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL_FOR_TEST")
	if dsn == "" {
		t.Skip("DATABASE_URL_FOR_TEST not set; skipping ledger repository tests")
	}

	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresLedgerRepository_GetBalance_ZeroDefault(t *testing.T) {
	pool := setupLedgerTestPool(t)
	repo := NewPostgresLedgerRepository(pool)
	ctx := context.Background()

	assetID := testhelpers.MintTestAsset(t, pool, 10)

	b, err := repo.GetBalance(ctx, assetID, "0xnobody")

	require.NoError(t, err)
	require.Equal(t, int64(0), b.Credits)
}

func TestPostgresLedgerRepository_Consume_DecrementsExactlyOne(t *testing.T) {
	pool := setupLedgerTestPool(t)
	repo := NewPostgresLedgerRepository(pool)
	ctx := context.Background()

	assetID := testhelpers.MintTestAsset(t, pool, 10)
	testhelpers.CreditTestBalance(t, pool, assetID, "0xuser", 3)

	receipt, err := repo.Consume(ctx, assetID, "0xuser", "VIEW_3D_MODEL")

	require.NoError(t, err)
	require.Equal(t, int64(2), receipt.Remaining)

	b, err := repo.GetBalance(ctx, assetID, "0xuser")
	require.NoError(t, err)
	require.Equal(t, int64(2), b.Credits)

	var eventType, actionType string
	err = pool.QueryRow(ctx,
		"SELECT event_type, action_type FROM events WHERE asset_id = $1 AND actor = '0xuser'", assetID).Scan(&eventType, &actionType)
	require.NoError(t, err)
	require.Equal(t, events.TypeAccessConsumed, eventType)
	require.Equal(t, "VIEW_3D_MODEL", actionType)
}

func TestPostgresLedgerRepository_Consume_EmptyBalanceLeavesNoTrace(t *testing.T) {
	pool := setupLedgerTestPool(t)
	repo := NewPostgresLedgerRepository(pool)
	ctx := context.Background()

	assetID := testhelpers.MintTestAsset(t, pool, 10)
	testhelpers.CreditTestBalance(t, pool, assetID, "0xuser", 0)

	_, err := repo.Consume(ctx, assetID, "0xuser", "VIEW_3D_MODEL")

	require.ErrorIs(t, err, ErrInsufficientAccessRights)

	b, err := repo.GetBalance(ctx, assetID, "0xuser")
	require.NoError(t, err)
	require.Equal(t, int64(0), b.Credits)

	var eventCount int64
	err = pool.QueryRow(ctx, "SELECT COUNT(*) FROM events WHERE asset_id = $1", assetID).Scan(&eventCount)
	require.NoError(t, err)
	require.Equal(t, int64(0), eventCount)
}

func TestPostgresLedgerRepository_Consume_DrainsToZeroThenRejects(t *testing.T) {
	pool := setupLedgerTestPool(t)
	repo := NewPostgresLedgerRepository(pool)
	ctx := context.Background()

	assetID := testhelpers.MintTestAsset(t, pool, 10)
	testhelpers.CreditTestBalance(t, pool, assetID, "0xuser", 1)

	receipt, err := repo.Consume(ctx, assetID, "0xuser", "VIEW_3D_MODEL")
	require.NoError(t, err)
	require.Equal(t, int64(0), receipt.Remaining)

	_, err = repo.Consume(ctx, assetID, "0xuser", "VIEW_3D_MODEL")
	require.ErrorIs(t, err, ErrInsufficientAccessRights)
}
