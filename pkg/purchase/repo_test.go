package purchase

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"culturevault/pkg/events"
	"culturevault/pkg/payments"
	"culturevault/pkg/registry"
	"culturevault/pkg/testhelpers"
)

func setupPurchaseTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL_FOR_TEST")
	if dsn == "" {
		t.Skip("DATABASE_URL_FOR_TEST not set; skipping purchase repository tests")
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

type failingTransfer struct{}

func (failingTransfer) Transfer(ctx context.Context, tx pgx.Tx, assetID int64, recipient string, amount int64) error {
	return fmt.Errorf("%w: wallet rail unavailable", payments.ErrTransferFailed)
}

type snapshot struct {
	accessCount int64
	marketValue int64
	credits     int64
	payouts     int64
	eventCount  int64
}

func takeSnapshot(t *testing.T, pool *pgxpool.Pool, assetID int64, account string) snapshot {
	t.Helper()
	ctx := context.Background()

	var s snapshot
	err := pool.QueryRow(ctx, "SELECT COALESCE(MAX(access_count), 0), COALESCE(MAX(market_value), 0) FROM asset_stats WHERE asset_id = $1", assetID).Scan(&s.accessCount, &s.marketValue)
	require.NoError(t, err)
	err = pool.QueryRow(ctx, "SELECT COALESCE(MAX(credits), 0) FROM access_balances WHERE asset_id = $1 AND account = $2", assetID, account).Scan(&s.credits)
	require.NoError(t, err)
	err = pool.QueryRow(ctx, "SELECT COALESCE(SUM(amount), 0) FROM payouts WHERE asset_id = $1", assetID).Scan(&s.payouts)
	require.NoError(t, err)
	err = pool.QueryRow(ctx, "SELECT COUNT(*) FROM events WHERE asset_id = $1", assetID).Scan(&s.eventCount)
	require.NoError(t, err)
	return s
}

func TestPostgresPurchaseRepository_Settle_Success(t *testing.T) {
	pool := setupPurchaseTestPool(t)
	repo := NewPostgresPurchaseRepository(pool, payments.NewPayoutLedger())
	ctx := context.Background()

	testhelpers.SetTestWeights(t, pool, 100, 50, 20)
	assetID := testhelpers.MintTestAsset(t, pool, 100)
	testhelpers.SetTestStats(t, pool, assetID, 0, 200)

	receipt, err := repo.Settle(ctx, SettleInput{AssetID: assetID, Buyer: "0xbuyer", Amount: 1, FundsProvided: 14000})

	require.NoError(t, err)
	require.Equal(t, int64(14000), receipt.UnitPrice)
	require.Equal(t, int64(14000), receipt.TotalCost)
	require.Equal(t, int64(14000), receipt.FundsForwarded)

	after := takeSnapshot(t, pool, assetID, "0xbuyer")
	require.Equal(t, int64(1), after.accessCount)
	require.Equal(t, int64(1), after.credits)
	require.Equal(t, int64(14000), after.payouts)
	require.Equal(t, int64(1), after.eventCount)
}

func TestPostgresPurchaseRepository_Settle_PriceFeedsBackIntoNextQuote(t *testing.T) {
	pool := setupPurchaseTestPool(t)
	repo := NewPostgresPurchaseRepository(pool, payments.NewPayoutLedger())
	ctx := context.Background()

	testhelpers.SetTestWeights(t, pool, 100, 50, 20)
	assetID := testhelpers.MintTestAsset(t, pool, 100)
	testhelpers.SetTestStats(t, pool, assetID, 0, 200)

	first, err := repo.Settle(ctx, SettleInput{AssetID: assetID, Buyer: "0xbuyer", Amount: 1, FundsProvided: 20000})
	require.NoError(t, err)
	require.Equal(t, int64(14000), first.UnitPrice)

	// The first purchase bumped access_count to 1, so the second pays more.
	second, err := repo.Settle(ctx, SettleInput{AssetID: assetID, Buyer: "0xbuyer", Amount: 1, FundsProvided: 20000})
	require.NoError(t, err)
	require.Equal(t, int64(14050), second.UnitPrice)
}

func TestPostgresPurchaseRepository_Settle_ForwardsEntireFunds(t *testing.T) {
	pool := setupPurchaseTestPool(t)
	repo := NewPostgresPurchaseRepository(pool, payments.NewPayoutLedger())
	ctx := context.Background()

	testhelpers.SetTestWeights(t, pool, 1, 0, 0)
	assetID := testhelpers.MintTestAsset(t, pool, 10)

	receipt, err := repo.Settle(ctx, SettleInput{AssetID: assetID, Buyer: "0xbuyer", Amount: 1, FundsProvided: 999})

	require.NoError(t, err)
	require.Equal(t, int64(10), receipt.TotalCost)
	require.Equal(t, int64(999), receipt.FundsForwarded)

	after := takeSnapshot(t, pool, assetID, "0xbuyer")
	require.Equal(t, int64(999), after.payouts)
}

func TestPostgresPurchaseRepository_Settle_InsufficientFundsLeavesNoTrace(t *testing.T) {
	pool := setupPurchaseTestPool(t)
	repo := NewPostgresPurchaseRepository(pool, payments.NewPayoutLedger())
	ctx := context.Background()

	testhelpers.SetTestWeights(t, pool, 100, 50, 20)
	assetID := testhelpers.MintTestAsset(t, pool, 100)
	testhelpers.SetTestStats(t, pool, assetID, 3, 200)

	before := takeSnapshot(t, pool, assetID, "0xbuyer")

	_, err := repo.Settle(ctx, SettleInput{AssetID: assetID, Buyer: "0xbuyer", Amount: 2, FundsProvided: 5})

	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.Equal(t, before, takeSnapshot(t, pool, assetID, "0xbuyer"))
}

func TestPostgresPurchaseRepository_Settle_TransferFailureLeavesNoTrace(t *testing.T) {
	pool := setupPurchaseTestPool(t)
	repo := NewPostgresPurchaseRepository(pool, failingTransfer{})
	ctx := context.Background()

	testhelpers.SetTestWeights(t, pool, 100, 50, 20)
	assetID := testhelpers.MintTestAsset(t, pool, 100)
	testhelpers.SetTestStats(t, pool, assetID, 0, 200)

	before := takeSnapshot(t, pool, assetID, "0xbuyer")

	_, err := repo.Settle(ctx, SettleInput{AssetID: assetID, Buyer: "0xbuyer", Amount: 1, FundsProvided: 14000})

	require.ErrorIs(t, err, payments.ErrTransferFailed)
	require.Equal(t, before, takeSnapshot(t, pool, assetID, "0xbuyer"))
}

func TestPostgresPurchaseRepository_Settle_UnknownAsset(t *testing.T) {
	pool := setupPurchaseTestPool(t)
	repo := NewPostgresPurchaseRepository(pool, payments.NewPayoutLedger())
	ctx := context.Background()

	_, err := repo.Settle(ctx, SettleInput{AssetID: -1, Buyer: "0xbuyer", Amount: 1, FundsProvided: 100})

	require.ErrorIs(t, err, registry.ErrAssetNotFound)
}

func TestPostgresPurchaseRepository_Settle_OtherAssetsUntouched(t *testing.T) {
	pool := setupPurchaseTestPool(t)
	repo := NewPostgresPurchaseRepository(pool, payments.NewPayoutLedger())
	ctx := context.Background()

	testhelpers.SetTestWeights(t, pool, 1, 1, 1)
	assetID := testhelpers.MintTestAsset(t, pool, 100)
	otherID := testhelpers.MintTestAsset(t, pool, 100)
	testhelpers.SetTestStats(t, pool, otherID, 7, 11)

	otherBefore := takeSnapshot(t, pool, otherID, "0xbuyer")

	_, err := repo.Settle(ctx, SettleInput{AssetID: assetID, Buyer: "0xbuyer", Amount: 3, FundsProvided: 100000})
	require.NoError(t, err)

	require.Equal(t, otherBefore, takeSnapshot(t, pool, otherID, "0xbuyer"))
}

func TestPostgresPurchaseRepository_Settle_EmitsPurchaseEvent(t *testing.T) {
	pool := setupPurchaseTestPool(t)
	repo := NewPostgresPurchaseRepository(pool, payments.NewPayoutLedger())
	ctx := context.Background()

	testhelpers.SetTestWeights(t, pool, 1, 0, 0)
	assetID := testhelpers.MintTestAsset(t, pool, 5)

	_, err := repo.Settle(ctx, SettleInput{AssetID: assetID, Buyer: "0xbuyer", Amount: 4, FundsProvided: 100})
	require.NoError(t, err)

	var eventType, actor string
	var amount, unitPrice int64
	err = pool.QueryRow(ctx,
		"SELECT event_type, actor, amount, unit_price FROM events WHERE asset_id = $1 AND event_type = $2",
		assetID, events.TypeAccessRightsPurchased).Scan(&eventType, &actor, &amount, &unitPrice)
	require.NoError(t, err)
	require.Equal(t, "0xbuyer", actor)
	require.Equal(t, int64(4), amount)
	require.Equal(t, int64(5), unitPrice)
}
