package purchase

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"culturevault/pkg/events"
	"culturevault/pkg/payments"
	"culturevault/pkg/pricing"
	"culturevault/pkg/registry"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds for purchase")
	ErrInvalidOrder      = errors.New("invalid purchase order")
)

type PurchaseRepository interface {
	Settle(ctx context.Context, in SettleInput) (Receipt, error)
}

type postgresPurchaseRepository struct {
	pool     *pgxpool.Pool
	transfer payments.Transferer
}

func NewPostgresPurchaseRepository(pool *pgxpool.Pool, transfer payments.Transferer) PurchaseRepository {
	return &postgresPurchaseRepository{pool: pool, transfer: transfer}
}

// Settle runs the whole purchase as one transaction. The asset's stats row is
// locked FOR UPDATE, which serializes settlements per asset while leaving
// unrelated assets fully concurrent. The unit price is computed from the
// stats as they stand before this purchase, so a buyer never pays a price
// inflated by their own order. Commit is the single all-or-nothing boundary:
// counter bump, credit issuance, payout and event land together or not at all.
func (r *postgresPurchaseRepository) Settle(ctx context.Context, in SettleInput) (Receipt, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Receipt{}, err
	}
	defer tx.Rollback(ctx)

	var (
		culturalValue int64
		owner         string
		ownerContact  string
		title         string
	)
	row := tx.QueryRow(ctx, `SELECT cultural_value, current_owner, contact_email, title FROM assets WHERE id = $1`, in.AssetID)
	if err := row.Scan(&culturalValue, &owner, &ownerContact, &title); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Receipt{}, registry.ErrAssetNotFound
		}
		return Receipt{}, err
	}

	// Lazily create the stats row, then lock it for the rest of the settlement.
	if _, err := tx.Exec(ctx, `INSERT INTO asset_stats (asset_id) VALUES ($1) ON CONFLICT (asset_id) DO NOTHING`, in.AssetID); err != nil {
		return Receipt{}, err
	}

	var accessCount, marketValue int64
	row = tx.QueryRow(ctx, `SELECT access_count, market_value FROM asset_stats WHERE asset_id = $1 FOR UPDATE`, in.AssetID)
	if err := row.Scan(&accessCount, &marketValue); err != nil {
		return Receipt{}, err
	}

	weights, err := pricing.FetchWeights(ctx, tx)
	if err != nil {
		return Receipt{}, err
	}

	unitPrice, err := pricing.ComputeUnitPrice(culturalValue, accessCount, marketValue, weights)
	if err != nil {
		return Receipt{}, err
	}

	totalCost, err := pricing.TotalCost(unitPrice, in.Amount)
	if err != nil {
		return Receipt{}, err
	}

	if in.FundsProvided < totalCost {
		return Receipt{}, ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx, `UPDATE asset_stats SET access_count = access_count + $2 WHERE asset_id = $1`, in.AssetID, in.Amount); err != nil {
		return Receipt{}, err
	}

	creditQuery := `INSERT INTO access_balances (asset_id, account, credits)
              VALUES ($1, $2, $3)
              ON CONFLICT (asset_id, account) DO UPDATE SET credits = access_balances.credits + EXCLUDED.credits`
	if _, err := tx.Exec(ctx, creditQuery, in.AssetID, in.Buyer, in.Amount); err != nil {
		return Receipt{}, err
	}

	// The full supplied amount is forwarded to the owner, not just the
	// computed cost; overpayment is not refunded.
	if err := r.transfer.Transfer(ctx, tx, in.AssetID, owner, in.FundsProvided); err != nil {
		return Receipt{}, err
	}

	if _, err := events.Append(ctx, tx, events.Event{
		Type:      events.TypeAccessRightsPurchased,
		AssetID:   in.AssetID,
		Actor:     in.Buyer,
		Amount:    in.Amount,
		UnitPrice: unitPrice,
	}); err != nil {
		return Receipt{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Receipt{}, err
	}

	return Receipt{
		AssetID:        in.AssetID,
		Buyer:          in.Buyer,
		Amount:         in.Amount,
		UnitPrice:      unitPrice,
		TotalCost:      totalCost,
		FundsForwarded: in.FundsProvided,
		Owner:          owner,
		OwnerContact:   ownerContact,
		AssetTitle:     title,
	}, nil
}
