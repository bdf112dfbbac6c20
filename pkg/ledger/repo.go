package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"culturevault/pkg/events"
)

var ErrInsufficientAccessRights = errors.New("insufficient access rights")

type LedgerRepository interface {
	GetBalance(ctx context.Context, assetID int64, account string) (Balance, error)
	Consume(ctx context.Context, assetID int64, account, actionType string) (ConsumptionReceipt, error)
}

type postgresLedgerRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLedgerRepository(pool *pgxpool.Pool) LedgerRepository {
	return &postgresLedgerRepository{pool: pool}
}

// GetBalance reads the unconsumed credits for (asset, account). Accounts
// that never purchased read as zero.
func (r *postgresLedgerRepository) GetBalance(ctx context.Context, assetID int64, account string) (Balance, error) {
	query := `SELECT credits FROM access_balances WHERE asset_id = $1 AND account = $2`

	b := Balance{AssetID: assetID, Account: account}
	if err := r.pool.QueryRow(ctx, query, assetID, account).Scan(&b.Credits); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return b, nil
		}
		return Balance{}, err
	}

	return b, nil
}

// Consume debits exactly one credit and appends the AccessConsumed event in
// the same transaction. The guarded UPDATE is the atomicity point: zero rows
// means the balance was below 1 and nothing is mutated.
func (r *postgresLedgerRepository) Consume(ctx context.Context, assetID int64, account, actionType string) (ConsumptionReceipt, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return ConsumptionReceipt{}, err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE access_balances
              SET credits = credits - 1
              WHERE asset_id = $1 AND account = $2 AND credits >= 1
              RETURNING credits`

	var remaining int64
	if err := tx.QueryRow(ctx, query, assetID, account).Scan(&remaining); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ConsumptionReceipt{}, ErrInsufficientAccessRights
		}
		return ConsumptionReceipt{}, err
	}

	ev, err := events.Append(ctx, tx, events.Event{
		Type:       events.TypeAccessConsumed,
		AssetID:    assetID,
		Actor:      account,
		Amount:     1,
		ActionType: actionType,
	})
	if err != nil {
		return ConsumptionReceipt{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ConsumptionReceipt{}, err
	}

	return ConsumptionReceipt{
		AssetID:    assetID,
		Account:    account,
		ActionType: actionType,
		Remaining:  remaining,
		ConsumedAt: ev.CreatedAt,
	}, nil
}
