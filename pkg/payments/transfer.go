package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrTransferFailed rejects the settlement it occurred in; the caller's
// transaction rolls back, so no credits exist without the matching payout.
var ErrTransferFailed = errors.New("funds transfer failed")

// Transferer moves funds to an identity as part of the caller's transaction.
// The wallet rails behind it are out of scope; what matters here is that the
// transfer commits or rolls back with the settlement it belongs to.
type Transferer interface {
	Transfer(ctx context.Context, tx pgx.Tx, assetID int64, recipient string, amount int64) error
}

type payoutLedger struct{}

// NewPayoutLedger returns a Transferer that records each forwarded payment
// as an append-only payout row inside the caller's transaction.
func NewPayoutLedger() Transferer {
	return payoutLedger{}
}

func (payoutLedger) Transfer(ctx context.Context, tx pgx.Tx, assetID int64, recipient string, amount int64) error {
	if recipient == "" {
		return fmt.Errorf("%w: empty recipient", ErrTransferFailed)
	}
	if amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrTransferFailed)
	}

	query := `INSERT INTO payouts (asset_id, recipient, amount, created_at) VALUES ($1, $2, $3, NOW())`
	if _, err := tx.Exec(ctx, query, assetID, recipient, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	return nil
}
