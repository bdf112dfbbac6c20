package ledger

import "time"

type Balance struct {
	AssetID int64  `json:"asset_id"`
	Account string `json:"account"`
	Credits int64  `json:"credits"`
}

// ConsumptionReceipt records one metered debit. The unlock action the
// receipt's event triggers (serving a key, a URL) is handled by external
// collaborators subscribed to the audit feed.
type ConsumptionReceipt struct {
	AssetID    int64     `json:"asset_id"`
	Account    string    `json:"account"`
	ActionType string    `json:"action_type"`
	Remaining  int64     `json:"remaining_credits"`
	ConsumedAt time.Time `json:"consumed_at"`
}
