package purchase

// Receipt summarizes one committed settlement.
type Receipt struct {
	AssetID        int64  `json:"asset_id"`
	Buyer          string `json:"buyer"`
	Amount         int64  `json:"amount"`
	UnitPrice      int64  `json:"unit_price"`
	TotalCost      int64  `json:"total_cost"`
	FundsForwarded int64  `json:"funds_forwarded"`
	Owner          string `json:"owner"`

	// OwnerContact feeds the post-commit payout notice; not part of the
	// API payload.
	OwnerContact string `json:"-"`
	AssetTitle   string `json:"-"`
}

type SettleInput struct {
	AssetID       int64
	Buyer         string
	Amount        int64
	FundsProvided int64
}
