package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the core. Every committed state transition writes
// exactly one of these in the same transaction as the mutation itself.
const (
	TypeAssetMinted           = "ASSET_MINTED"
	TypeAccessRightsPurchased = "ACCESS_RIGHTS_PURCHASED"
	TypeAccessConsumed        = "ACCESS_CONSUMED"
	TypeMarketValueUpdated    = "MARKET_VALUE_UPDATED"
	TypePricingWeightsUpdated = "PRICING_WEIGHTS_UPDATED"
)

type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"event_type"`
	AssetID    int64     `json:"asset_id,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	Amount     int64     `json:"amount,omitempty"`
	UnitPrice  int64     `json:"unit_price,omitempty"`
	ActionType string    `json:"action_type,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type EventList struct {
	Items []Event `json:"items"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}
