package pricing

import "time"

// Weights is the governance-controlled coefficient triple of the pricing
// formula: alpha weighs cultural value, beta accumulated usage, gamma the
// external market signal. A single live row; price computations always read
// whatever is current, there is no snapshotting.
type Weights struct {
	Alpha     int64     `json:"alpha"`
	Beta      int64     `json:"beta"`
	Gamma     int64     `json:"gamma"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Quote struct {
	AssetID   int64 `json:"asset_id"`
	UnitPrice int64 `json:"unit_price"`
}
