package stats

// AssetStats holds the two mutable pricing signals for one asset.
// access_count only ever grows (bumped inside purchase settlement);
// market_value is overwritten wholesale by the market feed.
type AssetStats struct {
	AssetID     int64 `json:"asset_id"`
	AccessCount int64 `json:"access_count"`
	MarketValue int64 `json:"market_value"`
}
