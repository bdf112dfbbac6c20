package pricing

import (
	"context"

	"culturevault/pkg/registry"
	"culturevault/pkg/stats"
)

type PricingService interface {
	Price(ctx context.Context, assetID int64) (Quote, error)
	CurrentWeights(ctx context.Context) (Weights, error)
}

type pricingService struct {
	assets  registry.AssetRepository
	stats   stats.StatsRepository
	weights WeightsRepository
}

func NewPricingService(assets registry.AssetRepository, statsRepo stats.StatsRepository, weights WeightsRepository) PricingService {
	return &pricingService{assets: assets, stats: statsRepo, weights: weights}
}

// Price quotes the current unit price for an asset. The quote is not locked:
// settlement recomputes it inside its own transaction, so a quote observed
// here can differ from the price actually charged if stats move in between.
func (s *pricingService) Price(ctx context.Context, assetID int64) (Quote, error) {
	ownership, err := s.assets.Lookup(ctx, assetID)
	if err != nil {
		return Quote{}, err
	}

	st, err := s.stats.GetStats(ctx, assetID)
	if err != nil {
		return Quote{}, err
	}

	w, err := s.weights.GetWeights(ctx)
	if err != nil {
		return Quote{}, err
	}

	unitPrice, err := ComputeUnitPrice(ownership.CulturalValue, st.AccessCount, st.MarketValue, w)
	if err != nil {
		return Quote{}, err
	}

	return Quote{AssetID: assetID, UnitPrice: unitPrice}, nil
}

func (s *pricingService) CurrentWeights(ctx context.Context) (Weights, error) {
	return s.weights.GetWeights(ctx)
}
