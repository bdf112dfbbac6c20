package stats

import (
	"context"

	"culturevault/pkg/registry"
)

type StatsService interface {
	StatsOf(ctx context.Context, assetID int64) (AssetStats, error)
}

type statsService struct {
	repo   StatsRepository
	assets registry.AssetRepository
}

func NewStatsService(repo StatsRepository, assets registry.AssetRepository) StatsService {
	return &statsService{repo: repo, assets: assets}
}

func (s *statsService) StatsOf(ctx context.Context, assetID int64) (AssetStats, error) {
	// Unknown assets must surface as not-found, not as zero stats.
	if _, err := s.assets.Lookup(ctx, assetID); err != nil {
		return AssetStats{}, err
	}
	return s.repo.GetStats(ctx, assetID)
}
