package registry

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"culturevault/pkg/events"
)

type AssetService interface {
	MintAsset(ctx context.Context, input Asset) (Asset, error)
	GetAssetByID(ctx context.Context, id int64) (Asset, error)
	Lookup(ctx context.Context, id int64) (Ownership, error)
	ListAssets(ctx context.Context, page, limit int) ([]Asset, int64, error)
}

type assetService struct {
	repo AssetRepository
	hub  *events.Hub
}

func NewAssetService(repo AssetRepository, hub *events.Hub) AssetService {
	return &assetService{repo: repo, hub: hub}
}

func (s *assetService) MintAsset(ctx context.Context, input Asset) (Asset, error) {
	if input.Title == "" || input.MetadataURI == "" {
		return Asset{}, errors.New("title and metadata_uri are required")
	}
	if input.Creator == "" {
		return Asset{}, errors.New("creator is required")
	}
	if input.CulturalValue < 0 {
		return Asset{}, errors.New("cultural_value must be non-negative")
	}

	created, err := s.repo.MintAsset(ctx, input)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Asset{}, ErrDuplicateURI
		}
		return Asset{}, err
	}

	if s.hub != nil {
		s.hub.Broadcast(events.Event{
			Type:    events.TypeAssetMinted,
			AssetID: created.ID,
			Actor:   created.Creator,
			Amount:  created.CulturalValue,
		})
	}

	return created, nil
}

func (s *assetService) GetAssetByID(ctx context.Context, id int64) (Asset, error) {
	return s.repo.GetAssetByID(ctx, id)
}

func (s *assetService) Lookup(ctx context.Context, id int64) (Ownership, error) {
	return s.repo.Lookup(ctx, id)
}

func (s *assetService) ListAssets(ctx context.Context, page, limit int) ([]Asset, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListAssets(ctx, limit, offset)
}
