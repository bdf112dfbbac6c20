package registry

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"culturevault/pkg/events"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrDuplicateURI  = errors.New("asset already registered with that metadata URI")
)

type AssetRepository interface {
	MintAsset(ctx context.Context, input Asset) (Asset, error)
	GetAssetByID(ctx context.Context, id int64) (Asset, error)
	Lookup(ctx context.Context, id int64) (Ownership, error)
	ListAssets(ctx context.Context, limit, offset int) ([]Asset, int64, error)
}

type postgresAssetRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &postgresAssetRepository{pool: pool}
}

// MintAsset inserts the asset row and its AssetMinted event in one transaction.
func (r *postgresAssetRepository) MintAsset(ctx context.Context, input Asset) (Asset, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Asset{}, err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO assets (title, metadata_uri, cultural_value, creator, current_owner, contact_email, created_at)
              VALUES ($1, $2, $3, $4, $4, $5, NOW())
              RETURNING id, title, metadata_uri, cultural_value, creator, current_owner, contact_email, created_at`

	row := tx.QueryRow(ctx, query, input.Title, input.MetadataURI, input.CulturalValue, input.Creator, input.ContactEmail)

	var created Asset
	if err := row.Scan(&created.ID, &created.Title, &created.MetadataURI, &created.CulturalValue, &created.Creator, &created.CurrentOwner, &created.ContactEmail, &created.CreatedAt); err != nil {
		return Asset{}, err
	}

	if _, err := events.Append(ctx, tx, events.Event{
		Type:    events.TypeAssetMinted,
		AssetID: created.ID,
		Actor:   created.Creator,
		Amount:  created.CulturalValue,
	}); err != nil {
		return Asset{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Asset{}, err
	}
	return created, nil
}

func (r *postgresAssetRepository) GetAssetByID(ctx context.Context, id int64) (Asset, error) {
	query := `SELECT id, title, metadata_uri, cultural_value, creator, current_owner, contact_email, created_at
              FROM assets
              WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)

	var a Asset
	if err := row.Scan(&a.ID, &a.Title, &a.MetadataURI, &a.CulturalValue, &a.Creator, &a.CurrentOwner, &a.ContactEmail, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Asset{}, ErrAssetNotFound
		}
		return Asset{}, err
	}

	return a, nil
}

func (r *postgresAssetRepository) Lookup(ctx context.Context, id int64) (Ownership, error) {
	query := `SELECT cultural_value, current_owner, contact_email FROM assets WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)

	var o Ownership
	if err := row.Scan(&o.CulturalValue, &o.Owner, &o.ContactEmail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ownership{}, ErrAssetNotFound
		}
		return Ownership{}, err
	}

	return o, nil
}

func (r *postgresAssetRepository) ListAssets(ctx context.Context, limit, offset int) ([]Asset, int64, error) {
	query := `SELECT id, title, metadata_uri, cultural_value, creator, current_owner, contact_email, created_at
              FROM assets
              ORDER BY id
              LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	assetsList := make([]Asset, 0)
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.ID, &a.Title, &a.MetadataURI, &a.CulturalValue, &a.Creator, &a.CurrentOwner, &a.ContactEmail, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		assetsList = append(assetsList, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM assets").Scan(&total); err != nil {
		return nil, 0, err
	}

	return assetsList, total, nil
}
