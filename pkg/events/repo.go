package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Execer is the subset of pgx that Append needs. Both *pgxpool.Pool and
// pgx.Tx satisfy it, so callers can append inside their own transaction.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Append writes one immutable event row. When db is a transaction, the event
// commits or rolls back together with the state change it records.
func Append(ctx context.Context, db Execer, e Event) (Event, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	// Asset-less events (weights updates) store NULL, never a zero id.
	var assetID any
	if e.AssetID != 0 {
		assetID = e.AssetID
	}

	query := `INSERT INTO events (id, event_type, asset_id, actor, amount, unit_price, action_type, detail, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := db.Exec(ctx, query, e.ID, e.Type, assetID, e.Actor, e.Amount, e.UnitPrice, e.ActionType, e.Detail, e.CreatedAt); err != nil {
		return Event{}, err
	}
	return e, nil
}

type EventFilters struct {
	AssetID   *int64
	EventType *string
}

type EventRepository interface {
	ListEvents(ctx context.Context, filters EventFilters, limit, offset int) ([]Event, int64, error)
}

type postgresEventRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresEventRepository(pool *pgxpool.Pool) EventRepository {
	return &postgresEventRepository{pool: pool}
}

func (r *postgresEventRepository) ListEvents(ctx context.Context, filters EventFilters, limit, offset int) ([]Event, int64, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.AssetID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("asset_id = $%d", argPos))
		args = append(args, *filters.AssetID)
		argPos++
	}

	if filters.EventType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("event_type = $%d", argPos))
		args = append(args, *filters.EventType)
		argPos++
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	query := fmt.Sprintf(`SELECT id, event_type, COALESCE(asset_id, 0), actor, amount, unit_price, action_type, detail, created_at
              FROM events
              %s
              ORDER BY created_at, id
              LIMIT $%d OFFSET $%d`, whereSQL, argPos, argPos+1)

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	eventsList := make([]Event, 0)
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Type, &e.AssetID, &e.Actor, &e.Amount, &e.UnitPrice, &e.ActionType, &e.Detail, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		eventsList = append(eventsList, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM events %s", whereSQL)
	countArgs := args[:len(args)-2]

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return eventsList, total, nil
}
