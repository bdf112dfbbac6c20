package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type recordingExecer struct {
	sql  string
	args []any
}

func (r *recordingExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sql = sql
	r.args = args
	return pgconn.CommandTag{}, nil
}

func TestAppend_FillsIDAndTimestamp(t *testing.T) {
	db := new(recordingExecer)

	e, err := Append(context.Background(), db, Event{Type: TypeAssetMinted, AssetID: 1, Actor: "0xcreator"})

	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, e.ID)
	require.False(t, e.CreatedAt.IsZero())
}

func TestAppend_KeepsCallerIDAndTimestamp(t *testing.T) {
	db := new(recordingExecer)
	id := uuid.New()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	e, err := Append(context.Background(), db, Event{ID: id, Type: TypeAccessConsumed, AssetID: 1, CreatedAt: at})

	require.NoError(t, err)
	require.Equal(t, id, e.ID)
	require.Equal(t, at, e.CreatedAt)
}

func TestAppend_AssetIDStored(t *testing.T) {
	db := new(recordingExecer)

	_, err := Append(context.Background(), db, Event{Type: TypeAccessConsumed, AssetID: 7, Actor: "0xuser"})

	require.NoError(t, err)
	require.Len(t, db.args, 9)
	require.Equal(t, int64(7), db.args[2])
}

func TestAppend_AssetlessEventStoresNull(t *testing.T) {
	db := new(recordingExecer)

	_, err := Append(context.Background(), db, Event{Type: TypePricingWeightsUpdated, Actor: "0xauthority"})

	require.NoError(t, err)
	require.Len(t, db.args, 9)
	require.Nil(t, db.args[2])
}

func TestAppend_DetailStored(t *testing.T) {
	db := new(recordingExecer)

	_, err := Append(context.Background(), db, Event{
		Type:   TypePricingWeightsUpdated,
		Actor:  "0xauthority",
		Detail: "alpha=100 beta=50 gamma=20",
	})

	require.NoError(t, err)
	require.Equal(t, "alpha=100 beta=50 gamma=20", db.args[7])
}
