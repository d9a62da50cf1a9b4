package db

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/instrument"
	"github.com/shandysiswandi/elasticmail/internal/pkg/testkit"
	"github.com/shandysiswandi/elasticmail/internal/pkg/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	pool := testkit.Postgres(t)

	db := NewDB(pool, instrument.NewNoop())
	require.NoError(t, db.EnsureSchema(ctx))
	_, err := pool.Exec(ctx, "TRUNCATE elasticemail_delivery_logs")
	require.NoError(t, err)

	return db
}

func TestDeliveryLogs_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, db.CreateDeliveryLog(ctx, entity.DeliveryLog{
		ID: "a", Sender: "s@x.com", Recipients: "r@x.com", Subject: "first",
		Status: entity.DeliveryStatusFailed, Message: "Error: bad", CreatedAt: base,
	}))
	require.NoError(t, db.CreateDeliveryLog(ctx, entity.DeliveryLog{
		ID: "b", TxID: "tx", Sender: "s@x.com", Recipients: "r@x.com", Subject: "second",
		Status: entity.DeliveryStatusSent, Metadata: valueobject.JSONMap{"html": true},
		CreatedAt: base.Add(time.Minute),
	}))

	got, err := db.ListDeliveryLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, entity.DeliveryStatusSent, got[0].Status)
	assert.True(t, got[0].Metadata.GetBool("html"))
	assert.Equal(t, "a", got[1].ID)
	assert.Empty(t, got[1].Metadata)

	got, err = db.ListDeliveryLogs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDeliveryLogs_Duplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	dl := entity.DeliveryLog{ID: "dup", Sender: "s", Recipients: "r", Status: entity.DeliveryStatusSent, CreatedAt: time.Now()}

	require.NoError(t, db.CreateDeliveryLog(ctx, dl))
	assert.ErrorIs(t, db.CreateDeliveryLog(ctx, dl), errDuplicateDeliveryLog)
}
