package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bric-ux/akwa-pricing/pkg/db/option"
)

type rateCard struct {
	ID       int64 `gorm:"primaryKey"`
	Category string
	Percent  float64
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&rateCard{}))
	return db
}

func seed(t *testing.T, store Repository[rateCard]) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &rateCard{ID: 1, Category: "property", Percent: 12}))
	require.NoError(t, store.Create(ctx, &rateCard{ID: 2, Category: "vehicle", Percent: 10}))
	require.NoError(t, store.Create(ctx, &rateCard{ID: 3, Category: "vehicle", Percent: 2}))
}

func TestStoreFind(t *testing.T) {
	store := ProvideStore[rateCard](newTestDB(t))
	seed(t, store)
	ctx := context.Background()

	rows, err := store.Find(ctx, &rateCard{Category: "vehicle"}, option.WithOrderBy("percent DESC"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 10.0, rows[0].Percent)

	rows, err = store.Find(ctx, &rateCard{Category: "vehicle"}, option.WithOrderBy("percent DESC"), option.WithLimit(1))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows, err = store.Find(ctx, &rateCard{}, option.WithWhere("percent >= ?", 10))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestStoreFindOne(t *testing.T) {
	store := ProvideStore[rateCard](newTestDB(t))
	seed(t, store)
	ctx := context.Background()

	found, err := store.FindOne(ctx, &rateCard{Category: "property"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 12.0, found.Percent)

	// Not found is nil, nil rather than an error.
	missing, err := store.FindOne(ctx, &rateCard{Category: "boat"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreUpdateDeleteCount(t *testing.T) {
	store := ProvideStore[rateCard](newTestDB(t))
	seed(t, store)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "1", map[string]any{"percent": 15}))
	found, err := store.FindOne(ctx, &rateCard{ID: 1})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 15.0, found.Percent)

	require.NoError(t, store.Delete(ctx, "3"))
	count, err := store.Count(ctx, &rateCard{Category: "vehicle"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStoreWithTrx(t *testing.T) {
	db := newTestDB(t)
	store := ProvideStore[rateCard](db)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		return store.WithTrx(tx).Create(ctx, &rateCard{ID: 9, Category: "property", Percent: 5})
	})
	require.NoError(t, err)

	found, err := store.FindOne(ctx, &rateCard{ID: 9})
	require.NoError(t, err)
	assert.NotNil(t, found)

	// A rolled-back transaction leaves nothing behind.
	_ = db.Transaction(func(tx *gorm.DB) error {
		if err := store.WithTrx(tx).Create(ctx, &rateCard{ID: 10, Category: "vehicle", Percent: 1}); err != nil {
			return err
		}
		return errors.New("abort")
	})

	missing, err := store.FindOne(ctx, &rateCard{ID: 10})
	require.NoError(t, err)
	assert.Nil(t, missing)
}
