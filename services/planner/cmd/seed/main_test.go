package main

import (
	"context"
	"testing"
	"time"

	"some-planner/pkg/database"
	"some-planner/pkg/logger"
	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/model"
	"some-planner/services/planner/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDatabase(t *testing.T) {
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, db.AutoMigrate(model.Models()...))

	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, seedDatabase(ctx, db, now, logger.NewNop()))

	shops, err := persistent.NewShopRepository(db).List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, shops, 2)

	posts, err := persistent.NewPostRepository(db).List(ctx, entity.PostFilter{Month: 6, Year: 2025})
	require.NoError(t, err)
	assert.Len(t, posts, 12)
	for _, p := range posts {
		require.NotNil(t, p.ShopName)
	}

	// a second run leaves the data alone
	require.NoError(t, seedDatabase(ctx, db, now, logger.NewNop()))
	all, err := persistent.NewShopRepository(db).List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
