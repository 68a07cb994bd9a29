package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stcadmin/backend/internal/domain/fba"
	"github.com/stcadmin/backend/internal/domain/shared"
	"github.com/stcadmin/backend/internal/infrastructure/persistence/models"
)

func setupProfitTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.FBAProfitModel{}))
	return db
}

func profitSnapshot(importDate time.Time, sku string, profit int64) fba.ProfitSnapshot {
	return fba.ProfitSnapshot{
		BaseEntity:    shared.NewBaseEntity(),
		ImportDate:    importDate,
		OrderID:       uuid.New(),
		RegionID:      uuid.New(),
		ChannelSKU:    sku,
		ASIN:          "B07TESTASIN",
		ListingName:   "Test Listing",
		SalePrice:     1299,
		PurchasePrice: 300,
		Profit:        profit,
	}
}

func TestGormProfitRepository_ReplaceImport(t *testing.T) {
	db := setupProfitTestDB(t)
	repo := NewGormProfitRepository(db)
	ctx := context.Background()
	importDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("stores snapshots ordered by channel SKU", func(t *testing.T) {
		err := repo.ReplaceImport(ctx, importDate, []fba.ProfitSnapshot{
			profitSnapshot(importDate, "XYZ-999", 250),
			profitSnapshot(importDate, "ABC-123", 604),
		})
		require.NoError(t, err)

		snapshots, err := repo.FindByImportDate(ctx, importDate)
		require.NoError(t, err)
		require.Len(t, snapshots, 2)
		assert.Equal(t, "ABC-123", snapshots[0].ChannelSKU)
		assert.Equal(t, int64(604), snapshots[0].Profit)
		assert.Equal(t, "XYZ-999", snapshots[1].ChannelSKU)
	})

	t.Run("rerun replaces the previous import", func(t *testing.T) {
		err := repo.ReplaceImport(ctx, importDate, []fba.ProfitSnapshot{
			profitSnapshot(importDate, "ABC-123", 590),
		})
		require.NoError(t, err)

		snapshots, err := repo.FindByImportDate(ctx, importDate)
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		assert.Equal(t, int64(590), snapshots[0].Profit)
	})

	t.Run("other import dates are untouched", func(t *testing.T) {
		otherDate := importDate.AddDate(0, 0, 1)
		err := repo.ReplaceImport(ctx, otherDate, []fba.ProfitSnapshot{
			profitSnapshot(otherDate, "DEF-456", 100),
		})
		require.NoError(t, err)

		err = repo.ReplaceImport(ctx, importDate, nil)
		require.NoError(t, err)

		snapshots, err := repo.FindByImportDate(ctx, importDate)
		require.NoError(t, err)
		assert.Empty(t, snapshots)

		snapshots, err = repo.FindByImportDate(ctx, otherDate)
		require.NoError(t, err)
		assert.Len(t, snapshots, 1)
	})
}

func TestGormProfitRepository_LatestImportDate(t *testing.T) {
	db := setupProfitTestDB(t)
	repo := NewGormProfitRepository(db)
	ctx := context.Background()

	t.Run("zero time when nothing imported", func(t *testing.T) {
		latest, err := repo.LatestImportDate(ctx)
		require.NoError(t, err)
		assert.True(t, latest.IsZero())
	})

	t.Run("returns the most recent import", func(t *testing.T) {
		older := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
		newer := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		require.NoError(t, repo.ReplaceImport(ctx, older, []fba.ProfitSnapshot{profitSnapshot(older, "ABC-123", 604)}))
		require.NoError(t, repo.ReplaceImport(ctx, newer, []fba.ProfitSnapshot{profitSnapshot(newer, "ABC-123", 590)}))

		latest, err := repo.LatestImportDate(ctx)
		require.NoError(t, err)
		assert.True(t, latest.Equal(newer))
	})
}
