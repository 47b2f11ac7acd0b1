package reports

import (
	"context"
	"testing"
	"time"

	"assettrack-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedDepreciable(t *testing.T, db *gorm.DB, tag string, cost string, lifeMonths int, acquired time.Time) models.Asset {
	c := decimal.RequireFromString(cost)
	asset := models.Asset{
		AssetTagID:       tag,
		Description:      "Depreciable asset",
		Status:           models.StatusAvailable,
		Cost:             &c,
		DepreciableAsset: true,
		DepreciableCost:  &c,
		AssetLifeMonths:  &lifeMonths,
		DateAcquired:     &acquired,
	}
	require.NoError(t, db.Create(&asset).Error)
	return asset
}

func TestDepreciationReportFigures(t *testing.T) {
	svc, db, _ := setupReportsTest(t)
	ctx := context.Background()

	acquired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedDepreciable(t, db, "D-1", "12000.00", 24, acquired)
	seedAsset(t, db, "D-2", models.StatusAvailable, "500.00")

	// 360 days = 12 thirty-day months
	asOf := acquired.Add(360 * 24 * time.Hour)
	rep, err := svc.Depreciation(ctx, DepreciationInput{AsOf: asOf})
	require.NoError(t, err)
	require.EqualValues(t, 2, rep.Total)
	require.Len(t, rep.Rows, 2)

	dep := rep.Rows[0]
	require.Equal(t, "D-1", dep.Asset.AssetTagID)
	require.True(t, dep.Figures.Monthly.Equal(decimal.RequireFromString("500.00")))
	require.True(t, dep.Figures.Accumulated.Equal(decimal.RequireFromString("6000.00")))
	require.True(t, dep.Figures.CurrentValue.Equal(decimal.RequireFromString("6000.00")))

	// non-depreciable assets report zeros with cost carried through
	flat := rep.Rows[1]
	require.Equal(t, "D-2", flat.Asset.AssetTagID)
	require.True(t, flat.Figures.Accumulated.IsZero())

	require.True(t, rep.TotalAccumulated.Equal(decimal.RequireFromString("6000.00")))
}

func TestDepreciationReportOnlyDepreciable(t *testing.T) {
	svc, db, _ := setupReportsTest(t)
	ctx := context.Background()

	seedDepreciable(t, db, "D-1", "1200.00", 12, time.Now().AddDate(0, -3, 0))
	seedAsset(t, db, "D-2", models.StatusAvailable, "500.00")

	rep, err := svc.Depreciation(ctx, DepreciationInput{OnlyDepreciable: true})
	require.NoError(t, err)
	require.EqualValues(t, 1, rep.Total)
	require.Len(t, rep.Rows, 1)
	require.Equal(t, "D-1", rep.Rows[0].Asset.AssetTagID)
}

func TestDepreciationReportPagination(t *testing.T) {
	svc, db, _ := setupReportsTest(t)
	ctx := context.Background()

	acquired := time.Now().AddDate(-1, 0, 0)
	for _, tag := range []string{"D-1", "D-2", "D-3"} {
		seedDepreciable(t, db, tag, "1000.00", 12, acquired)
	}

	rep, err := svc.Depreciation(ctx, DepreciationInput{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, rep.Total)
	require.Len(t, rep.Rows, 1)
	require.Equal(t, "D-3", rep.Rows[0].Asset.AssetTagID)
}
