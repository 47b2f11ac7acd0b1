package lifecycle

import (
	"context"
	"testing"
	"time"

	"assettrack-backend/internal/models"
	"assettrack-backend/internal/retry"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeInvalidator records post-commit invalidations.
type fakeInvalidator struct {
	tags []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, tags ...string) {
	f.tags = append(f.tags, tags...)
}

func setupLifecycleTest(t *testing.T) (*Service, *gorm.DB, *fakeInvalidator) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Asset{},
		&models.Employee{},
		&models.Category{},
		&models.CheckoutRecord{},
		&models.CheckinRecord{},
		&models.ReservationRecord{},
		&models.DisposalRecord{},
		&models.MaintenanceRecord{},
		&models.ScheduleRecord{},
		&models.HistoryLog{},
		&models.LeaseRecord{},
		&models.LeaseReturnRecord{},
	))
	inv := &fakeInvalidator{}
	svc := &Service{
		DB:    db,
		Cache: inv,
		Retry: retry.Options{Attempts: 1, BaseWait: time.Millisecond},
	}
	return svc, db, inv
}

func seedAsset(t *testing.T, db *gorm.DB, tag, status string) models.Asset {
	asset := models.Asset{AssetTagID: tag, Description: "Test asset", Status: status}
	require.NoError(t, db.Create(&asset).Error)
	return asset
}

func seedPlacedAsset(t *testing.T, db *gorm.DB, tag, status, dept, site, loc string) models.Asset {
	asset := models.Asset{
		AssetTagID:  tag,
		Description: "Test asset",
		Status:      status,
		Department:  &dept,
		Site:        &site,
		Location:    &loc,
	}
	require.NoError(t, db.Create(&asset).Error)
	return asset
}

func seedEmployee(t *testing.T, db *gorm.DB, name string) models.Employee {
	emp := models.Employee{FullName: name}
	require.NoError(t, db.Create(&emp).Error)
	return emp
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func historyRows(t *testing.T, db *gorm.DB, assetID string) []models.HistoryLog {
	var logs []models.HistoryLog
	require.NoError(t, db.Where("asset_id = ?", assetID).Order("created_at ASC").Find(&logs).Error)
	return logs
}

func reloadAsset(t *testing.T, db *gorm.DB, id string) models.Asset {
	var asset models.Asset
	require.NoError(t, db.Where("id = ?", id).First(&asset).Error)
	return asset
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strp(s string) *string { return &s }
