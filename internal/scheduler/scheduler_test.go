package scheduler

import (
	"context"
	"testing"
	"time"

	"assettrack-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSchedulerTest(t *testing.T) (*Scheduler, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Asset{},
		&models.ReportSchedule{},
		&models.MaintenanceRecord{},
	))
	s, err := New(db, DefaultOptions())
	require.NoError(t, err)
	return s, db
}

func TestAdvanceDueReportSchedules(t *testing.T) {
	s, db := setupSchedulerTest(t)
	ctx := context.Background()
	now := time.Now().UTC()

	due := models.ReportSchedule{
		ReportType:    "asset_summary",
		Frequency:     models.FrequencyDaily,
		ScheduledTime: "02:00",
		NextRunAt:     now.Add(-time.Hour),
	}
	require.NoError(t, db.Create(&due).Error)

	future := models.ReportSchedule{
		ReportType:    "depreciation",
		Frequency:     models.FrequencyDaily,
		ScheduledTime: "02:00",
		NextRunAt:     now.Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&future).Error)

	n, err := s.AdvanceDueReportSchedules(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	var reloaded models.ReportSchedule
	require.NoError(t, db.First(&reloaded, "id = ?", due.ID).Error)
	require.NotNil(t, reloaded.LastRunAt)
	require.True(t, reloaded.NextRunAt.After(now))

	var untouched models.ReportSchedule
	require.NoError(t, db.First(&untouched, "id = ?", future.ID).Error)
	require.Nil(t, untouched.LastRunAt)
}

func TestAdvanceIsIdempotentUntilNextDue(t *testing.T) {
	s, db := setupSchedulerTest(t)
	ctx := context.Background()
	now := time.Now().UTC()

	sched := models.ReportSchedule{
		ReportType:    "asset_summary",
		Frequency:     models.FrequencyDaily,
		ScheduledTime: "02:00",
		NextRunAt:     now.Add(-time.Minute),
	}
	require.NoError(t, db.Create(&sched).Error)

	n, err := s.AdvanceDueReportSchedules(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// the schedule moved past now, a second pass finds nothing
	n, err = s.AdvanceDueReportSchedules(ctx, now)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestDueMaintenance(t *testing.T) {
	s, db := setupSchedulerTest(t)
	ctx := context.Background()
	now := time.Now()

	asset := models.Asset{AssetTagID: "T-1", Description: "Server", Status: models.StatusAvailable}
	require.NoError(t, db.Create(&asset).Error)

	overdue := now.Add(-24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)
	require.NoError(t, db.Create(&models.MaintenanceRecord{AssetID: asset.ID, Title: "Disk swap", Status: models.MaintenanceScheduled, DueDate: &overdue}).Error)
	require.NoError(t, db.Create(&models.MaintenanceRecord{AssetID: asset.ID, Title: "Audit", Status: models.MaintenanceScheduled, DueDate: &nextWeek}).Error)
	require.NoError(t, db.Create(&models.MaintenanceRecord{AssetID: asset.ID, Title: "Done", Status: models.MaintenanceCompleted, DueDate: &overdue}).Error)

	due, err := s.DueMaintenance(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "Disk swap", due[0].Title)
	require.NotNil(t, due[0].Asset)
}
