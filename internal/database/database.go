// Package database opens the Postgres connection and runs migrations.
package database

import (
	"assettrack-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for the full model set.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Asset{},
		&models.Employee{},
		&models.Category{},
		&models.CompanyInfo{},
		&models.CheckoutRecord{},
		&models.CheckinRecord{},
		&models.ReservationRecord{},
		&models.DisposalRecord{},
		&models.MaintenanceRecord{},
		&models.ScheduleRecord{},
		&models.HistoryLog{},
		&models.LeaseRecord{},
		&models.LeaseReturnRecord{},
		&models.ReportSchedule{},
		&models.InventoryItem{},
		&models.StockTransaction{},
	)
}
