package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Maintenance statuses.
const (
	MaintenanceScheduled  = "Scheduled"
	MaintenanceInProgress = "In progress"
	MaintenanceCompleted  = "Completed"
	MaintenanceCancelled  = "Cancelled"
)

// MaintenanceStatuses is the closed set of maintenance statuses.
var MaintenanceStatuses = []string{
	MaintenanceScheduled,
	MaintenanceInProgress,
	MaintenanceCompleted,
	MaintenanceCancelled,
}

// IsMaintenanceStatus reports whether status is a valid maintenance status.
func IsMaintenanceStatus(status string) bool {
	for _, s := range MaintenanceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// MaintenanceRecord tracks scheduled and completed maintenance work.
// CompletedAt / CancelledAt are set exactly once, on the first transition into
// the matching terminal status.
type MaintenanceRecord struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AssetID string `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	Asset   *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`

	Title   string           `gorm:"column:title;not null" json:"title"`
	Status  string           `gorm:"column:status;type:varchar(20);not null;default:'Scheduled'" json:"status"`
	DueDate *time.Time       `gorm:"column:due_date" json:"due_date"`
	Cost    *decimal.Decimal `gorm:"column:cost;type:decimal(18,2)" json:"cost"`
	Notes   *string          `gorm:"column:notes" json:"notes"`

	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (MaintenanceRecord) TableName() string {
	return "asset_maintenances"
}

func (m *MaintenanceRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = MaintenanceScheduled
	}
	return nil
}
