package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Schedule types.
const (
	ScheduleTypeMaintenance = "maintenance"
	ScheduleTypeDispose     = "dispose"
	ScheduleTypeLeaseReturn = "lease_return"
	ScheduleTypeLease       = "lease"
	ScheduleTypeReserve     = "reserve"
	ScheduleTypeMove        = "move"
	ScheduleTypeCheckin     = "checkin"
	ScheduleTypeCheckout    = "checkout"
)

// Schedule statuses.
const (
	SchedulePending   = "pending"
	ScheduleCompleted = "completed"
	ScheduleCancelled = "cancelled"
)

// ScheduleTypes is the closed set of schedule types.
var ScheduleTypes = []string{
	ScheduleTypeMaintenance,
	ScheduleTypeDispose,
	ScheduleTypeLeaseReturn,
	ScheduleTypeLease,
	ScheduleTypeReserve,
	ScheduleTypeMove,
	ScheduleTypeCheckin,
	ScheduleTypeCheckout,
}

// IsScheduleType reports whether t is a valid schedule type.
func IsScheduleType(t string) bool {
	for _, s := range ScheduleTypes {
		if s == t {
			return true
		}
	}
	return false
}

// IsScheduleStatus reports whether s is a valid schedule status.
func IsScheduleStatus(s string) bool {
	return s == SchedulePending || s == ScheduleCompleted || s == ScheduleCancelled
}

// ScheduleRecord is a planned future action against an asset. CompletedAt /
// CancelledAt are set exactly once, on the first transition into the matching
// terminal status.
type ScheduleRecord struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AssetID string `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	Asset   *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`

	ScheduleType string         `gorm:"column:schedule_type;type:varchar(20);not null" json:"schedule_type"`
	Status       string         `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	DueDate      *time.Time     `gorm:"column:due_date" json:"due_date"`
	Notes        *string        `gorm:"column:notes" json:"notes"`
	Metadata     datatypes.JSON `gorm:"column:metadata" json:"metadata"`

	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ScheduleRecord) TableName() string {
	return "asset_schedules"
}

func (s *ScheduleRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = SchedulePending
	}
	return nil
}
