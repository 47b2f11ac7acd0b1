package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report schedule frequencies.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// ReportSchedule is a recurring report run. NextRunAt is recomputed by the
// background scheduler after each run.
type ReportSchedule struct {
	ID         string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ReportType string `gorm:"column:report_type;not null" json:"report_type"`

	Frequency      string `gorm:"column:frequency;type:varchar(10);not null" json:"frequency"`
	FrequencyDay   *int   `gorm:"column:frequency_day" json:"frequency_day"`
	FrequencyMonth *int   `gorm:"column:frequency_month" json:"frequency_month"`
	ScheduledTime  string `gorm:"column:scheduled_time;type:varchar(5);not null;default:'02:00'" json:"scheduled_time"`

	Filters datatypes.JSON `gorm:"column:filters" json:"filters"`

	NextRunAt time.Time  `gorm:"column:next_run_at;not null;index" json:"next_run_at"`
	LastRunAt *time.Time `gorm:"column:last_run_at" json:"last_run_at"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ReportSchedule) TableName() string {
	return "report_schedules"
}

func (r *ReportSchedule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
