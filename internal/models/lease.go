package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaseRecord tracks an asset leased out to an external party.
type LeaseRecord struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AssetID string `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	Asset   *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`

	Lessee         string     `gorm:"column:lessee;not null" json:"lessee"`
	LeaseStartDate time.Time  `gorm:"column:lease_start_date;not null" json:"lease_start_date"`
	LeaseEndDate   *time.Time `gorm:"column:lease_end_date" json:"lease_end_date"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (LeaseRecord) TableName() string {
	return "asset_leases"
}

func (l *LeaseRecord) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// LeaseReturnRecord closes a lease.
type LeaseReturnRecord struct {
	ID      string       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AssetID string       `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	Asset   *Asset       `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	LeaseID string       `gorm:"column:lease_id;type:uuid;not null;index" json:"lease_id"`
	Lease   *LeaseRecord `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`

	ReturnDate time.Time `gorm:"column:return_date;not null" json:"return_date"`
	Condition  *string   `gorm:"column:condition" json:"condition"`
	Notes      *string   `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
}

func (LeaseReturnRecord) TableName() string {
	return "asset_lease_returns"
}

func (l *LeaseReturnRecord) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
