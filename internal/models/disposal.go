package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DisposalRecord marks an asset's permanent removal. The method becomes the
// asset's terminal status.
type DisposalRecord struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AssetID string `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	Asset   *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`

	DisposalDate  time.Time        `gorm:"column:disposal_date;not null" json:"disposal_date"`
	Method        string           `gorm:"column:method;type:varchar(20);not null" json:"method"`
	DisposalValue *decimal.Decimal `gorm:"column:disposal_value;type:decimal(18,2)" json:"disposal_value"`
	Reason        *string          `gorm:"column:reason" json:"reason"`
	Notes         *string          `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
}

func (DisposalRecord) TableName() string {
	return "asset_disposals"
}

func (d *DisposalRecord) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
