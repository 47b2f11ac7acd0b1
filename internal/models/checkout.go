package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutRecord is created once per asset per checkout operation. A checkout
// is active while no CheckinRecord references it and it carries an assignee.
type CheckoutRecord struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AssetID    string    `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	Asset      *Asset    `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	EmployeeID *string   `gorm:"column:employee_id;type:uuid;index" json:"employee_id"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`

	CheckoutDate       time.Time  `gorm:"column:checkout_date;not null" json:"checkout_date"`
	ExpectedReturnDate *time.Time `gorm:"column:expected_return_date" json:"expected_return_date"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CheckoutRecord) TableName() string {
	return "asset_checkouts"
}

func (c *CheckoutRecord) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CheckinRecord closes exactly one CheckoutRecord. Write-once: never updated
// after creation.
type CheckinRecord struct {
	ID         string          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CheckoutID string          `gorm:"column:checkout_id;type:uuid;not null;uniqueIndex" json:"checkout_id"`
	Checkout   *CheckoutRecord `gorm:"foreignKey:CheckoutID" json:"checkout,omitempty"`
	AssetID    string          `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	EmployeeID *string         `gorm:"column:employee_id;type:uuid" json:"employee_id"`

	CheckinDate time.Time `gorm:"column:checkin_date;not null" json:"checkin_date"`
	Condition   *string   `gorm:"column:condition" json:"condition"`
	Notes       *string   `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
}

func (CheckinRecord) TableName() string {
	return "asset_checkins"
}

func (c *CheckinRecord) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
