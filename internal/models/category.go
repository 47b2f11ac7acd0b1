package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups assets for reporting.
type Category struct {
	ID   string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name string `gorm:"column:name;uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CompanyInfo holds the company profile used for asset tag suffixes.
type CompanyInfo struct {
	ID          string  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyName string  `gorm:"column:company_name;not null" json:"company_name"`
	Address     *string `gorm:"column:address" json:"address"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CompanyInfo) TableName() string {
	return "company_info"
}

func (c *CompanyInfo) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
