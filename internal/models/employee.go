package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is an assignee for checkouts and reservations.
type Employee struct {
	ID         string  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FullName   string  `gorm:"column:full_name;not null" json:"full_name"`
	Email      *string `gorm:"column:email" json:"email"`
	Department *string `gorm:"column:department" json:"department"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
