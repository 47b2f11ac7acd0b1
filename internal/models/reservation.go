package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation types. Exactly one of EmployeeID / Department is set.
const (
	ReservationTypeEmployee   = "Employee"
	ReservationTypeDepartment = "Department"
)

// ReservationRecord reserves an asset for an employee or a department.
// Reservations accumulate; the asset's status transitions to Reserved at most
// once while any reservation exists.
type ReservationRecord struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AssetID    string    `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	Asset      *Asset    `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	Type       string    `gorm:"column:type;type:varchar(20);not null" json:"type"`
	EmployeeID *string   `gorm:"column:employee_id;type:uuid" json:"employee_id"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Department *string   `gorm:"column:department" json:"department"`

	ReservationDate time.Time `gorm:"column:reservation_date;not null" json:"reservation_date"`
	Purpose         *string   `gorm:"column:purpose" json:"purpose"`
	Notes           *string   `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ReservationRecord) TableName() string {
	return "asset_reservations"
}

func (r *ReservationRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
