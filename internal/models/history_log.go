package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// History event types.
const (
	EventCheckout = "checkout"
	EventCheckin  = "checkin"
	EventReserve  = "reserve"
	EventDispose  = "dispose"
	EventUpdate   = "update"
	EventCreate   = "create"
	EventDelete   = "delete"
	EventRestore  = "restore"
)

// HistoryLog is one field-level change on an asset. Append-only: rows are
// never updated or deleted by the core. Multiple field changes in one
// operation share the same EventDate.
type HistoryLog struct {
	ID         string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AssetID    string `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	EventType  string `gorm:"column:event_type;not null" json:"event_type"`
	Field      string `gorm:"column:field;not null" json:"field"`
	ChangeFrom string `gorm:"column:change_from" json:"change_from"`
	ChangeTo   string `gorm:"column:change_to" json:"change_to"`
	ActionBy   string `gorm:"column:action_by" json:"action_by"`

	EventDate time.Time `gorm:"column:event_date;not null;index" json:"event_date"`
	CreatedAt time.Time `json:"createdAt"`
}

func (HistoryLog) TableName() string {
	return "asset_history_logs"
}

func (h *HistoryLog) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
