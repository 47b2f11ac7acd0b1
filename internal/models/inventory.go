package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock transaction types. Transfers produce a linked pair of rows, one
// per side.
const (
	StockIn         = "IN"
	StockOut        = "OUT"
	StockAdjustment = "ADJUSTMENT"
	StockTransfer   = "TRANSFER"
)

// StockTransactionTypes is the closed set of ledger entry types.
var StockTransactionTypes = []string{StockIn, StockOut, StockAdjustment, StockTransfer}

// IsStockTransactionType reports whether t is a valid ledger entry type.
func IsStockTransactionType(t string) bool {
	for _, v := range StockTransactionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// InventoryItem is a consumable tracked by quantity rather than by tag.
// CurrentStock moves only through stock transactions.
type InventoryItem struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ItemCode string `gorm:"column:item_code;uniqueIndex;not null" json:"item_code"`
	Name     string `gorm:"column:name;not null" json:"name"`

	Description *string `gorm:"column:description" json:"description"`
	Category    *string `gorm:"column:category" json:"category"`
	Unit        *string `gorm:"column:unit" json:"unit"`

	CurrentStock  decimal.Decimal  `gorm:"column:current_stock;type:decimal(18,2);not null;default:0" json:"current_stock"`
	MinStockLevel *decimal.Decimal `gorm:"column:min_stock_level;type:decimal(18,2)" json:"min_stock_level"`
	MaxStockLevel *decimal.Decimal `gorm:"column:max_stock_level;type:decimal(18,2)" json:"max_stock_level"`
	UnitCost      *decimal.Decimal `gorm:"column:unit_cost;type:decimal(18,2)" json:"unit_cost"`

	Location *string `gorm:"column:location" json:"location"`
	Supplier *string `gorm:"column:supplier" json:"supplier"`
	Brand    *string `gorm:"column:brand" json:"brand"`
	Model    *string `gorm:"column:model" json:"model"`
	SKU      *string `gorm:"column:sku" json:"sku"`
	Barcode  *string `gorm:"column:barcode" json:"barcode"`
	Remarks  *string `gorm:"column:remarks" json:"remarks"`

	IsDeleted bool       `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// StockTransaction is one entry in an item's stock ledger. The two rows
// of a transfer reference each other through RelatedTransactionID.
type StockTransaction struct {
	ID     string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ItemID string         `gorm:"column:item_id;type:uuid;not null;index" json:"item_id"`
	Item   *InventoryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`

	Type     string           `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Quantity decimal.Decimal  `gorm:"column:quantity;type:decimal(18,2);not null" json:"quantity"`
	UnitCost *decimal.Decimal `gorm:"column:unit_cost;type:decimal(18,2)" json:"unit_cost"`

	Reference *string `gorm:"column:reference" json:"reference"`
	Notes     *string `gorm:"column:notes" json:"notes"`
	ActionBy  string  `gorm:"column:action_by;not null" json:"action_by"`

	TransactionDate      time.Time `gorm:"column:transaction_date;not null" json:"transaction_date"`
	RelatedTransactionID *string   `gorm:"column:related_transaction_id;type:uuid" json:"related_transaction_id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (StockTransaction) TableName() string {
	return "inventory_transactions"
}

func (s *StockTransaction) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
