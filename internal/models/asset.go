package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Asset lifecycle statuses. Disposal methods double as terminal statuses.
const (
	StatusAvailable  = "Available"
	StatusCheckedOut = "Checked out"
	StatusReserved   = "Reserved"

	DisposalSold        = "Sold"
	DisposalDonated     = "Donated"
	DisposalScrapped    = "Scrapped"
	DisposalLostMissing = "Lost/Missing"
	DisposalDestroyed   = "Destroyed"
)

// DisposalMethods is the closed set of disposal methods (and terminal statuses).
var DisposalMethods = []string{
	DisposalSold,
	DisposalDonated,
	DisposalScrapped,
	DisposalLostMissing,
	DisposalDestroyed,
}

// IsDisposalStatus reports whether status is a terminal disposal status.
func IsDisposalStatus(status string) bool {
	for _, m := range DisposalMethods {
		if m == status {
			return true
		}
	}
	return false
}

// Asset is the unit of tracking.
type Asset struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AssetTagID  string `gorm:"column:asset_tag_id;uniqueIndex;not null" json:"asset_tag_id"`
	Description string `gorm:"column:description;not null" json:"description"`
	Status      string `gorm:"column:status;type:varchar(20);not null;default:'Available'" json:"status"`

	Department *string `gorm:"column:department" json:"department"`
	Site       *string `gorm:"column:site" json:"site"`
	Location   *string `gorm:"column:location" json:"location"`
	IssuedTo   *string `gorm:"column:issued_to" json:"issued_to"`

	CategoryID *string   `gorm:"column:category_id;type:uuid" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Brand         *string `gorm:"column:brand" json:"brand"`
	Model         *string `gorm:"column:model" json:"model"`
	SerialNo      *string `gorm:"column:serial_no" json:"serial_no"`
	PurchasedFrom *string `gorm:"column:purchased_from" json:"purchased_from"`

	Cost         *decimal.Decimal `gorm:"column:cost;type:decimal(18,2)" json:"cost"`
	PurchaseDate *time.Time       `gorm:"column:purchase_date" json:"purchase_date"`

	DepreciableAsset   bool             `gorm:"column:depreciable_asset;not null;default:false" json:"depreciable_asset"`
	DepreciableCost    *decimal.Decimal `gorm:"column:depreciable_cost;type:decimal(18,2)" json:"depreciable_cost"`
	SalvageValue       *decimal.Decimal `gorm:"column:salvage_value;type:decimal(18,2)" json:"salvage_value"`
	AssetLifeMonths    *int             `gorm:"column:asset_life_months" json:"asset_life_months"`
	DepreciationMethod *string          `gorm:"column:depreciation_method" json:"depreciation_method"`
	DateAcquired       *time.Time       `gorm:"column:date_acquired" json:"date_acquired"`

	IsDeleted bool       `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Asset) TableName() string {
	return "assets"
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusAvailable
	}
	return nil
}
