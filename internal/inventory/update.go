package inventory

import (
	"context"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemUpdateInput carries only the fields to change. CurrentStock is
// deliberately absent: stock moves only through ledger transactions.
type ItemUpdateInput struct {
	ItemCode    *string `json:"item_code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Unit        *string `json:"unit"`

	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
	MaxStockLevel *decimal.Decimal `json:"max_stock_level"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`

	Location *string `json:"location"`
	Supplier *string `json:"supplier"`
	Brand    *string `json:"brand"`
	Model    *string `json:"model"`
	SKU      *string `json:"sku"`
	Barcode  *string `json:"barcode"`
	Remarks  *string `json:"remarks"`
}

// UpdateItem applies the provided fields to an existing item. A changed
// item code must stay unique.
func (s *Service) UpdateItem(ctx context.Context, id string, in ItemUpdateInput) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFoundf("Inventory item not found")
			}
			return err
		}

		if in.ItemCode != nil && *in.ItemCode != item.ItemCode {
			var dup int64
			if err := tx.Model(&models.InventoryItem{}).
				Where("item_code = ? AND id <> ?", *in.ItemCode, item.ID).Count(&dup).Error; err != nil {
				return err
			}
			if dup > 0 {
				return apperr.BadRequestf("Item code already exists")
			}
			item.ItemCode = *in.ItemCode
		}
		if in.Name != nil {
			item.Name = *in.Name
		}
		if in.Description != nil {
			item.Description = in.Description
		}
		if in.Category != nil {
			item.Category = in.Category
		}
		if in.Unit != nil {
			item.Unit = in.Unit
		}
		if in.MinStockLevel != nil {
			item.MinStockLevel = in.MinStockLevel
		}
		if in.MaxStockLevel != nil {
			item.MaxStockLevel = in.MaxStockLevel
		}
		if in.UnitCost != nil {
			item.UnitCost = in.UnitCost
		}
		if in.Location != nil {
			item.Location = in.Location
		}
		if in.Supplier != nil {
			item.Supplier = in.Supplier
		}
		if in.Brand != nil {
			item.Brand = in.Brand
		}
		if in.Model != nil {
			item.Model = in.Model
		}
		if in.SKU != nil {
			item.SKU = in.SKU
		}
		if in.Barcode != nil {
			item.Barcode = in.Barcode
		}
		if in.Remarks != nil {
			item.Remarks = in.Remarks
		}

		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	return &item, nil
}

// DeleteItem archives an item, or removes it outright when permanent is
// set. The ledger is left in place either way.
func (s *Service) DeleteItem(ctx context.Context, id string, permanent bool) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFoundf("Inventory item not found")
			}
			return err
		}
		if permanent {
			return tx.Delete(&item).Error
		}
		now := time.Now()
		item.IsDeleted = true
		item.DeletedAt = &now
		return tx.Save(&item).Error
	})
	return classify(err)
}

// RestoreItem brings an archived item back.
func (s *Service) RestoreItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFoundf("Inventory item not found")
			}
			return err
		}
		if !item.IsDeleted {
			return apperr.BadRequestf("Item is not deleted")
		}
		item.IsDeleted = false
		item.DeletedAt = nil
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	return &item, nil
}

// BulkRestoreItems restores every archived item in ids and returns how
// many rows changed. IDs that are missing or not archived are skipped.
func (s *Service) BulkRestoreItems(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperr.BadRequestf("Invalid request. Expected an array of item IDs.")
	}

	var restored int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InventoryItem{}).
			Where("id IN ? AND is_deleted = ?", ids, true).
			Updates(map[string]interface{}{"is_deleted": false, "deleted_at": nil})
		if res.Error != nil {
			return res.Error
		}
		restored = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}
	return restored, nil
}
