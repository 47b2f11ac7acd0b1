// Package inventory tracks consumables by quantity. Items carry a
// current stock figure that moves only through ledger transactions;
// the ledger itself records every IN, OUT, ADJUSTMENT and TRANSFER.
package inventory

import (
	"context"
	"errors"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service holds DB for inventory item and stock ledger operations.
type Service struct {
	DB *gorm.DB
}

// ItemCreateInput describes a new consumable item.
type ItemCreateInput struct {
	ItemCode    string  `json:"item_code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Unit        *string `json:"unit"`

	CurrentStock  *decimal.Decimal `json:"current_stock"`
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

	ActionBy string `json:"action_by"`
}

// CreateItem inserts a new item. An opening stock greater than zero is
// recorded as an initial IN transaction so the ledger accounts for every
// unit from day one.
func (s *Service) CreateItem(ctx context.Context, in ItemCreateInput) (*models.InventoryItem, error) {
	details := map[string]string{}
	if in.ItemCode == "" {
		details["itemCode"] = "item code is required"
	}
	if in.Name == "" {
		details["name"] = "name is required"
	}
	if len(details) > 0 {
		return nil, apperr.BadRequest("Inventory item validation failed", details)
	}

	stock := decimal.Zero
	if in.CurrentStock != nil {
		stock = *in.CurrentStock
	}

	item := models.InventoryItem{
		ItemCode:      in.ItemCode,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Unit:          in.Unit,
		CurrentStock:  stock,
		MinStockLevel: in.MinStockLevel,
		MaxStockLevel: in.MaxStockLevel,
		UnitCost:      in.UnitCost,
		Location:      in.Location,
		Supplier:      in.Supplier,
		Brand:         in.Brand,
		Model:         in.Model,
		SKU:           in.SKU,
		Barcode:       in.Barcode,
		Remarks:       in.Remarks,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&models.InventoryItem{}).Where("item_code = ?", in.ItemCode).Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return apperr.BadRequestf("Item code already exists")
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if stock.GreaterThan(decimal.Zero) {
			notes := "Initial stock"
			opening := models.StockTransaction{
				ItemID:          item.ID,
				Type:            models.StockIn,
				Quantity:        stock,
				UnitCost:        in.UnitCost,
				Notes:           &notes,
				ActionBy:        in.ActionBy,
				TransactionDate: time.Now(),
			}
			return tx.Create(&opening).Error
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &item, nil
}

// ItemDetail is one item with its recent ledger entries.
type ItemDetail struct {
	Item             models.InventoryItem      `json:"item"`
	Transactions     []models.StockTransaction `json:"transactions"`
	TransactionCount int64                     `json:"transaction_count"`
}

// GetItem loads a live item by ID or item code with its 50 most recent
// ledger entries.
func (s *Service) GetItem(ctx context.Context, ref string) (*ItemDetail, error) {
	item, err := s.findItem(ctx, s.DB, ref)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.StockTransaction{}).Where("item_id = ?", item.ID).Count(&count).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}

	var transactions []models.StockTransaction
	err = s.DB.WithContext(ctx).
		Where("item_id = ?", item.ID).
		Order("transaction_date DESC, id DESC").
		Limit(50).
		Find(&transactions).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return &ItemDetail{Item: *item, Transactions: transactions, TransactionCount: count}, nil
}

// ItemListInput filters and paginates the item list.
type ItemListInput struct {
	Search         string `json:"search"`
	Category       string `json:"category"`
	IncludeDeleted bool   `json:"include_deleted"`
	LowStock       bool   `json:"low_stock"`
	Page           int    `json:"page"`
	PageSize       int    `json:"page_size"`
}

// ItemListResult is one page of items plus pagination metadata.
type ItemListResult struct {
	Items    []models.InventoryItem `json:"items"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

func (in *ItemListInput) normalize() {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 || in.PageSize > 10000 {
		in.PageSize = 50
	}
}

func (s *Service) itemListQuery(ctx context.Context, in ItemListInput) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&models.InventoryItem{})
	if !in.IncludeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if in.Search != "" {
		like := "%" + in.Search + "%"
		q = q.Where("item_code LIKE ? OR name LIKE ? OR description LIKE ? OR sku LIKE ? OR barcode LIKE ?",
			like, like, like, like, like)
	}
	if in.Category != "" {
		q = q.Where("category = ?", in.Category)
	}
	if in.LowStock {
		q = q.Where("min_stock_level IS NOT NULL AND current_stock <= min_stock_level")
	}
	return q
}

// ListItems returns one page of items, newest first. LowStock restricts
// the page to items at or below their minimum stock level.
func (s *Service) ListItems(ctx context.Context, in ItemListInput) (*ItemListResult, error) {
	in.normalize()
	q := s.itemListQuery(ctx, in)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}

	var items []models.InventoryItem
	err := q.Order("created_at DESC, id DESC").
		Offset((in.Page - 1) * in.PageSize).
		Limit(in.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return &ItemListResult{Items: items, Total: total, Page: in.Page, PageSize: in.PageSize}, nil
}

// findItem resolves a live item by UUID or, failing that shape, by item
// code. Soft-deleted items are invisible here.
func (s *Service) findItem(ctx context.Context, db *gorm.DB, ref string) (*models.InventoryItem, error) {
	q := db.WithContext(ctx).Where("is_deleted = ?", false)
	if _, err := uuid.Parse(ref); err == nil {
		q = q.Where("id = ?", ref)
	} else {
		q = q.Where("item_code = ?", ref)
	}

	var item models.InventoryItem
	if err := q.First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFoundf("Inventory item not found")
		}
		return nil, apperr.FromStorage(err)
	}
	return &item, nil
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	var e *apperr.Error
	if errors.As(err, &e) {
		return err
	}
	return apperr.FromStorage(err)
}
