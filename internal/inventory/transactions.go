package inventory

import (
	"context"
	"fmt"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionInput describes one stock movement. DestinationRef names the
// receiving item (ID or item code) and is required for transfers only.
type TransactionInput struct {
	Type           string           `json:"type"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitCost       *decimal.Decimal `json:"unit_cost"`
	Reference      *string          `json:"reference"`
	Notes          *string          `json:"notes"`
	DestinationRef string           `json:"destination_ref"`
	ActionBy       string           `json:"action_by"`
}

// RecordTransaction appends a ledger entry for the item named by ref and
// moves its stock accordingly. IN and ADJUSTMENT add the quantity, OUT
// and TRANSFER subtract it and fail on insufficient stock. A transfer
// writes one row per side, linked to each other, and moves the quantity
// into the destination item. An IN with a unit cost folds it into the
// item's cost as a stock-weighted average.
func (s *Service) RecordTransaction(ctx context.Context, ref string, in TransactionInput) (*models.StockTransaction, error) {
	details := map[string]string{}
	if in.Type == "" {
		details["type"] = "transaction type is required"
	} else if !models.IsStockTransactionType(in.Type) {
		details["type"] = "invalid transaction type"
	}
	if in.Quantity.IsZero() {
		details["quantity"] = "quantity is required"
	}
	if in.Type == models.StockTransfer && in.DestinationRef == "" {
		details["destinationRef"] = "destination item is required for transfer transactions"
	}
	if len(details) > 0 {
		return nil, apperr.BadRequest("Stock transaction validation failed", details)
	}

	var entry models.StockTransaction
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		source, err := s.findItem(ctx, tx, ref)
		if err != nil {
			return err
		}

		if in.Type == models.StockTransfer {
			return s.transfer(ctx, tx, source, in, &entry)
		}

		prior := source.CurrentStock
		stock := prior
		switch in.Type {
		case models.StockIn, models.StockAdjustment:
			stock = stock.Add(in.Quantity)
		case models.StockOut:
			stock = stock.Sub(in.Quantity)
			if stock.IsNegative() {
				return apperr.BadRequestf("Insufficient stock")
			}
		}

		entry = models.StockTransaction{
			ItemID:          source.ID,
			Type:            in.Type,
			Quantity:        in.Quantity,
			UnitCost:        in.UnitCost,
			Reference:       in.Reference,
			Notes:           in.Notes,
			ActionBy:        in.ActionBy,
			TransactionDate: time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		source.CurrentStock = stock
		if in.Type == models.StockIn && in.UnitCost != nil {
			cost := weightedUnitCost(prior, source.UnitCost, in.Quantity, *in.UnitCost)
			source.UnitCost = &cost
		}
		return tx.Save(source).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	return &entry, nil
}

// transfer moves quantity from source to the destination item inside the
// caller's transaction. Both ledger rows share one transaction date.
func (s *Service) transfer(ctx context.Context, tx *gorm.DB, source *models.InventoryItem, in TransactionInput, entry *models.StockTransaction) error {
	if in.DestinationRef == source.ID || in.DestinationRef == source.ItemCode {
		return apperr.BadRequestf("Cannot transfer to the same item")
	}
	dest, err := s.findItem(ctx, tx, in.DestinationRef)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.NotFoundf("Destination inventory item not found")
		}
		return err
	}
	if dest.ID == source.ID {
		return apperr.BadRequestf("Cannot transfer to the same item")
	}

	newStock := source.CurrentStock.Sub(in.Quantity)
	if newStock.IsNegative() {
		return apperr.BadRequestf("Insufficient stock")
	}

	when := time.Now()
	outNotes := in.Notes
	if outNotes == nil {
		n := fmt.Sprintf("Transfer to %s", dest.Name)
		outNotes = &n
	}
	out := models.StockTransaction{
		ItemID:          source.ID,
		Type:            models.StockTransfer,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		Reference:       in.Reference,
		Notes:           outNotes,
		ActionBy:        in.ActionBy,
		TransactionDate: when,
	}
	if err := tx.Create(&out).Error; err != nil {
		return err
	}

	inNotes := in.Notes
	if inNotes == nil {
		n := fmt.Sprintf("Transfer from %s", source.Name)
		inNotes = &n
	}
	received := models.StockTransaction{
		ItemID:               dest.ID,
		Type:                 models.StockIn,
		Quantity:             in.Quantity,
		UnitCost:             in.UnitCost,
		Reference:            in.Reference,
		Notes:                inNotes,
		ActionBy:             in.ActionBy,
		TransactionDate:      when,
		RelatedTransactionID: &out.ID,
	}
	if err := tx.Create(&received).Error; err != nil {
		return err
	}
	out.RelatedTransactionID = &received.ID
	if err := tx.Save(&out).Error; err != nil {
		return err
	}

	source.CurrentStock = newStock
	if err := tx.Save(source).Error; err != nil {
		return err
	}

	if in.UnitCost != nil {
		cost := weightedUnitCost(dest.CurrentStock, dest.UnitCost, in.Quantity, *in.UnitCost)
		dest.UnitCost = &cost
	}
	dest.CurrentStock = dest.CurrentStock.Add(in.Quantity)
	if err := tx.Save(dest).Error; err != nil {
		return err
	}

	*entry = out
	return nil
}

// weightedUnitCost folds incoming units at inCost into an existing
// holding. Without prior stock or a prior cost the incoming cost wins.
func weightedUnitCost(stock decimal.Decimal, cost *decimal.Decimal, qty, inCost decimal.Decimal) decimal.Decimal {
	if stock.GreaterThan(decimal.Zero) && cost != nil && cost.GreaterThan(decimal.Zero) {
		total := stock.Mul(*cost).Add(qty.Mul(inCost))
		return total.Div(stock.Add(qty)).Round(2)
	}
	return inCost
}

// TransactionListInput filters and paginates one item's ledger.
type TransactionListInput struct {
	Type     string `json:"type"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// TransactionListResult is one page of ledger entries plus pagination
// metadata.
type TransactionListResult struct {
	Transactions []models.StockTransaction `json:"transactions"`
	Total        int64                     `json:"total"`
	Page         int                       `json:"page"`
	PageSize     int                       `json:"page_size"`
}

// ListTransactions returns one page of the item's ledger, newest first.
func (s *Service) ListTransactions(ctx context.Context, ref string, in TransactionListInput) (*TransactionListResult, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 || in.PageSize > 10000 {
		in.PageSize = 50
	}

	item, err := s.findItem(ctx, s.DB, ref)
	if err != nil {
		return nil, err
	}

	q := s.DB.WithContext(ctx).Model(&models.StockTransaction{}).Where("item_id = ?", item.ID)
	if in.Type != "" {
		q = q.Where("type = ?", in.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}

	var entries []models.StockTransaction
	err = q.Order("transaction_date DESC, id DESC").
		Offset((in.Page - 1) * in.PageSize).
		Limit(in.PageSize).
		Find(&entries).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return &TransactionListResult{Transactions: entries, Total: total, Page: in.Page, PageSize: in.PageSize}, nil
}

// BulkDeleteTransactions removes the named ledger entries from one item.
// Every ID must belong to that item or the whole call fails. Current
// stock is left untouched.
func (s *Service) BulkDeleteTransactions(ctx context.Context, ref string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperr.BadRequestf("Transaction IDs are required")
	}

	var deleted int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.findItem(ctx, tx, ref)
		if err != nil {
			return err
		}

		var owned int64
		if err := tx.Model(&models.StockTransaction{}).
			Where("id IN ? AND item_id = ?", ids, item.ID).Count(&owned).Error; err != nil {
			return err
		}
		if owned != int64(len(ids)) {
			return apperr.BadRequestf("Some transactions not found or do not belong to this inventory item")
		}

		res := tx.Where("id IN ? AND item_id = ?", ids, item.ID).Delete(&models.StockTransaction{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}
	return deleted, nil
}
