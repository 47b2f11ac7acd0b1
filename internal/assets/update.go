package assets

import (
	"context"
	"fmt"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/history"
	"assettrack-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UpdateInput is a partial asset update. Nil fields are left untouched.
// Status is deliberately absent: status moves only through checkout,
// checkin, reserve and dispose.
type UpdateInput struct {
	AssetTagID  *string `json:"asset_tag_id"`
	Description *string `json:"description"`
	Department  *string `json:"department"`
	Site        *string `json:"site"`
	Location    *string `json:"location"`
	CategoryID  *string `json:"category_id"`

	Brand         *string `json:"brand"`
	Model         *string `json:"model"`
	SerialNo      *string `json:"serial_no"`
	PurchasedFrom *string `json:"purchased_from"`

	Cost         *decimal.Decimal `json:"cost"`
	PurchaseDate *time.Time       `json:"purchase_date"`

	DepreciableAsset   *bool            `json:"depreciable_asset"`
	DepreciableCost    *decimal.Decimal `json:"depreciable_cost"`
	SalvageValue       *decimal.Decimal `json:"salvage_value"`
	AssetLifeMonths    *int             `json:"asset_life_months"`
	DepreciationMethod *string          `json:"depreciation_method"`
	DateAcquired       *time.Time       `json:"date_acquired"`

	ActionBy string `json:"action_by"`
}

// Update applies a partial update and writes one history row per field that
// actually changed, all sharing one event timestamp. Dates are compared as
// calendar dates and amounts numerically, so formatting-only edits produce
// no rows.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*models.Asset, error) {
	var asset models.Asset

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&asset).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFoundf("Asset not found")
			}
			return err
		}

		d := differ{eventDate: time.Now(), assetID: asset.ID, actionBy: in.ActionBy}

		if in.AssetTagID != nil && *in.AssetTagID != asset.AssetTagID {
			var dup int64
			if err := tx.Model(&models.Asset{}).
				Where("asset_tag_id = ? AND id <> ?", *in.AssetTagID, asset.ID).
				Count(&dup).Error; err != nil {
				return err
			}
			if dup > 0 {
				return apperr.BadRequestf("Asset tag ID already exists")
			}
			d.log("asset_tag_id", asset.AssetTagID, *in.AssetTagID)
			asset.AssetTagID = *in.AssetTagID
		}
		if in.Description != nil && *in.Description != asset.Description {
			d.log("description", asset.Description, *in.Description)
			asset.Description = *in.Description
		}

		d.str("department", &asset.Department, in.Department)
		d.str("site", &asset.Site, in.Site)
		d.str("location", &asset.Location, in.Location)
		d.str("category_id", &asset.CategoryID, in.CategoryID)
		d.str("brand", &asset.Brand, in.Brand)
		d.str("model", &asset.Model, in.Model)
		d.str("serial_no", &asset.SerialNo, in.SerialNo)
		d.str("purchased_from", &asset.PurchasedFrom, in.PurchasedFrom)
		d.str("depreciation_method", &asset.DepreciationMethod, in.DepreciationMethod)

		d.amount("cost", &asset.Cost, in.Cost)
		d.amount("depreciable_cost", &asset.DepreciableCost, in.DepreciableCost)
		d.amount("salvage_value", &asset.SalvageValue, in.SalvageValue)

		d.date("purchase_date", &asset.PurchaseDate, in.PurchaseDate)
		d.date("date_acquired", &asset.DateAcquired, in.DateAcquired)

		if in.AssetLifeMonths != nil && (asset.AssetLifeMonths == nil || *asset.AssetLifeMonths != *in.AssetLifeMonths) {
			from := ""
			if asset.AssetLifeMonths != nil {
				from = fmt.Sprintf("%d", *asset.AssetLifeMonths)
			}
			d.log("asset_life_months", from, fmt.Sprintf("%d", *in.AssetLifeMonths))
			asset.AssetLifeMonths = in.AssetLifeMonths
		}
		if in.DepreciableAsset != nil && *in.DepreciableAsset != asset.DepreciableAsset {
			d.log("depreciable_asset", fmt.Sprintf("%t", asset.DepreciableAsset), fmt.Sprintf("%t", *in.DepreciableAsset))
			asset.DepreciableAsset = *in.DepreciableAsset
		}

		if len(d.entries) == 0 {
			return nil
		}
		if err := tx.Save(&asset).Error; err != nil {
			return err
		}
		return history.RecordAll(tx, d.entries)
	})
	if err != nil {
		return nil, classify(err)
	}

	s.invalidate(ctx)
	return &asset, nil
}

// SoftDelete moves an asset to the trash. Its records and history remain.
func (s *Service) SoftDelete(ctx context.Context, id, actionBy string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&asset).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFoundf("Asset not found")
			}
			return err
		}
		now := time.Now()
		asset.IsDeleted = true
		asset.DeletedAt = &now
		if err := tx.Save(&asset).Error; err != nil {
			return err
		}
		return history.Record(tx, models.HistoryLog{
			AssetID:    asset.ID,
			EventType:  models.EventDelete,
			Field:      "asset",
			ChangeFrom: asset.AssetTagID,
			ActionBy:   actionBy,
			EventDate:  now,
		})
	})
	if err != nil {
		return classify(err)
	}
	s.invalidate(ctx)
	return nil
}

// Restore brings one trashed asset back.
func (s *Service) Restore(ctx context.Context, id, actionBy string) (*models.Asset, error) {
	restored, err := s.restoreMany(ctx, []string{id}, actionBy, true)
	if err != nil {
		return nil, err
	}
	return &restored[0], nil
}

// BulkRestore brings a batch of trashed assets back, skipping ids that are
// not in the trash. Returns the restored assets.
func (s *Service) BulkRestore(ctx context.Context, ids []string, actionBy string) ([]models.Asset, error) {
	return s.restoreMany(ctx, ids, actionBy, false)
}

func (s *Service) restoreMany(ctx context.Context, ids []string, actionBy string, strict bool) ([]models.Asset, error) {
	var restored []models.Asset

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		restored = restored[:0]
		now := time.Now()
		for _, id := range ids {
			var asset models.Asset
			if err := tx.Where("id = ? AND is_deleted = ?", id, true).First(&asset).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					if strict {
						return apperr.NotFoundf("Asset not found in trash")
					}
					continue
				}
				return err
			}
			asset.IsDeleted = false
			asset.DeletedAt = nil
			if err := tx.Save(&asset).Error; err != nil {
				return err
			}
			entry := models.HistoryLog{
				AssetID:   asset.ID,
				EventType: models.EventRestore,
				Field:     "asset",
				ChangeTo:  asset.AssetTagID,
				ActionBy:  actionBy,
				EventDate: now,
			}
			if err := history.Record(tx, entry); err != nil {
				return err
			}
			restored = append(restored, asset)
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	s.invalidate(ctx)
	return restored, nil
}

// ListTrash returns all trashed assets, most recently deleted first.
func (s *Service) ListTrash(ctx context.Context) ([]models.Asset, error) {
	var items []models.Asset
	err := s.DB.WithContext(ctx).
		Where("is_deleted = ?", true).
		Order("deleted_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return items, nil
}

// EmptyTrash permanently deletes every trashed asset and returns the count.
// History rows are kept: the ledger is append-only even past asset removal.
func (s *Service) EmptyTrash(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("is_deleted = ?", true).Delete(&models.Asset{})
		if res.Error != nil {
			return res.Error
		}
		count = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}
	s.invalidate(ctx)
	return count, nil
}

// differ accumulates history rows for one update, all sharing one timestamp.
type differ struct {
	eventDate time.Time
	assetID   string
	actionBy  string
	entries   []models.HistoryLog
}

func (d *differ) log(field, from, to string) {
	d.entries = append(d.entries, models.HistoryLog{
		AssetID:    d.assetID,
		EventType:  models.EventUpdate,
		Field:      field,
		ChangeFrom: from,
		ChangeTo:   to,
		ActionBy:   d.actionBy,
		EventDate:  d.eventDate,
	})
}

func (d *differ) str(field string, cur **string, next *string) {
	if next == nil {
		return
	}
	from := ""
	if *cur != nil {
		from = **cur
	}
	if from == *next {
		return
	}
	d.log(field, from, *next)
	*cur = next
}

func (d *differ) amount(field string, cur **decimal.Decimal, next *decimal.Decimal) {
	if next == nil {
		return
	}
	if *cur != nil && (*cur).Equal(*next) {
		return
	}
	from := ""
	if *cur != nil {
		from = (*cur).StringFixed(2)
	}
	d.log(field, from, next.StringFixed(2))
	*cur = next
}

func (d *differ) date(field string, cur **time.Time, next *time.Time) {
	if next == nil {
		return
	}
	const layout = "2006-01-02"
	from := ""
	if *cur != nil {
		from = (*cur).Format(layout)
	}
	to := next.Format(layout)
	if from == to {
		return
	}
	d.log(field, from, to)
	*cur = next
}
