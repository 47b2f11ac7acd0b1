package lifecycle

import (
	"context"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/history"
	"assettrack-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const disposalCheckinNote = "Checked in automatically on disposal"

// DisposeInput describes one disposal over a batch of assets. Method Sold
// requires a positive value for every asset, either the common Value or a
// per-asset entry.
type DisposeInput struct {
	AssetIDs       []string                   `json:"asset_ids"`
	DisposeDate    time.Time                  `json:"dispose_date"`
	Method         string                     `json:"method"`
	Reason         *string                    `json:"reason"`
	Value          *decimal.Decimal           `json:"value"`
	PerAssetValues map[string]decimal.Decimal `json:"per_asset_values"`
	ActionBy       string                     `json:"action_by"`
}

// DisposeResult reports the created disposal records.
type DisposeResult struct {
	Disposals []models.DisposalRecord `json:"disposals"`
	Count     int                     `json:"count"`
}

// Dispose moves each asset into the terminal status named by the method,
// closing its active checkouts and clearing its operational placement. An
// asset already disposed fails the whole batch.
func (s *Service) Dispose(ctx context.Context, in DisposeInput) (*DisposeResult, error) {
	details := map[string]string{}
	if len(in.AssetIDs) == 0 {
		details["assetIds"] = "at least one asset id is required"
	}
	if in.DisposeDate.IsZero() {
		details["disposeDate"] = "disposal date is required"
	}
	if !models.IsDisposalStatus(in.Method) {
		details["method"] = "invalid disposal method"
	}
	if in.Method == models.DisposalSold {
		for _, id := range in.AssetIDs {
			if v := in.disposalValue(id); v == nil || !v.IsPositive() {
				details["value"] = "a positive sale value is required for every asset when method is Sold"
				break
			}
		}
	}
	if len(details) > 0 {
		return nil, apperr.BadRequest("Disposal validation failed", details)
	}

	var result DisposeResult
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		result = DisposeResult{}
		for _, id := range in.AssetIDs {
			asset, err := loadAssetForUpdate(tx, id)
			if err != nil {
				return err
			}
			if models.IsDisposalStatus(asset.Status) {
				return apperr.InvalidStatef("Asset %s is already disposed (%s)", asset.AssetTagID, asset.Status)
			}

			// a disposed asset never retains an active checkout
			active, err := activeCheckouts(tx, asset.ID)
			if err != nil {
				return err
			}
			for _, co := range active {
				note := disposalCheckinNote
				record := models.CheckinRecord{
					CheckoutID:  co.ID,
					AssetID:     asset.ID,
					EmployeeID:  co.EmployeeID,
					CheckinDate: in.DisposeDate,
					Notes:       &note,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}

			disposal := models.DisposalRecord{
				AssetID:       asset.ID,
				DisposalDate:  in.DisposeDate,
				Method:        in.Method,
				DisposalValue: in.disposalValue(id),
				Reason:        in.Reason,
			}
			if err := tx.Create(&disposal).Error; err != nil {
				return err
			}

			var logs []models.HistoryLog
			logChange := func(field, from, to string) {
				if from == to {
					return
				}
				logs = append(logs, models.HistoryLog{
					AssetID:    asset.ID,
					EventType:  models.EventDispose,
					Field:      field,
					ChangeFrom: from,
					ChangeTo:   to,
					ActionBy:   in.ActionBy,
					EventDate:  in.DisposeDate,
				})
			}

			logChange("status", asset.Status, in.Method)
			logChange("location", strOrEmpty(asset.Location), "")
			logChange("department", strOrEmpty(asset.Department), "")
			logChange("site", strOrEmpty(asset.Site), "")
			logChange("assignee", strOrEmpty(asset.IssuedTo), "")

			asset.Status = in.Method
			asset.Location = nil
			asset.Department = nil
			asset.Site = nil
			asset.IssuedTo = nil

			if err := tx.Save(asset).Error; err != nil {
				return err
			}
			if err := history.RecordAll(tx, logs); err != nil {
				return err
			}
			result.Disposals = append(result.Disposals, disposal)
		}
		result.Count = len(result.Disposals)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &result, nil
}

// disposalValue resolves the per-asset value, falling back to the common one.
func (in DisposeInput) disposalValue(assetID string) *decimal.Decimal {
	if v, ok := in.PerAssetValues[assetID]; ok {
		return &v
	}
	return in.Value
}
