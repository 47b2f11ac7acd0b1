package lifecycle

import (
	"context"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/history"
	"assettrack-backend/internal/models"

	"gorm.io/gorm"
)

// CheckoutInput describes one checkout operation over a batch of assets.
type CheckoutInput struct {
	AssetIDs           []string               `json:"asset_ids"`
	EmployeeID         string                 `json:"employee_id"`
	CheckoutDate       time.Time              `json:"checkout_date"`
	ExpectedReturnDate *time.Time             `json:"expected_return_date"`
	Updates            map[string]AssetUpdate `json:"updates"`
	ActionBy           string                 `json:"action_by"`
}

// CheckoutResult reports the created checkout records.
type CheckoutResult struct {
	Checkouts []models.CheckoutRecord `json:"checkouts"`
	Count     int                     `json:"count"`
}

// Checkout transitions each asset to Checked out, optionally overwriting its
// placement, creates one CheckoutRecord per asset, and appends one history
// row per changed field, all sharing the checkout date as event timestamp.
// Any missing asset fails the whole batch.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	details := map[string]string{}
	if len(in.AssetIDs) == 0 {
		details["assetIds"] = "at least one asset id is required"
	}
	if in.EmployeeID == "" {
		details["employeeId"] = "assignee is required"
	}
	if in.CheckoutDate.IsZero() {
		details["checkoutDate"] = "checkout date is required"
	}
	if len(details) > 0 {
		return nil, apperr.BadRequest("Checkout validation failed", details)
	}

	// fire-and-continue: resolution runs while validation finishes, but the
	// result is awaited before the transaction opens so it can feed the
	// history rows written inside it
	nameCh := s.resolveEmployeeName(ctx, in.EmployeeID)
	assignee := <-nameCh

	var result CheckoutResult
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		result = CheckoutResult{}
		for _, id := range in.AssetIDs {
			asset, err := loadAssetForUpdate(tx, id)
			if err != nil {
				return err
			}
			if asset.Status == models.StatusCheckedOut {
				return apperr.InvalidStatef("Asset %s is already checked out", asset.AssetTagID)
			}
			if models.IsDisposalStatus(asset.Status) {
				return apperr.InvalidStatef("Asset %s is disposed (%s)", asset.AssetTagID, asset.Status)
			}

			var logs []models.HistoryLog
			logChange := func(field, from, to string) {
				if from == to {
					return
				}
				logs = append(logs, models.HistoryLog{
					AssetID:    asset.ID,
					EventType:  models.EventCheckout,
					Field:      field,
					ChangeFrom: from,
					ChangeTo:   to,
					ActionBy:   in.ActionBy,
					EventDate:  in.CheckoutDate,
				})
			}

			logChange("status", asset.Status, models.StatusCheckedOut)
			asset.Status = models.StatusCheckedOut

			if upd, ok := in.Updates[id]; ok {
				if upd.Department != nil {
					logChange("department", strOrEmpty(asset.Department), *upd.Department)
					asset.Department = upd.Department
				}
				if upd.Site != nil {
					logChange("site", strOrEmpty(asset.Site), *upd.Site)
					asset.Site = upd.Site
				}
				if upd.Location != nil {
					logChange("location", strOrEmpty(asset.Location), *upd.Location)
					asset.Location = upd.Location
				}
			}

			logChange("assignee", strOrEmpty(asset.IssuedTo), assignee)
			issued := assignee
			asset.IssuedTo = &issued

			if err := tx.Save(asset).Error; err != nil {
				return err
			}

			employeeID := in.EmployeeID
			record := models.CheckoutRecord{
				AssetID:            asset.ID,
				EmployeeID:         &employeeID,
				CheckoutDate:       in.CheckoutDate,
				ExpectedReturnDate: in.ExpectedReturnDate,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			if err := history.RecordAll(tx, logs); err != nil {
				return err
			}
			result.Checkouts = append(result.Checkouts, record)
		}
		result.Count = len(result.Checkouts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &result, nil
}
