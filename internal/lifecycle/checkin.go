package lifecycle

import (
	"context"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/history"
	"assettrack-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CheckinInput describes one check-in operation over a batch of assets.
type CheckinInput struct {
	AssetIDs    []string               `json:"asset_ids"`
	CheckinDate time.Time              `json:"checkin_date"`
	Condition   *string                `json:"condition"`
	Notes       *string                `json:"notes"`
	Updates     map[string]AssetUpdate `json:"updates"`
	ActionBy    string                 `json:"action_by"`
}

// CheckinResult reports the most recent check-in record per asset. Count is
// the total number of records created: every active checkout is closed
// server-side regardless of how many records are returned.
type CheckinResult struct {
	Checkins []models.CheckinRecord `json:"checkins"`
	Count    int                    `json:"count"`
}

// Checkin closes every active checkout on each asset and returns it to
// Available. An asset that is not checked out, or has no active checkout,
// fails the whole batch with InvalidState.
func (s *Service) Checkin(ctx context.Context, in CheckinInput) (*CheckinResult, error) {
	details := map[string]string{}
	if len(in.AssetIDs) == 0 {
		details["assetIds"] = "at least one asset id is required"
	}
	if in.CheckinDate.IsZero() {
		details["checkinDate"] = "check-in date is required"
	}
	if len(details) > 0 {
		return nil, apperr.BadRequest("Check-in validation failed", details)
	}

	var result CheckinResult
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		result = CheckinResult{}
		for _, id := range in.AssetIDs {
			asset, err := loadAssetForUpdate(tx, id)
			if err != nil {
				return err
			}
			if asset.Status != models.StatusCheckedOut {
				return apperr.InvalidStatef("Asset %s is %s, not checked out", asset.AssetTagID, asset.Status)
			}

			active, err := activeCheckouts(tx, asset.ID)
			if err != nil {
				return err
			}
			if len(active) == 0 {
				return apperr.InvalidStatef("Asset %s has no active checkout", asset.AssetTagID)
			}

			created := 0
			var latest models.CheckinRecord
			for _, co := range active {
				record := models.CheckinRecord{
					CheckoutID:  co.ID,
					AssetID:     asset.ID,
					EmployeeID:  co.EmployeeID,
					CheckinDate: in.CheckinDate,
					Condition:   in.Condition,
					Notes:       in.Notes,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
				latest = record
				created++
			}

			var logs []models.HistoryLog
			logChange := func(field, from, to string) {
				if from == to {
					return
				}
				logs = append(logs, models.HistoryLog{
					AssetID:    asset.ID,
					EventType:  models.EventCheckin,
					Field:      field,
					ChangeFrom: from,
					ChangeTo:   to,
					ActionBy:   in.ActionBy,
					EventDate:  in.CheckinDate,
				})
			}

			logChange("status", asset.Status, models.StatusAvailable)
			asset.Status = models.StatusAvailable

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

			// clear the assignee; the most recent checkout names the holder
			prevAssignee := strOrEmpty(asset.IssuedTo)
			if prevAssignee == "" {
				last := active[len(active)-1]
				if last.EmployeeID != nil {
					prevAssignee = employeeNameTx(tx, *last.EmployeeID)
				}
			}
			logChange("assignee", prevAssignee, "")
			asset.IssuedTo = nil

			if err := tx.Save(asset).Error; err != nil {
				return err
			}
			if err := history.RecordAll(tx, logs); err != nil {
				return err
			}

			result.Checkins = append(result.Checkins, latest)
			result.Count += created
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &result, nil
}

// activeCheckouts returns the asset's checkouts with no check-in and a
// non-nil assignee, oldest first. Assignee-less open checkouts are not
// closable through this path; they are reported but left open.
func activeCheckouts(tx *gorm.DB, assetID string) ([]models.CheckoutRecord, error) {
	var open []models.CheckoutRecord
	err := tx.
		Where("asset_id = ?", assetID).
		Where("id NOT IN (?)", tx.Session(&gorm.Session{NewDB: true}).Model(&models.CheckinRecord{}).Select("checkout_id")).
		Order("checkout_date ASC, created_at ASC").
		Find(&open).Error
	if err != nil {
		return nil, err
	}

	active := open[:0]
	orphaned := 0
	for _, co := range open {
		if co.EmployeeID == nil {
			orphaned++
			continue
		}
		active = append(active, co)
	}
	if orphaned > 0 {
		log.Warn().Str("asset_id", assetID).Int("count", orphaned).
			Msg("open checkouts without assignee cannot be closed via check-in")
	}
	return active, nil
}
