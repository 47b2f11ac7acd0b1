package lifecycle

import (
	"context"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/history"
	"assettrack-backend/internal/models"

	"gorm.io/gorm"
)

// LeaseReturnInput closes a lease.
type LeaseReturnInput struct {
	LeaseID    string    `json:"lease_id"`
	ReturnDate time.Time `json:"return_date"`
	Condition  *string   `json:"condition"`
	Notes      *string   `json:"notes"`
	ActionBy   string    `json:"action_by"`
}

// ReturnLease records the return of a leased asset and ends the lease. A
// lease that already has a return fails with InvalidState.
func (s *Service) ReturnLease(ctx context.Context, in LeaseReturnInput) (*models.LeaseReturnRecord, error) {
	details := map[string]string{}
	if in.LeaseID == "" {
		details["leaseId"] = "lease id is required"
	}
	if in.ReturnDate.IsZero() {
		details["returnDate"] = "return date is required"
	}
	if len(details) > 0 {
		return nil, apperr.BadRequest("Lease return validation failed", details)
	}

	var record models.LeaseReturnRecord
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		var lease models.LeaseRecord
		if err := lockForUpdate(tx).Where("id = ?", in.LeaseID).First(&lease).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFoundf("Lease not found")
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.LeaseReturnRecord{}).Where("lease_id = ?", lease.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperr.InvalidStatef("Lease %s has already been returned", lease.ID)
		}

		record = models.LeaseReturnRecord{
			AssetID:    lease.AssetID,
			LeaseID:    lease.ID,
			ReturnDate: in.ReturnDate,
			Condition:  in.Condition,
			Notes:      in.Notes,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if lease.LeaseEndDate == nil {
			end := in.ReturnDate
			lease.LeaseEndDate = &end
			if err := tx.Save(&lease).Error; err != nil {
				return err
			}
		}

		return history.Record(tx, models.HistoryLog{
			AssetID:    lease.AssetID,
			EventType:  models.EventCheckin,
			Field:      "lease",
			ChangeFrom: lease.Lessee,
			ChangeTo:   "",
			ActionBy:   in.ActionBy,
			EventDate:  in.ReturnDate,
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &record, nil
}
