package lifecycle

import (
	"context"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/history"
	"assettrack-backend/internal/models"

	"gorm.io/gorm"
)

// ReserveInput describes a reservation request. Exactly one of EmployeeID /
// Department is used, matching Type; the other is nulled.
type ReserveInput struct {
	AssetID         string    `json:"asset_id"`
	Type            string    `json:"type"`
	ReservationDate time.Time `json:"reservation_date"`
	Purpose         *string   `json:"purpose"`
	Notes           *string   `json:"notes"`
	EmployeeID      *string   `json:"employee_id"`
	Department      *string   `json:"department"`
	ActionBy        string    `json:"action_by"`
}

// Reserve creates a new reservation. Reservations accumulate: the record is
// always created, while the status transition to Reserved happens at most
// once.
func (s *Service) Reserve(ctx context.Context, in ReserveInput) (*models.ReservationRecord, error) {
	details := map[string]string{}
	if in.AssetID == "" {
		details["assetId"] = "asset id is required"
	}
	if in.ReservationDate.IsZero() {
		details["reservationDate"] = "reservation date is required"
	}
	switch in.Type {
	case models.ReservationTypeEmployee:
		if in.EmployeeID == nil || *in.EmployeeID == "" {
			details["employeeId"] = "employee id is required for an employee reservation"
		}
		in.Department = nil
	case models.ReservationTypeDepartment:
		if in.Department == nil || *in.Department == "" {
			details["department"] = "department is required for a department reservation"
		}
		in.EmployeeID = nil
	default:
		details["type"] = "reservation type must be Employee or Department"
	}
	if len(details) > 0 {
		return nil, apperr.BadRequest("Reservation validation failed", details)
	}

	var record models.ReservationRecord
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		asset, err := loadAssetForUpdate(tx, in.AssetID)
		if err != nil {
			return err
		}
		if models.IsDisposalStatus(asset.Status) {
			return apperr.InvalidStatef("Asset %s is disposed (%s)", asset.AssetTagID, asset.Status)
		}

		if asset.Status != models.StatusReserved {
			entry := models.HistoryLog{
				AssetID:    asset.ID,
				EventType:  models.EventReserve,
				Field:      "status",
				ChangeFrom: asset.Status,
				ChangeTo:   models.StatusReserved,
				ActionBy:   in.ActionBy,
				EventDate:  in.ReservationDate,
			}
			asset.Status = models.StatusReserved
			if err := tx.Save(asset).Error; err != nil {
				return err
			}
			if err := history.Record(tx, entry); err != nil {
				return err
			}
		}

		record = models.ReservationRecord{
			AssetID:         asset.ID,
			Type:            in.Type,
			EmployeeID:      in.EmployeeID,
			Department:      in.Department,
			ReservationDate: in.ReservationDate,
			Purpose:         in.Purpose,
			Notes:           in.Notes,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &record, nil
}

// CancelReservation deletes a reservation. When it was the last reservation
// on an asset still in Reserved status, the asset reverts to Available. The
// status field is authoritative: no change happens if the asset moved on.
func (s *Service) CancelReservation(ctx context.Context, reservationID, actionBy string) error {
	if reservationID == "" {
		return apperr.BadRequestf("Reservation id is required")
	}

	err := s.runTx(ctx, func(tx *gorm.DB) error {
		var reservation models.ReservationRecord
		if err := tx.Where("id = ?", reservationID).First(&reservation).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFoundf("Reservation not found")
			}
			return err
		}
		if err := tx.Delete(&reservation).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.ReservationRecord{}).Where("asset_id = ?", reservation.AssetID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		asset, err := loadAssetForUpdate(tx, reservation.AssetID)
		if err != nil {
			return err
		}
		if asset.Status != models.StatusReserved {
			return nil
		}

		entry := models.HistoryLog{
			AssetID:    asset.ID,
			EventType:  models.EventReserve,
			Field:      "status",
			ChangeFrom: asset.Status,
			ChangeTo:   models.StatusAvailable,
			ActionBy:   actionBy,
			EventDate:  time.Now(),
		}
		asset.Status = models.StatusAvailable
		if err := tx.Save(asset).Error; err != nil {
			return err
		}
		return history.Record(tx, entry)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}
