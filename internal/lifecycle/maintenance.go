package lifecycle

import (
	"context"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaintenanceCreateInput describes new maintenance work on an asset.
// Maintenance is tracked in its own table, not in the asset status.
type MaintenanceCreateInput struct {
	AssetID string           `json:"asset_id"`
	Title   string           `json:"title"`
	Status  string           `json:"status"`
	DueDate *time.Time       `json:"due_date"`
	Cost    *decimal.Decimal `json:"cost"`
	Notes   *string          `json:"notes"`
}

// MaintenanceUpdateInput carries optional field updates.
type MaintenanceUpdateInput struct {
	Title   *string          `json:"title"`
	Status  *string          `json:"status"`
	DueDate *time.Time       `json:"due_date"`
	Cost    *decimal.Decimal `json:"cost"`
	Notes   *string          `json:"notes"`
}

// CreateMaintenance validates and creates a maintenance record.
func (s *Service) CreateMaintenance(ctx context.Context, in MaintenanceCreateInput) (*models.MaintenanceRecord, error) {
	details := map[string]string{}
	if in.AssetID == "" {
		details["assetId"] = "asset id is required"
	}
	if in.Title == "" {
		details["title"] = "title is required"
	}
	if in.Status == "" {
		in.Status = models.MaintenanceScheduled
	}
	if !models.IsMaintenanceStatus(in.Status) {
		details["status"] = "invalid maintenance status"
	}
	if len(details) > 0 {
		return nil, apperr.BadRequest("Maintenance validation failed", details)
	}

	var record models.MaintenanceRecord
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.Where("id = ? AND is_deleted = ?", in.AssetID, false).First(&asset).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFoundf("Asset %s not found", in.AssetID)
			}
			return err
		}
		record = models.MaintenanceRecord{
			AssetID: asset.ID,
			Title:   in.Title,
			Status:  in.Status,
			DueDate: in.DueDate,
			Cost:    in.Cost,
			Notes:   in.Notes,
		}
		applyMaintenanceTerminalTimestamps(&record)
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateMaintenance applies partial updates with the same set-once terminal
// timestamp rule as schedules.
func (s *Service) UpdateMaintenance(ctx context.Context, id string, in MaintenanceUpdateInput) (*models.MaintenanceRecord, error) {
	if in.Status != nil && !models.IsMaintenanceStatus(*in.Status) {
		return nil, apperr.BadRequest("Maintenance validation failed", map[string]string{"status": "invalid maintenance status"})
	}

	var record models.MaintenanceRecord
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ?", id).First(&record).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFoundf("Maintenance record not found")
			}
			return err
		}
		if in.Title != nil {
			record.Title = *in.Title
		}
		if in.Status != nil {
			record.Status = *in.Status
		}
		if in.DueDate != nil {
			record.DueDate = in.DueDate
		}
		if in.Cost != nil {
			record.Cost = in.Cost
		}
		if in.Notes != nil {
			record.Notes = in.Notes
		}
		applyMaintenanceTerminalTimestamps(&record)
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteMaintenance removes a maintenance record.
func (s *Service) DeleteMaintenance(ctx context.Context, id string) error {
	return s.runTx(ctx, func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.MaintenanceRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("Maintenance record not found")
		}
		return nil
	})
}

func applyMaintenanceTerminalTimestamps(record *models.MaintenanceRecord) {
	now := time.Now()
	if record.Status == models.MaintenanceCompleted && record.CompletedAt == nil {
		record.CompletedAt = &now
	}
	if record.Status == models.MaintenanceCancelled && record.CancelledAt == nil {
		record.CancelledAt = &now
	}
}
