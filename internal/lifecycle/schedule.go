package lifecycle

import (
	"context"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ScheduleCreateInput describes a new planned action on an asset.
type ScheduleCreateInput struct {
	AssetID      string         `json:"asset_id"`
	ScheduleType string         `json:"schedule_type"`
	Status       string         `json:"status"`
	DueDate      *time.Time     `json:"due_date"`
	Notes        *string        `json:"notes"`
	Metadata     datatypes.JSON `json:"metadata"`
}

// ScheduleUpdateInput carries optional field updates; nil fields are left
// unchanged.
type ScheduleUpdateInput struct {
	ScheduleType *string        `json:"schedule_type"`
	Status       *string        `json:"status"`
	DueDate      *time.Time     `json:"due_date"`
	Notes        *string        `json:"notes"`
	Metadata     datatypes.JSON `json:"metadata"`
}

// CreateSchedule validates the enum fields and creates the record.
func (s *Service) CreateSchedule(ctx context.Context, in ScheduleCreateInput) (*models.ScheduleRecord, error) {
	details := map[string]string{}
	if in.AssetID == "" {
		details["assetId"] = "asset id is required"
	}
	if !models.IsScheduleType(in.ScheduleType) {
		details["scheduleType"] = "invalid schedule type"
	}
	if in.Status == "" {
		in.Status = models.SchedulePending
	}
	if !models.IsScheduleStatus(in.Status) {
		details["status"] = "invalid schedule status"
	}
	if len(details) > 0 {
		return nil, apperr.BadRequest("Schedule validation failed", details)
	}

	var record models.ScheduleRecord
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.Where("id = ? AND is_deleted = ?", in.AssetID, false).First(&asset).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFoundf("Asset %s not found", in.AssetID)
			}
			return err
		}
		record = models.ScheduleRecord{
			AssetID:      asset.ID,
			ScheduleType: in.ScheduleType,
			Status:       in.Status,
			DueDate:      in.DueDate,
			Notes:        in.Notes,
			Metadata:     in.Metadata,
		}
		applyScheduleTerminalTimestamps(&record)
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateSchedule applies partial updates. Transitioning into completed or
// cancelled stamps the matching timestamp exactly once: re-setting an
// already-terminal status never overwrites it.
func (s *Service) UpdateSchedule(ctx context.Context, id string, in ScheduleUpdateInput) (*models.ScheduleRecord, error) {
	details := map[string]string{}
	if in.ScheduleType != nil && !models.IsScheduleType(*in.ScheduleType) {
		details["scheduleType"] = "invalid schedule type"
	}
	if in.Status != nil && !models.IsScheduleStatus(*in.Status) {
		details["status"] = "invalid schedule status"
	}
	if len(details) > 0 {
		return nil, apperr.BadRequest("Schedule validation failed", details)
	}

	var record models.ScheduleRecord
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ?", id).First(&record).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFoundf("Schedule not found")
			}
			return err
		}
		if in.ScheduleType != nil {
			record.ScheduleType = *in.ScheduleType
		}
		if in.Status != nil {
			record.Status = *in.Status
		}
		if in.DueDate != nil {
			record.DueDate = in.DueDate
		}
		if in.Notes != nil {
			record.Notes = in.Notes
		}
		if in.Metadata != nil {
			record.Metadata = in.Metadata
		}
		applyScheduleTerminalTimestamps(&record)
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteSchedule removes a schedule record.
func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	return s.runTx(ctx, func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.ScheduleRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("Schedule not found")
		}
		return nil
	})
}

// applyScheduleTerminalTimestamps stamps CompletedAt / CancelledAt on first
// entry into the matching terminal status.
func applyScheduleTerminalTimestamps(record *models.ScheduleRecord) {
	now := time.Now()
	if record.Status == models.ScheduleCompleted && record.CompletedAt == nil {
		record.CompletedAt = &now
	}
	if record.Status == models.ScheduleCancelled && record.CancelledAt == nil {
		record.CancelledAt = &now
	}
}
