// Package history is the append-only audit ledger. Rows are written inside
// the transaction that performs the change they document and are never
// updated or deleted.
package history

import (
	"context"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"gorm.io/gorm"
)

// RecentLimit caps the global activity feed.
const RecentLimit = 50

// Record appends one field-level change row using the caller's transaction.
// It succeeds iff the owning transaction commits.
func Record(tx *gorm.DB, entry models.HistoryLog) error {
	return tx.Create(&entry).Error
}

// RecordAll appends a batch of rows sharing one event timestamp.
func RecordAll(tx *gorm.DB, entries []models.HistoryLog) error {
	if len(entries) == 0 {
		return nil
	}
	return tx.Create(&entries).Error
}

// Service exposes the read side of the ledger.
type Service struct {
	DB *gorm.DB
}

// ForAsset returns every ledger row for an asset, newest first.
func (s *Service) ForAsset(ctx context.Context, assetID string) ([]models.HistoryLog, error) {
	var asset models.Asset
	if err := s.DB.WithContext(ctx).Where("id = ?", assetID).First(&asset).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFoundf("Asset not found")
		}
		return nil, apperr.FromStorage(err)
	}

	var logs []models.HistoryLog
	err := s.DB.WithContext(ctx).
		Where("asset_id = ?", asset.ID).
		Order("event_date DESC, created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return logs, nil
}

// Recent returns the most recent rows across all assets, newest first,
// capped at RecentLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.HistoryLog, error) {
	if limit <= 0 || limit > RecentLimit {
		limit = RecentLimit
	}
	var logs []models.HistoryLog
	err := s.DB.WithContext(ctx).
		Order("event_date DESC, created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return logs, nil
}
