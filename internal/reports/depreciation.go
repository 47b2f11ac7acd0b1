package reports

import (
	"context"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/depreciation"
	"assettrack-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DepreciationInput filters and paginates the depreciation report. A zero
// AsOf means the current instant.
type DepreciationInput struct {
	CategoryID      string    `json:"category_id"`
	OnlyDepreciable bool      `json:"only_depreciable"`
	AsOf            time.Time `json:"as_of"`
	Page            int       `json:"page"`
	PageSize        int       `json:"page_size"`
}

// DepreciationRow is one asset with its figures as of the report instant.
type DepreciationRow struct {
	Asset   models.Asset        `json:"asset"`
	Figures depreciation.Result `json:"figures"`
}

// DepreciationReport is one page of rows plus page-level totals.
type DepreciationReport struct {
	Rows     []DepreciationRow `json:"rows"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`

	TotalAccumulated  decimal.Decimal `json:"total_accumulated"`
	TotalCurrentValue decimal.Decimal `json:"total_current_value"`
}

// Depreciation computes per-asset depreciation figures on the fly. Stored
// data is never mutated; the same asset reports different figures as time
// advances.
func (s *Service) Depreciation(ctx context.Context, in DepreciationInput) (*DepreciationReport, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 || in.PageSize > 1000 {
		in.PageSize = 50
	}
	asOf := in.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	q := s.DB.WithContext(ctx).Model(&models.Asset{}).Where("is_deleted = ?", false)
	if in.CategoryID != "" {
		q = q.Where("category_id = ?", in.CategoryID)
	}
	if in.OnlyDepreciable {
		q = q.Where("depreciable_asset = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}

	var assets []models.Asset
	err := q.Session(&gorm.Session{}).
		Preload("Category").
		Order("asset_tag_id ASC").
		Offset((in.Page - 1) * in.PageSize).
		Limit(in.PageSize).
		Find(&assets).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}

	rep := &DepreciationReport{
		Total: total, Page: in.Page, PageSize: in.PageSize,
		TotalAccumulated:  decimal.Zero,
		TotalCurrentValue: decimal.Zero,
	}
	for _, a := range assets {
		fig := depreciation.Compute(depreciation.FromAsset(&a), asOf)
		rep.Rows = append(rep.Rows, DepreciationRow{Asset: a, Figures: fig})
		rep.TotalAccumulated = rep.TotalAccumulated.Add(fig.Accumulated)
		rep.TotalCurrentValue = rep.TotalCurrentValue.Add(fig.CurrentValue)
	}
	return rep, nil
}
