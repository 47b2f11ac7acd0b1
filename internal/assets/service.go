// Package assets provides asset record CRUD around the lifecycle core:
// create/update with field-level history diffing, soft delete and restore,
// list/search, and summary statistics. Status transitions stay with the
// lifecycle engine; this service never changes an asset's status.
package assets

import (
	"context"
	"errors"
	"sort"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/cache"
	"assettrack-backend/internal/history"
	"assettrack-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service holds DB and the report cache for asset record operations.
type Service struct {
	DB    *gorm.DB
	Cache cache.Invalidator
}

// CreateInput describes a new asset.
type CreateInput struct {
	AssetTagID  string  `json:"asset_tag_id"`
	Description string  `json:"description"`
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

	DepreciableAsset   bool             `json:"depreciable_asset"`
	DepreciableCost    *decimal.Decimal `json:"depreciable_cost"`
	SalvageValue       *decimal.Decimal `json:"salvage_value"`
	AssetLifeMonths    *int             `json:"asset_life_months"`
	DepreciationMethod *string          `json:"depreciation_method"`
	DateAcquired       *time.Time       `json:"date_acquired"`

	ActionBy string `json:"action_by"`
}

// Create inserts a new asset in Available status and logs the creation.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Asset, error) {
	details := map[string]string{}
	if in.AssetTagID == "" {
		details["assetTagId"] = "asset tag is required"
	}
	if in.Description == "" {
		details["description"] = "description is required"
	}
	if len(details) > 0 {
		return nil, apperr.BadRequest("Asset validation failed", details)
	}

	asset := models.Asset{
		AssetTagID:         in.AssetTagID,
		Description:        in.Description,
		Status:             models.StatusAvailable,
		Department:         in.Department,
		Site:               in.Site,
		Location:           in.Location,
		CategoryID:         in.CategoryID,
		Brand:              in.Brand,
		Model:              in.Model,
		SerialNo:           in.SerialNo,
		PurchasedFrom:      in.PurchasedFrom,
		Cost:               in.Cost,
		PurchaseDate:       in.PurchaseDate,
		DepreciableAsset:   in.DepreciableAsset,
		DepreciableCost:    in.DepreciableCost,
		SalvageValue:       in.SalvageValue,
		AssetLifeMonths:    in.AssetLifeMonths,
		DepreciationMethod: in.DepreciationMethod,
		DateAcquired:       in.DateAcquired,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&models.Asset{}).Where("asset_tag_id = ?", in.AssetTagID).Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return apperr.BadRequestf("Asset tag ID already exists")
		}
		if err := tx.Create(&asset).Error; err != nil {
			return err
		}
		return history.Record(tx, models.HistoryLog{
			AssetID:   asset.ID,
			EventType: models.EventCreate,
			Field:     "asset",
			ChangeTo:  asset.AssetTagID,
			ActionBy:  in.ActionBy,
			EventDate: time.Now(),
		})
	})
	if err != nil {
		return nil, classify(err)
	}

	s.invalidate(ctx)
	return &asset, nil
}

// Get loads one live asset with its category.
func (s *Service) Get(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	err := s.DB.WithContext(ctx).Preload("Category").Where("id = ? AND is_deleted = ?", id, false).First(&asset).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFoundf("Asset not found")
		}
		return nil, apperr.FromStorage(err)
	}
	return &asset, nil
}

// ListInput filters and paginates the asset list.
type ListInput struct {
	Search         string `json:"search"`
	CategoryID     string `json:"category_id"`
	Status         string `json:"status"`
	IncludeDeleted bool   `json:"include_deleted"`
	Page           int    `json:"page"`
	PageSize       int    `json:"page_size"`
}

// ListResult is one page of assets plus pagination metadata.
type ListResult struct {
	Assets   []models.Asset `json:"assets"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

func (in *ListInput) normalize() {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 || in.PageSize > 10000 {
		in.PageSize = 50
	}
}

func (s *Service) listQuery(ctx context.Context, in ListInput) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&models.Asset{})
	if !in.IncludeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if in.Search != "" {
		like := "%" + in.Search + "%"
		q = q.Where("asset_tag_id LIKE ? OR description LIKE ? OR serial_no LIKE ? OR brand LIKE ? OR model LIKE ?",
			like, like, like, like, like)
	}
	if in.CategoryID != "" {
		q = q.Where("category_id = ?", in.CategoryID)
	}
	if in.Status != "" {
		q = q.Where("status = ?", in.Status)
	}
	return q
}

// List returns one page of assets, newest first.
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	in.normalize()
	q := s.listQuery(ctx, in)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}

	var items []models.Asset
	err := q.Preload("Category").
		Order("created_at DESC, id DESC").
		Offset((in.Page - 1) * in.PageSize).
		Limit(in.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return &ListResult{Assets: items, Total: total, Page: in.Page, PageSize: in.PageSize}, nil
}

// Statuses returns the distinct statuses currently in use, sorted.
func (s *Service) Statuses(ctx context.Context, in ListInput) ([]string, error) {
	var statuses []string
	err := s.listQuery(ctx, in).Distinct("status").Pluck("status", &statuses).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	sort.Strings(statuses)
	return statuses, nil
}

// Summary holds list-level statistics.
type Summary struct {
	TotalAssets           int64           `json:"total_assets"`
	TotalValue            decimal.Decimal `json:"total_value"`
	AvailableAssets       int64           `json:"available_assets"`
	CheckedOutAssets      int64           `json:"checked_out_assets"`
	CheckedOutAssetsValue decimal.Decimal `json:"checked_out_assets_value"`
}

// Summarize computes count and value statistics over the filtered set.
func (s *Service) Summarize(ctx context.Context, in ListInput) (*Summary, error) {
	in.normalize()

	var items []models.Asset
	if err := s.listQuery(ctx, in).Find(&items).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}

	sum := &Summary{TotalValue: decimal.Zero, CheckedOutAssetsValue: decimal.Zero}
	for _, a := range items {
		sum.TotalAssets++
		cost := decimal.Zero
		if a.Cost != nil {
			cost = *a.Cost
		}
		sum.TotalValue = sum.TotalValue.Add(cost)
		switch a.Status {
		case models.StatusAvailable:
			sum.AvailableAssets++
		case models.StatusCheckedOut:
			sum.CheckedOutAssets++
			sum.CheckedOutAssetsValue = sum.CheckedOutAssetsValue.Add(cost)
		}
	}
	return sum, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, cache.TagDashboard, cache.TagActivity)
	}
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	var e *apperr.Error
	if errors.As(err, &e) {
		return err
	}
	return apperr.FromStorage(err)
}
