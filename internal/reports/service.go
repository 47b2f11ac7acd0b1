// Package reports is the read-side composition layer: dashboard statistics,
// the depreciation report and record listings with employee/category
// projections. It never writes lifecycle state; failures here are
// reporting-only.
package reports

import (
	"context"
	"sort"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/cache"
	"assettrack-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dashboardKey = "reports:dashboard"

// Service composes read-side views over the record tables.
type Service struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

// CategoryCost is one category's asset count and summed cost.
type CategoryCost struct {
	CategoryID string          `json:"category_id"`
	Category   string          `json:"category"`
	Count      int64           `json:"count"`
	TotalCost  decimal.Decimal `json:"total_cost"`
}

// Dashboard is the cached summary view.
type Dashboard struct {
	TotalAssets       int64            `json:"total_assets"`
	TotalValue        decimal.Decimal  `json:"total_value"`
	StatusCounts      map[string]int64 `json:"status_counts"`
	Categories        []CategoryCost   `json:"categories"`
	PurchasesThisYear int64            `json:"purchases_this_year"`
	CheckedOutValue   decimal.Decimal  `json:"checked_out_value"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// Dashboard builds the dashboard summary, serving from cache when fresh.
// The fiscal year is the calendar year of the server clock.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var cached Dashboard
	if s.Cache.GetJSON(ctx, dashboardKey, &cached) {
		return &cached, nil
	}

	var assets []models.Asset
	err := s.DB.WithContext(ctx).
		Preload("Category").
		Where("is_deleted = ?", false).
		Find(&assets).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}

	d := Dashboard{
		TotalValue:      decimal.Zero,
		CheckedOutValue: decimal.Zero,
		StatusCounts:    map[string]int64{},
		GeneratedAt:     time.Now(),
	}
	yearStart := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.Local)

	byCategory := map[string]*CategoryCost{}
	for _, a := range assets {
		d.TotalAssets++
		d.StatusCounts[a.Status]++

		cost := decimal.Zero
		if a.Cost != nil {
			cost = *a.Cost
		}
		d.TotalValue = d.TotalValue.Add(cost)
		if a.Status == models.StatusCheckedOut {
			d.CheckedOutValue = d.CheckedOutValue.Add(cost)
		}
		if a.PurchaseDate != nil && !a.PurchaseDate.Before(yearStart) {
			d.PurchasesThisYear++
		}

		key, name := "", "Uncategorized"
		if a.CategoryID != nil {
			key = *a.CategoryID
			if a.Category != nil {
				name = a.Category.Name
			}
		}
		cc, ok := byCategory[key]
		if !ok {
			cc = &CategoryCost{CategoryID: key, Category: name, TotalCost: decimal.Zero}
			byCategory[key] = cc
		}
		cc.Count++
		cc.TotalCost = cc.TotalCost.Add(cost)
	}

	for _, cc := range byCategory {
		d.Categories = append(d.Categories, *cc)
	}
	sort.Slice(d.Categories, func(i, j int) bool {
		return d.Categories[i].TotalCost.GreaterThan(d.Categories[j].TotalCost)
	})

	s.Cache.SetJSON(ctx, dashboardKey, &d, cache.TagDashboard)
	return &d, nil
}

// CheckoutReport returns active checkouts, newest first, with asset and
// employee projections. An active checkout has no check-in row and carries
// an assignee.
func (s *Service) CheckoutReport(ctx context.Context) ([]models.CheckoutRecord, error) {
	var rows []models.CheckoutRecord
	err := s.DB.WithContext(ctx).
		Preload("Asset").
		Preload("Asset.Category").
		Preload("Employee").
		Where("employee_id IS NOT NULL").
		Where("id NOT IN (?)", s.DB.Model(&models.CheckinRecord{}).Select("checkout_id")).
		Order("checkout_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return rows, nil
}

// ReservationReport returns all reservations, newest first.
func (s *Service) ReservationReport(ctx context.Context) ([]models.ReservationRecord, error) {
	var rows []models.ReservationRecord
	err := s.DB.WithContext(ctx).
		Preload("Asset").
		Preload("Asset.Category").
		Preload("Employee").
		Order("reservation_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return rows, nil
}

// DisposalReport lists disposals newest first and totals recovered value.
type DisposalReport struct {
	Disposals  []models.DisposalRecord `json:"disposals"`
	TotalValue decimal.Decimal         `json:"total_value"`
}

func (s *Service) Disposals(ctx context.Context) (*DisposalReport, error) {
	var rows []models.DisposalRecord
	err := s.DB.WithContext(ctx).
		Preload("Asset").
		Order("disposal_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}

	total := decimal.Zero
	for _, r := range rows {
		if r.DisposalValue != nil {
			total = total.Add(*r.DisposalValue)
		}
	}
	return &DisposalReport{Disposals: rows, TotalValue: total}, nil
}

// MaintenanceReport lists all maintenance records with per-status cost totals
// and the upcoming subset: Scheduled work due today or later, soonest first.
type MaintenanceReport struct {
	Records      []models.MaintenanceRecord `json:"records"`
	CostByStatus map[string]decimal.Decimal `json:"cost_by_status"`
	Upcoming     []models.MaintenanceRecord `json:"upcoming"`
}

func (s *Service) Maintenance(ctx context.Context) (*MaintenanceReport, error) {
	var rows []models.MaintenanceRecord
	err := s.DB.WithContext(ctx).
		Preload("Asset").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}

	rep := &MaintenanceReport{Records: rows, CostByStatus: map[string]decimal.Decimal{}}
	for _, st := range models.MaintenanceStatuses {
		rep.CostByStatus[st] = decimal.Zero
	}
	today := time.Now().Truncate(24 * time.Hour)
	for _, r := range rows {
		if r.Cost != nil {
			rep.CostByStatus[r.Status] = rep.CostByStatus[r.Status].Add(*r.Cost)
		}
		if r.Status == models.MaintenanceScheduled && r.DueDate != nil && !r.DueDate.Before(today) {
			rep.Upcoming = append(rep.Upcoming, r)
		}
	}
	sort.Slice(rep.Upcoming, func(i, j int) bool {
		return rep.Upcoming[i].DueDate.Before(*rep.Upcoming[j].DueDate)
	})
	return rep, nil
}

// LeaseReturnStats is the lease-return summary: total count plus the most
// recent returns with asset and lease projections.
type LeaseReturnStats struct {
	Total  int64                      `json:"total"`
	Recent []models.LeaseReturnRecord `json:"recent"`
}

const leaseReturnRecentLimit = 10

func (s *Service) LeaseReturns(ctx context.Context) (*LeaseReturnStats, error) {
	stats := &LeaseReturnStats{}
	err := s.DB.WithContext(ctx).Model(&models.LeaseReturnRecord{}).Count(&stats.Total).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	err = s.DB.WithContext(ctx).
		Preload("Asset").
		Preload("Lease").
		Order("return_date DESC").
		Limit(leaseReturnRecentLimit).
		Find(&stats.Recent).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return stats, nil
}
