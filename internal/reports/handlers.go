package reports

import (
	"strconv"
	"time"

	"assettrack-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers is the HTTP surface of the read-side reports.
type Handlers struct {
	Service *Service
}

func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	d, err := h.Service.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, "Dashboard", d, nil)
}

func (h *Handlers) Depreciation(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	in := DepreciationInput{
		CategoryID:      c.Query("category_id"),
		OnlyDepreciable: c.QueryBool("only_depreciable"),
		Page:            page,
		PageSize:        pageSize,
	}
	if asOf := c.Query("as_of"); asOf != "" {
		t, err := time.Parse("2006-01-02", asOf)
		if err == nil {
			in.AsOf = t
		}
	}
	rep, err := h.Service.Depreciation(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Success(c, "Depreciation report", rep.Rows, fiber.Map{
		"total":               rep.Total,
		"page":                rep.Page,
		"page_size":           rep.PageSize,
		"total_accumulated":   rep.TotalAccumulated,
		"total_current_value": rep.TotalCurrentValue,
	})
}

func (h *Handlers) Checkouts(c *fiber.Ctx) error {
	rows, err := h.Service.CheckoutReport(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, "Active checkouts", rows, nil)
}

func (h *Handlers) Reservations(c *fiber.Ctx) error {
	rows, err := h.Service.ReservationReport(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, "Reservations", rows, nil)
}

func (h *Handlers) Disposals(c *fiber.Ctx) error {
	rep, err := h.Service.Disposals(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, "Disposals", rep, nil)
}

func (h *Handlers) Maintenance(c *fiber.Ctx) error {
	rep, err := h.Service.Maintenance(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, "Maintenance report", rep, nil)
}

func (h *Handlers) LeaseReturns(c *fiber.Ctx) error {
	stats, err := h.Service.LeaseReturns(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, "Lease returns", stats, nil)
}
