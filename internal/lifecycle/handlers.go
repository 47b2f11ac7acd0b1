package lifecycle

import (
	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers is the HTTP surface of the lifecycle engine. Handlers only parse
// and delegate; every rule lives in the service.
type Handlers struct {
	Service *Service
}

func (h *Handlers) Checkout(c *fiber.Ctx) error {
	var in CheckoutInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	res, err := h.Service.Checkout(c.Context(), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Assets checked out", res, nil)
}

func (h *Handlers) Checkin(c *fiber.Ctx) error {
	var in CheckinInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	res, err := h.Service.Checkin(c.Context(), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Assets checked in", res, nil)
}

func (h *Handlers) Reserve(c *fiber.Ctx) error {
	var in ReserveInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	res, err := h.Service.Reserve(c.Context(), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Asset reserved", res, nil)
}

func (h *Handlers) CancelReservation(c *fiber.Ctx) error {
	if err := h.Service.CancelReservation(c.Context(), c.Params("id"), actionBy(c)); err != nil {
		return err
	}
	return response.Success(c, "Reservation cancelled", fiber.Map{"cancelled": true}, nil)
}

func (h *Handlers) Dispose(c *fiber.Ctx) error {
	var in DisposeInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	res, err := h.Service.Dispose(c.Context(), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Assets disposed", res, nil)
}

func (h *Handlers) CreateSchedule(c *fiber.Ctx) error {
	var in ScheduleCreateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	rec, err := h.Service.CreateSchedule(c.Context(), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Schedule created", rec, nil)
}

func (h *Handlers) UpdateSchedule(c *fiber.Ctx) error {
	var in ScheduleUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	rec, err := h.Service.UpdateSchedule(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.Success(c, "Schedule updated", rec, nil)
}

func (h *Handlers) DeleteSchedule(c *fiber.Ctx) error {
	if err := h.Service.DeleteSchedule(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return response.Success(c, "Schedule deleted", fiber.Map{"deleted": true}, nil)
}

func (h *Handlers) CreateMaintenance(c *fiber.Ctx) error {
	var in MaintenanceCreateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	rec, err := h.Service.CreateMaintenance(c.Context(), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Maintenance created", rec, nil)
}

func (h *Handlers) UpdateMaintenance(c *fiber.Ctx) error {
	var in MaintenanceUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	rec, err := h.Service.UpdateMaintenance(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.Success(c, "Maintenance updated", rec, nil)
}

func (h *Handlers) DeleteMaintenance(c *fiber.Ctx) error {
	if err := h.Service.DeleteMaintenance(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return response.Success(c, "Maintenance deleted", fiber.Map{"deleted": true}, nil)
}

func (h *Handlers) ReturnLease(c *fiber.Ctx) error {
	var in LeaseReturnInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	rec, err := h.Service.ReturnLease(c.Context(), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Lease returned", rec, nil)
}

func actionBy(c *fiber.Ctx) string {
	if v := c.Query("action_by"); v != "" {
		return v
	}
	return "system"
}
