package history

import (
	"strconv"

	"assettrack-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the ledger read endpoints.
type Handlers struct {
	Service *Service
}

func (h *Handlers) ForAsset(c *fiber.Ctx) error {
	logs, err := h.Service.ForAsset(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, "Asset history", logs, nil)
}

func (h *Handlers) Recent(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	logs, err := h.Service.Recent(c.Context(), limit)
	if err != nil {
		return err
	}
	return response.Success(c, "Recent activity", logs, nil)
}
