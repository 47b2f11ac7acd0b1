package inventory

import (
	"strconv"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers is the HTTP surface for inventory.
type Handlers struct {
	Service *Service
}

func (h *Handlers) CreateItem(c *fiber.Ctx) error {
	var in ItemCreateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	if in.ActionBy == "" {
		in.ActionBy = actionBy(c)
	}
	item, err := h.Service.CreateItem(c.Context(), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Inventory item created", item, nil)
}

func (h *Handlers) GetItem(c *fiber.Ctx) error {
	detail, err := h.Service.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, "Inventory item", detail, nil)
}

func (h *Handlers) UpdateItem(c *fiber.Ctx) error {
	var in ItemUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	item, err := h.Service.UpdateItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.Success(c, "Inventory item updated", item, nil)
}

func (h *Handlers) ListItems(c *fiber.Ctx) error {
	in := ItemListInput{
		Search:         c.Query("search"),
		Category:       c.Query("category"),
		IncludeDeleted: c.QueryBool("include_deleted"),
		LowStock:       c.QueryBool("low_stock"),
	}
	in.Page, _ = strconv.Atoi(c.Query("page"))
	in.PageSize, _ = strconv.Atoi(c.Query("page_size"))

	res, err := h.Service.ListItems(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Success(c, "Inventory items", res.Items, fiber.Map{
		"total":     res.Total,
		"page":      res.Page,
		"page_size": res.PageSize,
	})
}

func (h *Handlers) DeleteItem(c *fiber.Ctx) error {
	permanent := c.QueryBool("permanent")
	if err := h.Service.DeleteItem(c.Context(), c.Params("id"), permanent); err != nil {
		return err
	}
	if permanent {
		return response.Success(c, "Item permanently deleted", nil, nil)
	}
	return response.Success(c, "Item archived. It will be permanently deleted after 30 days.", nil, nil)
}

func (h *Handlers) RestoreItem(c *fiber.Ctx) error {
	item, err := h.Service.RestoreItem(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, "Item restored successfully", item, nil)
}

func (h *Handlers) BulkRestoreItems(c *fiber.Ctx) error {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	restored, err := h.Service.BulkRestoreItems(c.Context(), body.IDs)
	if err != nil {
		return err
	}
	return response.Success(c, "Items restored", nil, fiber.Map{"restored": restored})
}

func (h *Handlers) ListTransactions(c *fiber.Ctx) error {
	in := TransactionListInput{Type: c.Query("type")}
	in.Page, _ = strconv.Atoi(c.Query("page"))
	in.PageSize, _ = strconv.Atoi(c.Query("page_size"))

	res, err := h.Service.ListTransactions(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.Success(c, "Stock transactions", res.Transactions, fiber.Map{
		"total":     res.Total,
		"page":      res.Page,
		"page_size": res.PageSize,
	})
}

func (h *Handlers) RecordTransaction(c *fiber.Ctx) error {
	var in TransactionInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	if in.ActionBy == "" {
		in.ActionBy = actionBy(c)
	}
	entry, err := h.Service.RecordTransaction(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Stock transaction recorded", entry, nil)
}

func (h *Handlers) BulkDeleteTransactions(c *fiber.Ctx) error {
	var body struct {
		TransactionIDs []string `json:"transaction_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	deleted, err := h.Service.BulkDeleteTransactions(c.Context(), c.Params("id"), body.TransactionIDs)
	if err != nil {
		return err
	}
	return response.Success(c, "Transactions deleted", nil, fiber.Map{"deleted": deleted})
}

func actionBy(c *fiber.Ctx) string {
	if by := c.Query("action_by"); by != "" {
		return by
	}
	return "system"
}
