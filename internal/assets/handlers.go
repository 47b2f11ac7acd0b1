package assets

import (
	"strconv"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"
	"assettrack-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers is the HTTP surface for asset records.
type Handlers struct {
	Service *Service
}

func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	asset, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Asset created", asset, nil)
}

func (h *Handlers) Get(c *fiber.Ctx) error {
	asset, err := h.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, "Asset", asset, nil)
}

func (h *Handlers) Update(c *fiber.Ctx) error {
	var in UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	asset, err := h.Service.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.Success(c, "Asset updated", asset, nil)
}

func (h *Handlers) List(c *fiber.Ctx) error {
	res, err := h.Service.List(c.Context(), listInputFromQuery(c))
	if err != nil {
		return err
	}
	return response.Success(c, "Assets", res.Assets, fiber.Map{
		"total":     res.Total,
		"page":      res.Page,
		"page_size": res.PageSize,
	})
}

func (h *Handlers) Statuses(c *fiber.Ctx) error {
	statuses, err := h.Service.Statuses(c.Context(), listInputFromQuery(c))
	if err != nil {
		return err
	}
	return response.Success(c, "Statuses", statuses, nil)
}

func (h *Handlers) Summary(c *fiber.Ctx) error {
	sum, err := h.Service.Summarize(c.Context(), listInputFromQuery(c))
	if err != nil {
		return err
	}
	return response.Success(c, "Asset summary", sum, nil)
}

func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Service.SoftDelete(c.Context(), c.Params("id"), actionBy(c)); err != nil {
		return err
	}
	return response.Success(c, "Asset moved to trash", fiber.Map{"deleted": true}, nil)
}

func (h *Handlers) Restore(c *fiber.Ctx) error {
	asset, err := h.Service.Restore(c.Context(), c.Params("id"), actionBy(c))
	if err != nil {
		return err
	}
	return response.Success(c, "Asset restored", asset, nil)
}

func (h *Handlers) BulkRestore(c *fiber.Ctx) error {
	var body struct {
		AssetIDs []string `json:"asset_ids"`
		ActionBy string   `json:"action_by"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	restored, err := h.Service.BulkRestore(c.Context(), body.AssetIDs, body.ActionBy)
	if err != nil {
		return err
	}
	return response.Success(c, "Assets restored", restored, fiber.Map{"count": len(restored)})
}

func (h *Handlers) ListTrash(c *fiber.Ctx) error {
	items, err := h.Service.ListTrash(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, "Trash", items, nil)
}

func (h *Handlers) EmptyTrash(c *fiber.Ctx) error {
	n, err := h.Service.EmptyTrash(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, "Trash emptied", fiber.Map{"deleted": n}, nil)
}

func (h *Handlers) GenerateTag(c *fiber.Ctx) error {
	in := TagInput{
		PurchaseYear: c.QueryInt("purchase_year"),
		SubCategory:  c.Query("sub_category"),
	}
	tag, err := h.Service.GenerateTag(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Success(c, "Asset tag generated", fiber.Map{"asset_tag_id": tag}, nil)
}

// UpsertCompanyInfo stores the company profile used for tag suffixes.
func (h *Handlers) UpsertCompanyInfo(c *fiber.Ctx) error {
	var body struct {
		CompanyName string  `json:"company_name"`
		Address     *string `json:"address"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperr.BadRequestf("Invalid request body")
	}
	if body.CompanyName == "" {
		return apperr.BadRequestf("Company name is required")
	}
	info := models.CompanyInfo{CompanyName: body.CompanyName, Address: body.Address}
	if err := h.Service.DB.WithContext(c.Context()).Create(&info).Error; err != nil {
		return apperr.FromStorage(err)
	}
	return response.SuccessCreated(c, "Company info saved", info, nil)
}

func listInputFromQuery(c *fiber.Ctx) ListInput {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	return ListInput{
		Search:         c.Query("search"),
		CategoryID:     c.Query("category_id"),
		Status:         c.Query("status"),
		IncludeDeleted: c.QueryBool("include_deleted"),
		Page:           page,
		PageSize:       pageSize,
	}
}

func actionBy(c *fiber.Ctx) string {
	if v := c.Query("action_by"); v != "" {
		return v
	}
	return "system"
}
