package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/service"
)

type ProductTaxHandler struct {
	service service.ResourceService
}

func NewProductTaxHandler(s service.ResourceService) *ProductTaxHandler {
	return &ProductTaxHandler{service: s}
}

type CreateProductTaxRequest struct {
	Name      string    `json:"name" validate:"required"`
	Rate      int       `json:"rate" validate:"gte=0"`
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
}

type UpdateProductTaxRequest struct {
	Name *string `json:"name"`
	Rate *int    `json:"rate"`
}

func (h *ProductTaxHandler) CreateProductTax(c *fiber.Ctx) error {
	var req CreateProductTaxRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validateBody(c, &req); err != nil {
		return err
	}

	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	tax := &model.ProductTax{
		Name:      req.Name,
		Rate:      req.Rate,
		ProductID: req.ProductID,
	}
	tax.CreatedBy = caller.String()
	tax.UpdatedBy = caller.String()

	refs := map[authz.ResourceType]uuid.UUID{authz.TypeProduct: req.ProductID}
	if err := h.service.Create(c.UserContext(), caller, authz.TypeProductTax, tax, refs); err != nil {
		return respondErr(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product tax created", "data": tax})
}

func (h *ProductTaxHandler) GetProductTaxes(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	taxes, err := h.service.List(c.UserContext(), caller, authz.TypeProductTax, queryFilter(c, "name", "product_id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(taxes)
}

func (h *ProductTaxHandler) GetProductTax(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product tax ID"})
	}

	tax, err := h.service.Get(c.UserContext(), caller, authz.TypeProductTax, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(tax)
}

func (h *ProductTaxHandler) UpdateProductTax(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product tax ID"})
	}

	var req UpdateProductTaxRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	changes := map[string]any{"updated_by": caller.String()}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Rate != nil {
		changes["rate"] = *req.Rate
	}

	tax, err := h.service.Update(c.UserContext(), caller, authz.TypeProductTax, id, changes)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product tax updated", "data": tax})
}

func (h *ProductTaxHandler) DeleteProductTax(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product tax ID"})
	}

	if err := h.service.Delete(c.UserContext(), caller, authz.TypeProductTax, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product tax deleted"})
}
