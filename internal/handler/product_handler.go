package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/service"
)

type ProductHandler struct {
	service service.ResourceService
}

func NewProductHandler(s service.ResourceService) *ProductHandler {
	return &ProductHandler{service: s}
}

type CreateProductRequest struct {
	Name    string    `json:"name" validate:"required"`
	SKU     string    `json:"sku"`
	Unit    string    `json:"unit"`
	Price   int64     `json:"price" validate:"gte=0"`
	StoreID uuid.UUID `json:"store_id" validate:"uuid_required"`
}

type UpdateProductRequest struct {
	Name  *string `json:"name"`
	SKU   *string `json:"sku"`
	Unit  *string `json:"unit"`
	Price *int64  `json:"price"`
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
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

	product := &model.Product{
		Name:    req.Name,
		SKU:     req.SKU,
		Unit:    req.Unit,
		Price:   req.Price,
		StoreID: req.StoreID,
	}
	product.CreatedBy = caller.String()
	product.UpdatedBy = caller.String()

	refs := map[authz.ResourceType]uuid.UUID{authz.TypeStore: req.StoreID}
	if err := h.service.Create(c.UserContext(), caller, authz.TypeProduct, product, refs); err != nil {
		return respondErr(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	products, err := h.service.List(c.UserContext(), caller, authz.TypeProduct, queryFilter(c, "name", "sku", "store_id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.Get(c.UserContext(), caller, authz.TypeProduct, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	changes := map[string]any{"updated_by": caller.String()}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.SKU != nil {
		changes["sku"] = *req.SKU
	}
	if req.Unit != nil {
		changes["unit"] = *req.Unit
	}
	if req.Price != nil {
		changes["price"] = *req.Price
	}

	product, err := h.service.Update(c.UserContext(), caller, authz.TypeProduct, id, changes)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.Delete(c.UserContext(), caller, authz.TypeProduct, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
