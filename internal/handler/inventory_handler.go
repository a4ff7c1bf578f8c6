package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/service"
)

type InventoryHandler struct {
	service service.ResourceService
}

func NewInventoryHandler(s service.ResourceService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

type CreateInventoryRequest struct {
	Quantity  int       `json:"quantity" validate:"gte=0"`
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	BranchID  uuid.UUID `json:"branch_id" validate:"uuid_required"`
}

type UpdateInventoryRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *InventoryHandler) CreateInventoryRecord(c *fiber.Ctx) error {
	var req CreateInventoryRequest
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

	record := &model.InventoryRecord{
		Quantity:  req.Quantity,
		ProductID: req.ProductID,
		BranchID:  req.BranchID,
	}
	record.CreatedBy = caller.String()
	record.UpdatedBy = caller.String()

	// Both references go through the gate: the product and branch must
	// belong to the same store, and that store must be the caller's.
	refs := map[authz.ResourceType]uuid.UUID{
		authz.TypeProduct: req.ProductID,
		authz.TypeBranch:  req.BranchID,
	}
	if err := h.service.Create(c.UserContext(), caller, authz.TypeInventoryRecord, record, refs); err != nil {
		return respondErr(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Inventory record created", "data": record})
}

func (h *InventoryHandler) GetInventoryRecords(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	records, err := h.service.List(c.UserContext(), caller, authz.TypeInventoryRecord, queryFilter(c, "product_id", "branch_id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(records)
}

func (h *InventoryHandler) GetInventoryRecord(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inventory record ID"})
	}

	record, err := h.service.Get(c.UserContext(), caller, authz.TypeInventoryRecord, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(record)
}

func (h *InventoryHandler) UpdateInventoryRecord(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inventory record ID"})
	}

	var req UpdateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	changes := map[string]any{"updated_by": caller.String()}
	if req.Quantity != nil {
		changes["quantity"] = *req.Quantity
	}

	record, err := h.service.Update(c.UserContext(), caller, authz.TypeInventoryRecord, id, changes)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Inventory record updated", "data": record})
}

func (h *InventoryHandler) DeleteInventoryRecord(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inventory record ID"})
	}

	if err := h.service.Delete(c.UserContext(), caller, authz.TypeInventoryRecord, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Inventory record deleted"})
}
