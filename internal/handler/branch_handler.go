package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/service"
)

type BranchHandler struct {
	service service.ResourceService
}

func NewBranchHandler(s service.ResourceService) *BranchHandler {
	return &BranchHandler{service: s}
}

type CreateBranchRequest struct {
	Name    string    `json:"name" validate:"required"`
	Address string    `json:"address"`
	StoreID uuid.UUID `json:"store_id" validate:"uuid_required"`
}

type UpdateBranchRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

func (h *BranchHandler) CreateBranch(c *fiber.Ctx) error {
	var req CreateBranchRequest
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

	branch := &model.Branch{
		Name:    req.Name,
		Address: req.Address,
		StoreID: req.StoreID,
	}
	branch.CreatedBy = caller.String()
	branch.UpdatedBy = caller.String()

	refs := map[authz.ResourceType]uuid.UUID{authz.TypeStore: req.StoreID}
	if err := h.service.Create(c.UserContext(), caller, authz.TypeBranch, branch, refs); err != nil {
		return respondErr(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Branch created", "data": branch})
}

func (h *BranchHandler) GetBranches(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	branches, err := h.service.List(c.UserContext(), caller, authz.TypeBranch, queryFilter(c, "name", "store_id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(branches)
}

func (h *BranchHandler) GetBranch(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	branch, err := h.service.Get(c.UserContext(), caller, authz.TypeBranch, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(branch)
}

func (h *BranchHandler) UpdateBranch(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	var req UpdateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	// Non-relational attributes only; branches are never re-parented.
	changes := map[string]any{"updated_by": caller.String()}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Address != nil {
		changes["address"] = *req.Address
	}

	branch, err := h.service.Update(c.UserContext(), caller, authz.TypeBranch, id, changes)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Branch updated", "data": branch})
}

func (h *BranchHandler) DeleteBranch(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	if err := h.service.Delete(c.UserContext(), caller, authz.TypeBranch, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Branch deleted"})
}
