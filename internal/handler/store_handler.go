package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/service"
)

type StoreHandler struct {
	service service.ResourceService
}

func NewStoreHandler(s service.ResourceService) *StoreHandler {
	return &StoreHandler{service: s}
}

type CreateStoreRequest struct {
	Name     string `json:"name" validate:"required"`
	Currency string `json:"currency"`
}

type UpdateStoreRequest struct {
	Name     *string `json:"name"`
	Currency *string `json:"currency"`
}

func (h *StoreHandler) CreateStore(c *fiber.Ctx) error {
	var req CreateStoreRequest
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

	// The creating account becomes the owner; the binding is part of the
	// INSERT and never changes afterwards.
	store := &model.Store{
		Name:           req.Name,
		Currency:       req.Currency,
		OwnerAccountID: caller,
	}
	store.CreatedBy = caller.String()
	store.UpdatedBy = caller.String()

	if err := h.service.Create(c.UserContext(), caller, authz.TypeStore, store, nil); err != nil {
		return respondErr(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Store created", "data": store})
}

func (h *StoreHandler) GetStores(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	stores, err := h.service.List(c.UserContext(), caller, authz.TypeStore, queryFilter(c, "name", "currency"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(stores)
}

func (h *StoreHandler) GetStore(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	store, err := h.service.Get(c.UserContext(), caller, authz.TypeStore, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(store)
}

func (h *StoreHandler) UpdateStore(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	var req UpdateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	changes := map[string]any{"updated_by": caller.String()}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Currency != nil {
		changes["currency"] = *req.Currency
	}

	store, err := h.service.Update(c.UserContext(), caller, authz.TypeStore, id, changes)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Store updated", "data": store})
}

func (h *StoreHandler) DeleteStore(c *fiber.Ctx) error {
	caller, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	if err := h.service.Delete(c.UserContext(), caller, authz.TypeStore, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Store deleted"})
}
