package handler

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/apperr"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/pkg/validator"
)

// accountID extracts the authenticated account id set by the auth middleware.
func accountID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("account_id")
	if raw == nil {
		return uuid.Nil, fmt.Errorf("no authenticated account in context")
	}
	return uuid.Parse(raw.(string))
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondErr maps a service error to its HTTP status. Internal errors are
// logged and answered generically so collaborator details never leak.
func respondErr(c *fiber.Ctx, err error) error {
	status := apperr.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// validateBody runs struct validation and answers 400 with the first failed
// field, the way every creation endpoint reports bad payloads.
func validateBody(c *fiber.Ctx, body any) error {
	if errs := validator.ValidateStruct(body); len(errs) > 0 {
		first := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag),
		})
	}
	return nil
}

// queryFilter collects the whitelisted query params into a caller filter.
// Ownership-clause keys are never part of a whitelist; the scoper rejects
// them if they arrive some other way.
func queryFilter(c *fiber.Ctx, keys ...string) authz.Filter {
	conds := make(map[string]any)
	for _, key := range keys {
		if v := c.Query(key); v != "" {
			conds[key] = v
		}
	}
	return authz.NewFilter(conds)
}
