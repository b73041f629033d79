// Package cves serves the raw vulnerability listing.
package cves

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/h108777/ThreatMap/model"
)

// Lister loads the full vulnerability record set.
type Lister interface {
	ListCVEs(ctx context.Context) ([]model.CVERecord, error)
}

// List returns every stored vulnerability record.
func List(store Lister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := store.ListCVEs(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load CVEs"})
		}
		if records == nil {
			records = []model.CVERecord{}
		}
		return c.JSON(records)
	}
}
