// Package sources serves the raw source listing.
package sources

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/h108777/ThreatMap/model"
)

// Lister loads the full source record set.
type Lister interface {
	ListSources(ctx context.Context) ([]model.SourceRecord, error)
}

// List returns every stored source record.
func List(store Lister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := store.ListSources(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load sources"})
		}
		if records == nil {
			records = []model.SourceRecord{}
		}
		return c.JSON(records)
	}
}
