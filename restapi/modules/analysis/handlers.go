// Package analysis serves the aggregate counts endpoint.
package analysis

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/h108777/ThreatMap/model"
)

// Summarizer computes the aggregate counts over the stored record set.
type Summarizer interface {
	Summary(ctx context.Context) (model.Summary, error)
}

// Summary returns the total count plus the by-severity and by-status groupings.
func Summary(service Summarizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := service.Summary(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
		}
		return c.JSON(summary)
	}
}
