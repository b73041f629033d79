// Package jobs triggers ingestion runs and exposes their observable state.
package jobs

import (
	"github.com/gofiber/fiber/v2"
	"github.com/h108777/ThreatMap/internal/ingest"
)

// Trigger starts a supervised ingestion run and acknowledges immediately.
// The run is detached from the request's lifecycle; the returned job id lets
// the caller poll for completion and failure counts.
func Trigger(supervisor *ingest.Supervisor, runner ingest.Runner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := supervisor.Start(runner)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message": "Data fetch and processing started in background.",
			"job_id":  id,
		})
	}
}

// Get returns the state of one ingestion run.
func Get(supervisor *ingest.Supervisor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, ok := supervisor.Get(c.Params("id"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown job id"})
		}
		return c.JSON(state)
	}
}
