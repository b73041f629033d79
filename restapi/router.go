// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/h108777/ThreatMap/internal/ingest"
	"github.com/h108777/ThreatMap/restapi/modules/analysis"
	"github.com/h108777/ThreatMap/restapi/modules/auth"
	"github.com/h108777/ThreatMap/restapi/modules/cves"
	"github.com/h108777/ThreatMap/restapi/modules/jobs"
	"github.com/h108777/ThreatMap/restapi/modules/sources"
)

// Deps carries the explicitly constructed services the routes are wired to.
type Deps struct {
	Identity   auth.Provider
	CVEs       cves.Lister
	Sources    sources.Lister
	Analysis   analysis.Summarizer
	Supervisor *ingest.Supervisor
	Runner     ingest.Runner
	Schema     graphql.Schema
}

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, deps Deps) {
	// Identity endpoints
	app.Post("/login-user", auth.LoginUser(deps.Identity))
	app.Post("/create-user", auth.CreateUser(deps.Identity))

	// Ingestion trigger and job status
	app.Get("/fetch-data", jobs.Trigger(deps.Supervisor, deps.Runner))
	app.Get("/jobs/:id", jobs.Get(deps.Supervisor))

	// Read and aggregate endpoints
	app.Get("/cves", cves.List(deps.CVEs))
	app.Get("/sources", sources.List(deps.Sources))
	app.Get("/analysis/summary", analysis.Summary(deps.Analysis))

	// GraphQL dashboard queries
	app.Post("/graphql", GraphQLHandler(deps.Schema))

	log.Println("API routes initialized successfully")
}
