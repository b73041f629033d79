package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/h108777/ThreatMap/database"
	gqlschema "github.com/h108777/ThreatMap/graphql"
	"github.com/h108777/ThreatMap/internal/analysis"
	"github.com/h108777/ThreatMap/internal/identity"
	"github.com/h108777/ThreatMap/internal/ingest"
	"github.com/h108777/ThreatMap/internal/nvd"
	"github.com/h108777/ThreatMap/restapi"
	"go.uber.org/zap"
)

// NewFiberApp creates and configures the backend Fiber app with all routes
// wired to explicitly constructed services.
func NewFiberApp(db database.DBConnection, feedCfg nvd.FeedConfig, idCfg identity.Config, zlog *zap.Logger) *fiber.App {
	sugar := zlog.Sugar()

	store := database.NewStore(db)
	client := nvd.NewClient(feedCfg)
	job := ingest.NewJob(client, store, sugar)
	supervisor := ingest.NewSupervisor(sugar)
	identitySvc := identity.NewService(db, idCfg)
	analysisSvc := analysis.NewService(store)

	schema, err := gqlschema.CreateSchema(store, analysisSvc)
	if err != nil {
		log.Fatalf("Failed to create GraphQL schema: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:     "ThreatMap API v1.0",
		ReadTimeout: 60 * time.Second,
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Liveness endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Backend is running")
	})

	restapi.SetupRoutes(app, restapi.Deps{
		Identity:   identitySvc,
		CVEs:       store,
		Sources:    store,
		Analysis:   analysisSvc,
		Supervisor: supervisor,
		Runner:     job,
		Schema:     schema,
	})

	return app
}
