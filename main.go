// package main provides the entry point for the ThreatMap backend service,
// wiring the document store, the identity gateway, the ingestion supervisor
// and the HTTP API together.
package main

import (
	"log"

	"github.com/h108777/ThreatMap/database"
	"github.com/h108777/ThreatMap/internal/api"
	"github.com/h108777/ThreatMap/internal/identity"
	"github.com/h108777/ThreatMap/internal/nvd"
)

func main() {
	// Initialize database connection
	db := database.InitializeDatabase()

	// Identity-provider credential comes in as a single JSON blob
	idCfg, err := identity.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load identity config: %v", err)
	}

	feedCfg, err := nvd.LoadFeedConfig(database.GetEnvDefault("FEED_CONFIG_PATH", ""))
	if err != nil {
		log.Fatalf("Failed to load feed config: %v", err)
	}

	zlog := database.InitLogger()
	defer func() { _ = zlog.Sync() }()

	app := api.NewFiberApp(db, feedCfg, idCfg, zlog)

	// Get port from environment or default to 5050
	port := database.GetEnvDefault("MS_PORT", "5050")

	// Start server
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
