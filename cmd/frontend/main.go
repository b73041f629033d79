// package main provides the entry point for the ThreatMap frontend service.
package main

import (
	"log"

	"github.com/h108777/ThreatMap/database"
	"github.com/h108777/ThreatMap/frontend"
	"github.com/h108777/ThreatMap/internal/identity"
)

func main() {
	// The frontend verifies session tokens with the same identity credential
	// the backend signs them with.
	idCfg, err := identity.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load identity config: %v", err)
	}

	cfg := frontend.Config{
		BackendURL: database.GetEnvDefault("BACKEND_URL", "http://localhost:5050"),
		JWTSecret:  idCfg.JWTSecret,
	}

	zlog := database.InitLogger()
	defer func() { _ = zlog.Sync() }()

	app := frontend.NewApp(cfg, zlog)

	port := database.GetEnvDefault("FRONTEND_PORT", "5000")

	log.Printf("Starting frontend on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start frontend: %v", err)
	}
}
