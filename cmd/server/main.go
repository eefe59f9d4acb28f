package main

import (
	"log"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"
	"github.com/ndemidov/inkwell/internal/cache"
	"github.com/ndemidov/inkwell/internal/router"
	"github.com/ndemidov/inkwell/pkg/config"
	"github.com/ndemidov/inkwell/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Session manager backing the login flow
	sessions := scs.New()
	sessions.Lifetime = cfg.SessionLifetime

	// Page cache for the global index listing
	pageCache := cache.NewPageCache(cfg.IndexCacheTTL)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, sessions, pageCache, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
