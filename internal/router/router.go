package router

import (
	"log"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/ndemidov/inkwell/internal/cache"
	"github.com/ndemidov/inkwell/internal/handlers"
	"github.com/ndemidov/inkwell/internal/middleware"
	"github.com/ndemidov/inkwell/internal/models"
	"github.com/ndemidov/inkwell/internal/repositories"
	"github.com/ndemidov/inkwell/pkg/config"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, sessions *scs.SessionManager, pageCache *cache.PageCache, cfg *config.Config) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Sessions must load before any route-level auth check runs
	e.Use(echo.WrapMiddleware(sessions.LoadAndSave))
	authed := middleware.RequireLogin(sessions)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	groupRepo := repositories.NewPostgresGroupRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	// --- Auth routes ---
	authGroup := e.Group("/auth")
	authHandler := handlers.NewAuthHandler(userRepo, sessions)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Post routes (listings, detail, create/edit) ---
	postHandler := handlers.NewPostHandler(postRepo, groupRepo, userRepo, commentRepo, followRepo, pageCache, sessions, cfg.MediaDir)
	postHandler.RegisterPostRoutes(e, authed)
	log.Println("Post routes configured.")

	// --- Comment routes ---
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, sessions)
	commentHandler.RegisterCommentRoutes(e, authed)
	log.Println("Comment routes configured.")

	// --- Follow routes (feed, follow/unfollow) ---
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, postRepo, sessions)
	followHandler.RegisterFollowRoutes(e, authed)
	log.Println("Follow routes configured.")

	log.Println("All routes configured.")
}
