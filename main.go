package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront-api/live"
	"storefront-api/models"
	"storefront-api/routes"
	"storefront-api/services"
	"storefront-api/store"
	"storefront-api/store/gormstore"
	"storefront-api/store/memstore"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	initLogger()
	defer zap.L().Sync()

	zap.S().Info("Starting storefront API...")

	st := initStore()

	// Gin setup
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-KEY", "X-Session-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	hub := live.NewHub()
	catalog := services.NewCatalog(st.catalog, hub)
	carts := services.NewCarts(st.carts, st.catalog)
	sessions := services.NewSessions(st.sessions, carts)

	routes.SetupRoutes(r, catalog, carts, sessions, hub)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	zap.S().Infof("Server running on port %s", port)
	if err := r.Run(":" + port); err != nil {
		zap.S().Fatalf("Failed to start server: %v", err)
	}
}

func initLogger() {
	var cfg zap.Config
	if os.Getenv("GIN_MODE") == "release" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

type stores struct {
	catalog  store.CatalogStore
	carts    store.CartStore
	sessions store.SessionStore
}

// initStore picks the backing store: postgres when configured, the in-memory
// store otherwise (local development without a database).
func initStore() stores {
	dsn := databaseDSN()
	if dsn == "" {
		zap.S().Warn("No database configured, using the in-memory store")
		mem := memstore.New()
		return stores{catalog: mem, carts: mem, sessions: mem}
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		zap.S().Fatalf("DB connection failed: %v", err)
	}

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.CartSession{},
	); err != nil {
		zap.S().Fatalf("AutoMigrate failed: %v", err)
	}

	gs := gormstore.New(db)
	return stores{catalog: gs, carts: gs, sessions: gs}
}

func databaseDSN() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
	)
}
