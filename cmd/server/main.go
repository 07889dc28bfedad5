package main

import (
	"log"
	"net/http"
	"os"

	_ "shoplist/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shoplist/internal/auth"
	"shoplist/internal/cache"
	"shoplist/internal/config"
	"shoplist/internal/db"
	"shoplist/internal/handler"
	"shoplist/internal/model"
	"shoplist/internal/repository"
	"shoplist/internal/router"
	"shoplist/internal/service"
)

// @title Shopping List API
// @version 1.0
// @description Personal shopping-list manager with owner-scoped lists, items and shared category/store tags.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			"shoplist_items",
			&model.ShopList{},
			&model.Item{},
			&model.Category{},
			&model.Store{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Store{},
		&model.Item{},
		&model.ShopList{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	repos := repository.New(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(repos.Users, jwtService, tokenStore)
	userService := service.NewUserService(repos.Users, cacheClient)
	categoryService := service.NewCategoryService(repos.Categories)
	storeService := service.NewStoreService(repos.Stores)
	itemService := service.NewItemService(repos, txManager)
	listService := service.NewShopListService(repos, txManager)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	storeHandler := handler.NewStoreHandler(storeService)
	itemHandler := handler.NewItemHandler(itemService)
	listHandler := handler.NewShopListHandler(listService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		categoryHandler,
		storeHandler,
		itemHandler,
		listHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
