package main

import (
	"context"
	"flag"
	"log"

	"shoplist/internal/config"
	"shoplist/internal/db"
	"shoplist/internal/model"
	"shoplist/internal/repository"
	"shoplist/internal/service"
)

func main() {
	ownerEmail := flag.String("owner-email", "defaults@default.com", "email of the user that owns the shared default tags")
	ownerPassword := flag.String("owner-password", "defaultpass123", "password for the defaults user if it has to be created")
	flag.Parse()

	log.Println("Seeding default stores and categories...")

	cfg := config.Load()
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Store{},
		&model.Item{},
		&model.ShopList{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	repos := repository.New(gormDB)
	seeder := service.NewSeedService(repos, repository.NewTxManager(gormDB))

	created, err := seeder.EnsureDefaults(context.Background(), *ownerEmail, *ownerPassword)
	if err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	log.Printf("Done. Created %d new shared tags (owner: %s).", created, *ownerEmail)
}
