package main

import (
	"context"
	"log"

	"practicas/internal/config"
	"practicas/internal/db"
	"practicas/internal/model"
	"practicas/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Offer{},
		&model.Application{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	seeder := service.NewSeedService(gormDB)
	if err := seeder.ResetDemo(context.Background()); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("Seed completed successfully!")
	log.Println("  - 6 demo accounts (admin, 2 companies, 2 students, 1 teacher)")
	log.Println("  - 4 offers, 3 applications across the review workflow")
}
