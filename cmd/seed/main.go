package main

import (
	"context"
	"log"
	"time"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/modules/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Seeding dev backend data...")
	res, err := pricing.Seed(context.Background(), db, time.Now().In(cfg.Location), log.Printf)
	if err != nil {
		log.Fatal("seed failed:", err)
	}

	log.Printf("Seed complete: users=%d hotels=%d rooms=%d promotions=%d skipped=%d",
		res.Users, res.Hotels, res.Rooms, res.Promotions, res.Skipped)
	for _, u := range pricing.DefaultUsers {
		log.Printf("  %s / %s (%s)", u.Email, u.Password, u.Role)
	}
}
