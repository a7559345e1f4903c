package main

import (
	"log"

	"github.com/fatih/color"

	"subhub-be/internal/config"
	"subhub-be/internal/model"
	"subhub-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	color.Cyan("Running migrations...")

	if err := db.AutoMigrate(
		&model.Subscription{},
		&model.WebhookDelivery{},
	); err != nil {
		color.Red("Migration failed: %v", err)
		log.Fatal(err)
	}

	color.Green("✅ Migrations applied: subscriptions, webhook_deliveries")
}
