package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/infrastructure/database/postgres"
)

// Seeds the demo branch, catalog and recipes into whatever database the
// environment points at. Useful outside development mode, where the API
// server does not seed on startup.
func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatal("database connection failed:", err)
	}
	defer db.Close()

	migration := postgres.NewMigration(db.GetDB())
	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatal("migration failed:", err)
	}
	if err := migration.SeedInitialData(); err != nil {
		log.Fatal("seeding failed:", err)
	}

	migration.GetTableInfo()
	log.Println("Demo data seeded")
}
