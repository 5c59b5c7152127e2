// Command main runs the demo data seeder for Estately.
package main

import (
	"flag"
	"log"

	"estately/internal/config"
	"estately/internal/database"
	"estately/internal/seed"
)

func main() {
	numProperties := flag.Int("properties", 1000, "Number of listings to create")
	numOwners := flag.Int("owners", 0, "Number of extra random owners besides the demo owner")
	shouldClean := flag.Bool("clean", true, "Delete existing listings before seeding")
	dryRun := flag.Bool("dry-run", false, "Build records without writing them")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d properties, %d extra owners, clean=%v, dry-run=%v", *numProperties, *numOwners, *shouldClean, *dryRun)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	res, err := seed.Seed(db, seed.Options{
		NumProperties: *numProperties,
		NumOwners:     *numOwners,
		ShouldClean:   *shouldClean,
		DryRun:        *dryRun,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All done: %d listings (%d approved, %d pending)", res.Properties, res.Approved, res.Pending)
	log.Printf("Demo accounts %s and %s use the password: %s", seed.DemoOwnerEmail, seed.DemoAdminEmail, seed.DemoPassword)
}
