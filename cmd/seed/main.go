// Command main runs the database seeder for Unburden.
package main

import (
	"flag"
	"log"

	"unburden/internal/config"
	"unburden/internal/database"
	"unburden/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numConfessions := flag.Int("confessions", 200, "Number of confessions to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plain passwords (faster, login unusable)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d confessions, clean=%v\n", *numUsers, *numConfessions, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeederWithOptions(db, seed.Options{SkipBcrypt: *skipBcrypt})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedSocialMesh(*numUsers)
	if err != nil {
		log.Fatalf("❌ User seeding failed: %v", err)
	}
	if _, err := s.SeedEngagement(users, *numConfessions); err != nil {
		log.Fatalf("❌ Engagement seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
