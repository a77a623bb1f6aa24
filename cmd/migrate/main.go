// Administrative tool: creates the schema and optionally seeds test users.
// User creation is deliberately outside the delivery run, which only ever
// reads the subscriber table.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/mindfuel/daily-quotes/internal/config"
	"github.com/mindfuel/daily-quotes/internal/domain"
	"github.com/mindfuel/daily-quotes/internal/repository/postgres"
)

func main() {
	seed := false
	for _, a := range os.Args[1:] {
		if a == "--seed" {
			seed = true
		}
	}

	cfg, err := config.LoadFromEnv("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping: %v", err)
	}
	log.Println("Connected to database")

	ctx := context.Background()
	store := postgres.NewStore(db)

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	log.Println("Schema ensured")

	if !seed {
		return
	}

	seedUsers := []domain.User{
		{Email: "user1@example.com", Name: "Alice Daily", Frequency: domain.FrequencyDaily},
		{Email: "user2@example.com", Name: "Bob Weekly", Frequency: domain.FrequencyWeekly},
	}
	for _, u := range seedUsers {
		if err := store.InsertUser(ctx, u); err != nil {
			log.Fatalf("seed user %s: %v", u.Email, err)
		}
	}
	log.Printf("Seeded %d test users", len(seedUsers))
}
