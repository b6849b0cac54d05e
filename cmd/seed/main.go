package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/CamiloTello002/Talent-Trade/config"
	"github.com/CamiloTello002/Talent-Trade/pkg/helpers"
)

// Seeds the category/specialty catalog and two demo accounts that already
// know each other as contacts, so rating and visibility flows can be tried
// out locally without going through registration.

var catalog = map[string][]string{
	"Technology": {"Web Development", "Mobile Development", "Data Science", "DevOps"},
	"Languages":  {"English", "Spanish", "French", "Portuguese"},
	"Music":      {"Guitar", "Piano", "Singing", "Production"},
	"Crafts":     {"Woodworking", "Knitting", "Pottery"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	for category, specialties := range catalog {
		var catID string
		err := db.QueryRow(`
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, category).Scan(&catID)
		if err != nil {
			log.Fatalf("failed to upsert category %s: %v", category, err)
		}
		for _, sp := range specialties {
			if _, err := db.Exec(`
				INSERT INTO specialties (category_id, name) VALUES ($1, $2)
				ON CONFLICT (category_id, name) DO NOTHING
			`, catID, sp); err != nil {
				log.Fatalf("failed to upsert specialty %s/%s: %v", category, sp, err)
			}
		}
		fmt.Printf("category ensured: %s (%d specialties)\n", category, len(specialties))
	}

	aliceID := seedUser(db, "alice@example.com", "password123", "Alice Demo", "Full-stack developer who wants to learn guitar")
	bobID := seedUser(db, "bob@example.com", "password123", "Bob Demo", "Guitarist curious about web development")

	for _, pair := range [][2]string{{aliceID, bobID}, {bobID, aliceID}} {
		if _, err := db.Exec(`
			INSERT INTO user_contacts (user_id, contact_id) VALUES ($1, $2)
			ON CONFLICT (user_id, contact_id) DO NOTHING
		`, pair[0], pair[1]); err != nil {
			log.Fatalf("failed to link contacts: %v", err)
		}
	}
	fmt.Println("demo users linked as contacts")
}

func seedUser(db *sql.DB, email, password, name, aboutMe string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, about_me)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name, aboutMe).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)
	return id
}
