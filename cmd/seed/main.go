package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/BrianKimathi/event-booking-api/config"
	"github.com/BrianKimathi/event-booking-api/pkg/helpers"
)

// Seeds the role reference data the API depends on, plus a demo admin
// account for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	roles := map[string]string{
		"USER":    "Default role for registered accounts",
		"ADMIN":   "Platform administration",
		"CREATOR": "Verified event creator",
	}
	roleIDs := make(map[string]int64, len(roles))
	for name, desc := range roles {
		var id int64
		err := db.QueryRow(`
			INSERT INTO roles (name, description) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, updated_at = now()
			RETURNING id
		`, name, desc).Scan(&id)
		if err != nil {
			log.Fatalf("failed to upsert role %s: %v", name, err)
		}
		roleIDs[name] = id
		fmt.Printf("seeded role: id=%d name=%s\n", id, name)
	}

	email := "admin@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (email, password, first_name, last_name, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (email) DO UPDATE SET first_name = EXCLUDED.first_name
		RETURNING id
	`, email, hash, "Demo", "Admin").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	for _, name := range []string{"USER", "ADMIN"} {
		if _, err := db.Exec(`
			INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
			ON CONFLICT (user_id, role_id) DO NOTHING
		`, userID, roleIDs[name]); err != nil {
			log.Fatalf("failed to assign role %s: %v", name, err)
		}
	}
	fmt.Printf("seeded admin: id=%d email=%s password=%s\n", userID, email, password)
}
