package main

import (
	"context"
	"log"
	"time"

	"paperhub-backend/internal/config"
	"paperhub-backend/internal/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()

	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	ctx := context.Background()

	// Create users
	users := []struct {
		Email    string
		Password string
		Name     string
		Role     string
	}{
		{"author@example.com", "password123", "Alice Author", "author"},
		{"editor@example.com", "password123", "Bob Editor", "editor"},
		{"coordinator@example.com", "password123", "Charlie Coordinator", "coordinator"},
		{"admin@example.com", "password123", "David Admin", "admin"},
	}

	for _, u := range users {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)

		_, err := db.Exec(ctx, `
			INSERT INTO users (email, password_hash, name, role, is_verified, created_at, updated_at)
			VALUES ($1, $2, $3, $4, TRUE, $5, $5)
			ON CONFLICT (email) DO NOTHING
		`, u.Email, string(hashedPassword), u.Name, u.Role, time.Now())

		if err != nil {
			log.Printf("Failed to create user %s: %v\n", u.Email, err)
		} else {
			log.Printf("User %s created (or already exists)\n", u.Email)
		}
	}

	// Demo content so fresh installs have something on the board
	var authorID string
	err = db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, "author@example.com").Scan(&authorID)
	if err != nil {
		log.Fatal("Failed to look up seed author:", err)
	}

	var coordinatorID string
	err = db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, "coordinator@example.com").Scan(&coordinatorID)
	if err != nil {
		log.Fatal("Failed to look up seed coordinator:", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO papers (title, abstract, author_id, status, file_url, type)
		SELECT $1, $2, $3, 'submitted', $4, 'research'
		WHERE NOT EXISTS (SELECT 1 FROM papers WHERE title = $1)
	`, "Adaptive Sampling for Sensor Networks",
		"We evaluate adaptive sampling schedules for low-power environmental sensor networks.",
		authorID, "https://example.com/papers/adaptive-sampling.pdf")
	if err != nil {
		log.Printf("Failed to seed paper: %v\n", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO news (title, content, author_id, status)
		SELECT $1, $2, $3, 'published'
		WHERE NOT EXISTS (SELECT 1 FROM news WHERE title = $1)
	`, "Submission Portal Open",
		"The portal is now accepting research paper submissions for the current cycle.",
		coordinatorID)
	if err != nil {
		log.Printf("Failed to seed news: %v\n", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO events (title, description, date, location, coordinator_id, status)
		SELECT $1, $2, $3, $4, $5, 'published'
		WHERE NOT EXISTS (SELECT 1 FROM events WHERE title = $1)
	`, "Annual Research Symposium",
		"Presentations from this year's accepted papers, followed by a poster session.",
		time.Now().AddDate(0, 2, 0), "Main Auditorium", coordinatorID)
	if err != nil {
		log.Printf("Failed to seed event: %v\n", err)
	}

	log.Println("Seeding completed successfully!")
}
