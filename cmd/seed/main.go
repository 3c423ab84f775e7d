package main

import (
	"context"
	"log"
	"time"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database connection
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
		Username string
		Email    string
		FullName string
		Password string
		Role     string
	}{
		{"maria_o", "maria@example.com", "Maria Organizer", "password123", "organizer"},
		{"carlos_p", "carlos@example.com", "Carlos Participant", "password123", "participant"},
		{"lucia_p", "lucia@example.com", "Lucia Participant", "password123", "participant"},
	}

	userIDs := make(map[string]int64)
	for _, u := range users {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)

		var id int64
		err := db.Pool.QueryRow(ctx, `
			INSERT INTO users (username, email, full_name, password_hash, role)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
			RETURNING id
		`, u.Username, u.Email, u.FullName, string(hashedPassword), u.Role).Scan(&id)

		if err != nil {
			log.Printf("Failed to create user %s: %v\n", u.Username, err)
			continue
		}
		userIDs[u.Username] = id
		log.Printf("User %s created (or already exists)\n", u.Username)
	}

	organizerID, ok := userIDs["maria_o"]
	if !ok {
		log.Fatal("Organizer user missing, cannot seed events")
	}

	// Create events: one inside the 24h reminder window, one further out
	events := []struct {
		Title       string
		Description string
		Date        time.Time
		Location    string
	}{
		{"Product Launch", "Launch party for the new release", time.Now().Add(10 * time.Hour), "Main Hall"},
		{"Tech Conference", "Annual technology conference", time.Now().Add(5 * 24 * time.Hour), "Convention Center"},
		{"Community Meetup", "Monthly community gathering", time.Now().Add(14 * 24 * time.Hour), "Downtown Cafe"},
	}

	var eventIDs []int64
	for _, e := range events {
		var id int64
		err := db.Pool.QueryRow(ctx, `
			INSERT INTO events (title, description, date, location, organizer_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, e.Title, e.Description, e.Date, e.Location, organizerID).Scan(&id)

		if err != nil {
			log.Printf("Failed to create event %s: %v\n", e.Title, err)
			continue
		}
		eventIDs = append(eventIDs, id)
		log.Printf("Event %s created\n", e.Title)
	}

	// Register the participants for every event
	for _, username := range []string{"carlos_p", "lucia_p"} {
		userID, ok := userIDs[username]
		if !ok {
			continue
		}
		for _, eventID := range eventIDs {
			_, err := db.Pool.Exec(ctx, `
				INSERT INTO event_attendance (user_id, event_id)
				VALUES ($1, $2)
				ON CONFLICT (user_id, event_id) DO NOTHING
			`, userID, eventID)
			if err != nil {
				log.Printf("Failed to register %s for event %d: %v\n", username, eventID, err)
			}
		}
	}

	log.Println("Seeding completed")
}
