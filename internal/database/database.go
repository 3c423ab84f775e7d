package database

import (
	"context"
	"fmt"
	"log"

	"eventhub-backend/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	Pool *pgxpool.Pool
}

func NewConnection(cfg *config.Config) (*Database, error) {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	log.Println("Successfully connected to database")
	return &Database{Pool: pool}, nil
}

func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

func (db *Database) GetDB() *pgxpool.Pool {
	return db.Pool
}

func RunMigrations(db *Database) error {
	ctx := context.Background()

	// Create users table
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) UNIQUE NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		full_name VARCHAR(100) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'participant' CHECK (role IN ('organizer', 'participant')),
		is_active BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	// Create social_auth table for OAuth-linked accounts
	createSocialAuthTable := `
	CREATE TABLE IF NOT EXISTS social_auth (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id) ON DELETE CASCADE,
		provider VARCHAR(50) NOT NULL,
		provider_id VARCHAR(100) NOT NULL,
		UNIQUE (provider, provider_id)
	);`

	// Create events table
	createEventsTable := `
	CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description TEXT,
		date TIMESTAMP WITH TIME ZONE NOT NULL,
		location VARCHAR(200) NOT NULL,
		max_participants INTEGER,
		organizer_id BIGINT NOT NULL REFERENCES users(id),
		is_active BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	// Create event_attendance table
	createAttendanceTable := `
	CREATE TABLE IF NOT EXISTS event_attendance (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		event_id BIGINT NOT NULL REFERENCES events(id),
		attended BOOLEAN DEFAULT FALSE,
		registered_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE (user_id, event_id)
	);`

	// Create comments table
	createCommentsTable := `
	CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		event_id BIGINT NOT NULL REFERENCES events(id),
		content TEXT NOT NULL,
		rating INTEGER CHECK (rating >= 1 AND rating <= 5),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	// Create event_shares table
	createSharesTable := `
	CREATE TABLE IF NOT EXISTS event_shares (
		id BIGSERIAL PRIMARY KEY,
		event_id BIGINT NOT NULL REFERENCES events(id),
		share_type VARCHAR(20) NOT NULL CHECK (share_type IN ('social_media', 'email')),
		recipient VARCHAR(255),
		shared_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	// Create indexes
	createIndexes := `
	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
	CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
	CREATE INDEX IF NOT EXISTS idx_events_organizer_id ON events(organizer_id);
	CREATE INDEX IF NOT EXISTS idx_attendance_user_id ON event_attendance(user_id);
	CREATE INDEX IF NOT EXISTS idx_attendance_event_id ON event_attendance(event_id);
	CREATE INDEX IF NOT EXISTS idx_comments_event_id ON comments(event_id);
	CREATE INDEX IF NOT EXISTS idx_shares_event_id ON event_shares(event_id);`

	migrations := []string{
		createUsersTable,
		createSocialAuthTable,
		createEventsTable,
		createAttendanceTable,
		createCommentsTable,
		createSharesTable,
		createIndexes,
	}

	for _, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func (db *Database) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

func (db *Database) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return db.Pool.QueryRow(ctx, sql, args...)
}

func (db *Database) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return db.Pool.Query(ctx, sql, args...)
}

func (db *Database) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return db.Pool.Exec(ctx, sql, args...)
}
