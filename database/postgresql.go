package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql
	"golang.org/x/crypto/bcrypt"

	"github.com/taskify/taskify-api/models"
)

var db *sql.DB

// GetDB returns the shared connection pool.
func GetDB() *sql.DB {
	return db
}

// StartPostgreSQL opens the connection, creates tables if absent, and runs
// the idempotent seed.
func StartPostgreSQL(uri, adminEmail, adminPassword string) error {
	var err error
	db, err = sql.Open("pgx", uri)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = db.PingContext(context.Background()); err != nil {
		return fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}

	log.Println("Connected to PostgreSQL")

	if err = createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err = seed(adminEmail, adminPassword); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	return nil
}

func createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		user_name TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS roles (
		name TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS user_roles (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_name TEXT NOT NULL REFERENCES roles(name),
		PRIMARY KEY (user_id, role_name)
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id SERIAL PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description VARCHAR(4000) NOT NULL DEFAULT '',
		priority VARCHAR(10) NOT NULL DEFAULT 'medium',
		status VARCHAR(20) NOT NULL DEFAULT 'todo',
		due_date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS daily_goals (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(500) NOT NULL,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS focus_sessions (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		duration_minutes INT NOT NULL,
		breaks_taken INT NOT NULL DEFAULT 0,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		started_at TIMESTAMPTZ NOT NULL,
		ended_at TIMESTAMPTZ
	)
	`
	_, err := db.Exec(query)
	return err
}

// seed inserts the role set and the admin account. Re-running is a no-op
// when the rows already exist.
func seed(adminEmail, adminPassword string) error {
	for _, role := range []string{models.RoleAdmin, models.RoleUser} {
		if _, err := db.Exec("INSERT INTO roles (name) VALUES ($1) ON CONFLICT DO NOTHING", role); err != nil {
			return err
		}
	}

	if adminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = lower($1))", adminEmail).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminID := uuid.New().String()
	userName := adminEmail
	if at := strings.Index(adminEmail, "@"); at > 0 {
		userName = adminEmail[:at]
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, password_hash, user_name, created_at)
		 VALUES ($1, lower($2), $3, $4, $5)`,
		adminID, adminEmail, string(hash), userName, time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	for _, role := range []string{models.RoleAdmin, models.RoleUser} {
		if _, err := db.Exec(
			"INSERT INTO user_roles (user_id, role_name) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			adminID, role,
		); err != nil {
			return err
		}
	}

	log.Println("Seeded admin user", adminEmail)
	return nil
}

// ClosePostgreSQL closes the connection pool.
func ClosePostgreSQL() {
	if db != nil {
		if err := db.Close(); err != nil {
			log.Println("error closing database:", err)
		}
	}
}
