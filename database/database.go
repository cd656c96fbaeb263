package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func Connect(host, port, user, password, dbname string) (*sql.DB, error) {
	// Build connection string
	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// Open database connection
	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	return db, nil
}

// EnsureSchema creates the tables the approval workflow depends on.
// Safe to run on every startup.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'candidate',
			status VARCHAR(32) NOT NULL DEFAULT 'pending_verification',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS candidates (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			approval_status VARCHAR(32) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS companies (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			approval_status VARCHAR(32) NOT NULL DEFAULT 'pending',
			verified_at TIMESTAMP,
			notification_dismissed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS employers (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			company_id UUID NOT NULL REFERENCES companies(id),
			is_primary_contact BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_approval_status ON candidates(approval_status)`,
		`CREATE INDEX IF NOT EXISTS idx_companies_approval_status ON companies(approval_status)`,
		`CREATE INDEX IF NOT EXISTS idx_employers_company_id ON employers(company_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("error creating schema: %v", err)
		}
	}
	return nil
}
