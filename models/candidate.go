package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ApprovalStatus string    `json:"approval_status"`
	Email          string    `json:"email"`
	AccountRole    string    `json:"-"`
	AccountStatus  string    `json:"account_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c *Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}

type CandidateModel struct {
	DB *sql.DB
}

func NewCandidateModel(db *sql.DB) *CandidateModel {
	return &CandidateModel{DB: db}
}

func (m *CandidateModel) GetByID(id string) (*Candidate, error) {
	candidate := &Candidate{}
	query := `
		SELECT c.id, c.user_id, c.first_name, c.last_name, c.approval_status,
		       u.email, u.role, u.status, c.created_at, c.updated_at
		FROM candidates c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`
	err := m.DB.QueryRow(query, id).Scan(
		&candidate.ID, &candidate.UserID, &candidate.FirstName, &candidate.LastName,
		&candidate.ApprovalStatus, &candidate.Email, &candidate.AccountRole,
		&candidate.AccountStatus, &candidate.CreatedAt, &candidate.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return candidate, nil
}

// UpdateApproval writes the approval status for every id and keeps the
// linked user's account status in sync. The whole id list shares one
// transaction: a missing id rolls back every sibling write.
func (m *CandidateModel) UpdateApproval(ids []string, status string) ([]Candidate, error) {
	accountStatus := AccountStatusFor(status)

	tx, err := m.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	updated := []Candidate{}
	for _, id := range ids {
		var c Candidate
		err := tx.QueryRow(`
			UPDATE candidates
			SET approval_status = $1, updated_at = $2
			WHERE id = $3
			RETURNING id, user_id, first_name, last_name, approval_status, created_at, updated_at`,
			status, now, id).Scan(
			&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.ApprovalStatus, &c.CreatedAt, &c.UpdatedAt,
		)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return nil, err
		}

		err = tx.QueryRow(`
			UPDATE users SET status = $1, updated_at = $2 WHERE id = $3
			RETURNING email`,
			accountStatus, now, c.UserID).Scan(&c.Email)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %s for candidate %s: %w", c.UserID, id, ErrNotFound)
		}
		if err != nil {
			return nil, err
		}

		c.AccountStatus = accountStatus
		updated = append(updated, c)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return updated, nil
}

// Register creates the user account and its pending candidate profile in
// one transaction.
func (m *CandidateModel) Register(email, passwordHash, firstName, lastName string) (*Candidate, error) {
	tx, err := m.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	userID := uuid.NewString()
	_, err = tx.Exec(`
		INSERT INTO users (id, email, password, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		userID, email, passwordHash, RoleCandidate, AccountPendingVerification, now)
	if err != nil {
		return nil, err
	}

	candidate := &Candidate{}
	err = tx.QueryRow(`
		INSERT INTO candidates (id, user_id, first_name, last_name, approval_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, user_id, first_name, last_name, approval_status, created_at, updated_at`,
		uuid.NewString(), userID, firstName, lastName, ApprovalPending, now).Scan(
		&candidate.ID, &candidate.UserID, &candidate.FirstName, &candidate.LastName,
		&candidate.ApprovalStatus, &candidate.CreatedAt, &candidate.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	candidate.Email = email
	candidate.AccountRole = RoleCandidate
	candidate.AccountStatus = AccountPendingVerification
	return candidate, nil
}
