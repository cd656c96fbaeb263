package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	ApprovalStatus        string     `json:"approval_status"`
	VerifiedAt            *time.Time `json:"verified_at,omitempty"`
	NotificationDismissed bool       `json:"notification_dismissed"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// CompanyContact is the employer account that receives company-level mail.
type CompanyContact struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	IsPrimary bool   `json:"is_primary"`
}

type CompanyModel struct {
	DB *sql.DB
}

func NewCompanyModel(db *sql.DB) *CompanyModel {
	return &CompanyModel{DB: db}
}

func (m *CompanyModel) GetByID(id string) (*Company, error) {
	company := &Company{}
	var verifiedAt sql.NullTime
	query := `
		SELECT id, name, approval_status, verified_at, notification_dismissed, created_at, updated_at
		FROM companies WHERE id = $1
	`
	err := m.DB.QueryRow(query, id).Scan(
		&company.ID, &company.Name, &company.ApprovalStatus, &verifiedAt,
		&company.NotificationDismissed, &company.CreatedAt, &company.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("company %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if verifiedAt.Valid {
		company.VerifiedAt = &verifiedAt.Time
	}
	return company, nil
}

// UpdateApproval writes the approval status for every id in one
// transaction. Approval stamps verified_at and re-arms the approval
// banner; rejection clears verified_at and dismisses the banner.
func (m *CompanyModel) UpdateApproval(ids []string, status string) ([]Company, error) {
	tx, err := m.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	var verifiedAt sql.NullTime
	dismissed := true
	if status == ApprovalApproved {
		verifiedAt = sql.NullTime{Time: now, Valid: true}
		dismissed = false
	}

	updated := []Company{}
	for _, id := range ids {
		var c Company
		var scannedVerifiedAt sql.NullTime
		err := tx.QueryRow(`
			UPDATE companies
			SET approval_status = $1, verified_at = $2, notification_dismissed = $3, updated_at = $4
			WHERE id = $5
			RETURNING id, name, approval_status, verified_at, notification_dismissed, created_at, updated_at`,
			status, verifiedAt, dismissed, now, id).Scan(
			&c.ID, &c.Name, &c.ApprovalStatus, &scannedVerifiedAt,
			&c.NotificationDismissed, &c.CreatedAt, &c.UpdatedAt,
		)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		if scannedVerifiedAt.Valid {
			c.VerifiedAt = &scannedVerifiedAt.Time
		}
		updated = append(updated, c)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return updated, nil
}

// PrimaryContact resolves the employer account that should receive
// company-level notifications: the flagged primary contact, or the
// earliest linked employer when none is flagged.
func (m *CompanyModel) PrimaryContact(companyID string) (*CompanyContact, error) {
	contact := &CompanyContact{}
	query := `
		SELECT e.user_id, u.email, e.is_primary_contact
		FROM employers e
		JOIN users u ON u.id = e.user_id
		WHERE e.company_id = $1
		ORDER BY e.is_primary_contact DESC, e.created_at ASC
		LIMIT 1
	`
	err := m.DB.QueryRow(query, companyID).Scan(&contact.UserID, &contact.Email, &contact.IsPrimary)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("contact for company %s: %w", companyID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// Register creates the employer account, the pending company, and the
// primary-contact link in one transaction.
func (m *CompanyModel) Register(email, passwordHash, companyName string) (*Company, error) {
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
		userID, email, passwordHash, RoleEmployer, AccountPendingVerification, now)
	if err != nil {
		return nil, err
	}

	company := &Company{}
	err = tx.QueryRow(`
		INSERT INTO companies (id, name, approval_status, notification_dismissed, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, $4, $4)
		RETURNING id, name, approval_status, notification_dismissed, created_at, updated_at`,
		uuid.NewString(), companyName, ApprovalPending, now).Scan(
		&company.ID, &company.Name, &company.ApprovalStatus,
		&company.NotificationDismissed, &company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO employers (id, user_id, company_id, is_primary_contact, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, $4, $4)`,
		uuid.NewString(), userID, company.ID, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return company, nil
}
