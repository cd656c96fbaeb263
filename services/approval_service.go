package services

import (
	"errors"
	"fmt"
	"time"

	"hirebridge/models"
	"hirebridge/utils"
)

// CandidateStore is the persistence surface the workflow needs for candidates.
type CandidateStore interface {
	GetByID(id string) (*models.Candidate, error)
	UpdateApproval(ids []string, status string) ([]models.Candidate, error)
}

// CompanyStore is the persistence surface the workflow needs for companies.
type CompanyStore interface {
	GetByID(id string) (*models.Company, error)
	UpdateApproval(ids []string, status string) ([]models.Company, error)
	PrimaryContact(companyID string) (*models.CompanyContact, error)
}

// Notifier delivers a best-effort decision notice. Implementations never
// return an error; false means delivery failed and was logged.
type Notifier interface {
	NotifyDecision(kind, email, name, action, reason string) bool
}

// ErrInvalidState signals a data-integrity problem, e.g. a candidate row
// whose linked account does not carry the candidate role.
var ErrInvalidState = errors.New("invalid state")

// Summary is the caller-facing projection of an entity after a transition
// or status read.
type Summary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ApprovalStatus string    `json:"approval_status"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BulkResult reports a bulk transition. First carries the representative
// entity returned to callers, Count the real number of updated rows, and
// All the full batch for callers that need it.
type BulkResult struct {
	First Summary
	Count int
	All   []Summary
}

type ApprovalService struct {
	candidates CandidateStore
	companies  CompanyStore
	notifier   Notifier
}

func NewApprovalService(candidates CandidateStore, companies CompanyStore, notifier Notifier) *ApprovalService {
	return &ApprovalService{
		candidates: candidates,
		companies:  companies,
		notifier:   notifier,
	}
}

func (s *ApprovalService) ApproveCandidate(id string) (*Summary, error) {
	return s.transitionCandidate(id, models.ApprovalApproved, "approve")
}

func (s *ApprovalService) RejectCandidate(id string) (*Summary, error) {
	return s.transitionCandidate(id, models.ApprovalRejected, "reject")
}

func (s *ApprovalService) transitionCandidate(id, status, action string) (*Summary, error) {
	candidate, err := s.candidates.GetByID(id)
	if err != nil {
		return nil, err
	}
	if candidate.AccountRole != models.RoleCandidate {
		return nil, fmt.Errorf("account for candidate %s has role %q: %w", id, candidate.AccountRole, ErrInvalidState)
	}

	updated, err := s.candidates.UpdateApproval([]string{id}, status)
	if err != nil {
		return nil, err
	}

	c := updated[0]
	s.dispatch("candidate", c.Email, c.FullName(), action, "")

	summary := candidateSummary(c)
	return &summary, nil
}

// BulkApproveCandidates applies the approval to every id inside one
// store transaction; a single missing id rolls back the whole batch.
// Notifications go out per id after the commit and never affect it.
func (s *ApprovalService) BulkApproveCandidates(ids []string) (*BulkResult, error) {
	return s.bulkTransitionCandidates(ids, models.ApprovalApproved, "approve")
}

func (s *ApprovalService) BulkRejectCandidates(ids []string) (*BulkResult, error) {
	return s.bulkTransitionCandidates(ids, models.ApprovalRejected, "reject")
}

func (s *ApprovalService) bulkTransitionCandidates(ids []string, status, action string) (*BulkResult, error) {
	updated, err := s.candidates.UpdateApproval(ids, status)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{Count: len(updated)}
	for i, c := range updated {
		s.dispatch("candidate", c.Email, c.FullName(), action, "")
		summary := candidateSummary(c)
		if i == 0 {
			result.First = summary
		}
		result.All = append(result.All, summary)
	}
	return result, nil
}

func (s *ApprovalService) CandidateStatus(id string) (*Summary, error) {
	candidate, err := s.candidates.GetByID(id)
	if err != nil {
		return nil, err
	}
	summary := candidateSummary(*candidate)
	return &summary, nil
}

func (s *ApprovalService) ApproveCompany(id string) (*Summary, error) {
	return s.transitionCompany(id, models.ApprovalApproved, "approve", "")
}

func (s *ApprovalService) RejectCompany(id, reason string) (*Summary, error) {
	return s.transitionCompany(id, models.ApprovalRejected, "reject", reason)
}

func (s *ApprovalService) transitionCompany(id, status, action, reason string) (*Summary, error) {
	if _, err := s.companies.GetByID(id); err != nil {
		return nil, err
	}

	updated, err := s.companies.UpdateApproval([]string{id}, status)
	if err != nil {
		return nil, err
	}

	c := updated[0]
	s.dispatchCompany(c, action, reason)

	summary := companySummary(c)
	return &summary, nil
}

func (s *ApprovalService) BulkApproveCompanies(ids []string) (*BulkResult, error) {
	return s.bulkTransitionCompanies(ids, models.ApprovalApproved, "approve")
}

func (s *ApprovalService) BulkRejectCompanies(ids []string) (*BulkResult, error) {
	return s.bulkTransitionCompanies(ids, models.ApprovalRejected, "reject")
}

func (s *ApprovalService) bulkTransitionCompanies(ids []string, status, action string) (*BulkResult, error) {
	updated, err := s.companies.UpdateApproval(ids, status)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{Count: len(updated)}
	for i, c := range updated {
		s.dispatchCompany(c, action, "")
		summary := companySummary(c)
		if i == 0 {
			result.First = summary
		}
		result.All = append(result.All, summary)
	}
	return result, nil
}

func (s *ApprovalService) CompanyStatus(id string) (*Summary, error) {
	company, err := s.companies.GetByID(id)
	if err != nil {
		return nil, err
	}
	summary := companySummary(*company)
	return &summary, nil
}

// dispatch fires a notification on a detached goroutine. Delivery is
// best-effort: a failed or panicking send is logged and never reaches
// the caller, and the status write it follows is already committed.
func (s *ApprovalService) dispatch(kind, email, name, action, reason string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				utils.LogError("notification dispatch panicked", fmt.Errorf("%v", r), map[string]string{
					"kind": kind, "email": email, "action": action,
				})
			}
		}()
		if ok := s.notifier.NotifyDecision(kind, email, name, action, reason); !ok {
			utils.LogWarn("notification delivery failed", map[string]string{
				"kind": kind, "email": email, "action": action,
			})
		}
	}()
}

// dispatchCompany resolves the recipient inside the detached goroutine so
// a contact lookup failure cannot block or fail the transition either.
func (s *ApprovalService) dispatchCompany(company models.Company, action, reason string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				utils.LogError("notification dispatch panicked", fmt.Errorf("%v", r), map[string]string{
					"kind": "company", "company_id": company.ID, "action": action,
				})
			}
		}()
		contact, err := s.companies.PrimaryContact(company.ID)
		if err != nil {
			utils.LogWarn("no contact for company notification", map[string]string{
				"company_id": company.ID, "action": action,
			})
			return
		}
		if ok := s.notifier.NotifyDecision("company", contact.Email, company.Name, action, reason); !ok {
			utils.LogWarn("notification delivery failed", map[string]string{
				"kind": "company", "email": contact.Email, "action": action,
			})
		}
	}()
}

func candidateSummary(c models.Candidate) Summary {
	return Summary{
		ID:             c.ID,
		Name:           c.FullName(),
		ApprovalStatus: c.ApprovalStatus,
		UpdatedAt:      c.UpdatedAt,
	}
}

func companySummary(c models.Company) Summary {
	return Summary{
		ID:             c.ID,
		Name:           c.Name,
		ApprovalStatus: c.ApprovalStatus,
		UpdatedAt:      c.UpdatedAt,
	}
}
