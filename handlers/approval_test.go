package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hirebridge/models"
	"hirebridge/services"
)

type stubCandidateStore struct {
	mu          sync.Mutex
	candidates  map[string]*models.Candidate
	getCalls    int
	updateCalls int
}

func (s *stubCandidateStore) GetByID(id string) (*models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	c, ok := s.candidates[id]
	if !ok {
		return nil, fmt.Errorf("candidate %s: %w", id, models.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (s *stubCandidateStore) UpdateApproval(ids []string, status string) ([]models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	updated := []models.Candidate{}
	for _, id := range ids {
		c, ok := s.candidates[id]
		if !ok {
			return nil, fmt.Errorf("candidate %s: %w", id, models.ErrNotFound)
		}
		c.ApprovalStatus = status
		c.AccountStatus = models.AccountStatusFor(status)
		c.UpdatedAt = time.Now()
		updated = append(updated, *c)
	}
	return updated, nil
}

type stubCompanyStore struct {
	mu          sync.Mutex
	companies   map[string]*models.Company
	updateCalls int
}

func (s *stubCompanyStore) GetByID(id string) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[id]
	if !ok {
		return nil, fmt.Errorf("company %s: %w", id, models.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (s *stubCompanyStore) UpdateApproval(ids []string, status string) ([]models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	now := time.Now()
	updated := []models.Company{}
	for _, id := range ids {
		c, ok := s.companies[id]
		if !ok {
			return nil, fmt.Errorf("company %s: %w", id, models.ErrNotFound)
		}
		c.ApprovalStatus = status
		c.UpdatedAt = now
		if status == models.ApprovalApproved {
			verifiedAt := now
			c.VerifiedAt = &verifiedAt
			c.NotificationDismissed = false
		} else {
			c.VerifiedAt = nil
			c.NotificationDismissed = true
		}
		updated = append(updated, *c)
	}
	return updated, nil
}

func (s *stubCompanyStore) PrimaryContact(companyID string) (*models.CompanyContact, error) {
	return &models.CompanyContact{Email: "owner@corp.example", IsPrimary: true}, nil
}

type noopNotifier struct{}

func (noopNotifier) NotifyDecision(kind, email, name, action, reason string) bool { return true }

const (
	candidateID = "0b8f6c1e-4f53-4d8f-8f66-3c2b3f9d3a10"
	companyID   = "b0a5e7ce-91cf-4f32-91ef-6a9a6c31d9a4"
	missingID   = "6f1c5af1-25a9-4c9f-9c5e-0f53a36a86a1"
)

func setupApprovalRouter() (*gin.Engine, *stubCandidateStore, *stubCompanyStore) {
	gin.SetMode(gin.TestMode)

	candidates := &stubCandidateStore{candidates: map[string]*models.Candidate{
		candidateID: {
			ID:             candidateID,
			UserID:         "u1",
			FirstName:      "Grace",
			LastName:       "Hopper",
			ApprovalStatus: models.ApprovalPending,
			Email:          "grace@example.com",
			AccountRole:    models.RoleCandidate,
			AccountStatus:  models.AccountPendingVerification,
		},
	}}
	companies := &stubCompanyStore{companies: map[string]*models.Company{
		companyID: {
			ID:             companyID,
			Name:           "Initech",
			ApprovalStatus: models.ApprovalPending,
		},
	}}

	svc := services.NewApprovalService(candidates, companies, noopNotifier{})

	r := gin.New()
	r.POST("/api/admin/candidates/approval", CandidateApproval(svc))
	r.GET("/api/admin/candidates/approval", CandidateApprovalStatus(svc))
	r.POST("/api/admin/companies/approval", CompanyApproval(svc))
	r.GET("/api/admin/companies/approval", CompanyApprovalStatus(svc))
	return r, candidates, companies
}

func postJSON(r *gin.Engine, url string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCandidateApproval_DefaultActionIsApprove(t *testing.T) {
	router, candidates, _ := setupApprovalRouter()

	w := postJSON(router, "/api/admin/candidates/approval", map[string]interface{}{
		"candidateId": candidateID,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Candidate approved successfully")
	assert.Equal(t, models.ApprovalApproved, candidates.candidates[candidateID].ApprovalStatus)
}

func TestCandidateApproval_UnknownActionFallsBackToApprove(t *testing.T) {
	router, candidates, _ := setupApprovalRouter()

	w := postJSON(router, "/api/admin/candidates/approval?action=promote", map[string]interface{}{
		"candidateId": candidateID,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Candidate approved successfully")
	assert.Equal(t, models.ApprovalApproved, candidates.candidates[candidateID].ApprovalStatus)
}

func TestCandidateApproval_Reject(t *testing.T) {
	router, candidates, _ := setupApprovalRouter()

	w := postJSON(router, "/api/admin/candidates/approval?action=reject", map[string]interface{}{
		"candidateId": candidateID,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Candidate rejected successfully")
	assert.Equal(t, models.ApprovalRejected, candidates.candidates[candidateID].ApprovalStatus)
	assert.Equal(t, models.AccountPendingVerification, candidates.candidates[candidateID].AccountStatus)
}

func TestCandidateApproval_MalformedIDPerformsNoWrite(t *testing.T) {
	router, candidates, _ := setupApprovalRouter()

	w := postJSON(router, "/api/admin/candidates/approval", map[string]interface{}{
		"candidateId": "not-a-uuid",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, w.Body.String(), "candidateId")
	assert.Contains(t, w.Body.String(), "invalid_uuid")
	assert.Equal(t, 0, candidates.getCalls)
	assert.Equal(t, 0, candidates.updateCalls)
}

func TestCandidateApproval_EmptyBulkList(t *testing.T) {
	router, candidates, _ := setupApprovalRouter()

	w := postJSON(router, "/api/admin/candidates/approval?action=bulk-approve", map[string]interface{}{
		"candidateIds": []string{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "candidateIds")
	assert.Contains(t, w.Body.String(), "too_small")
	assert.Equal(t, 0, candidates.updateCalls)
}

func TestCandidateApproval_BulkMalformedIDListsEveryOffender(t *testing.T) {
	router, _, _ := setupApprovalRouter()

	w := postJSON(router, "/api/admin/candidates/approval?action=bulk-approve", map[string]interface{}{
		"candidateIds": []string{candidateID, "bogus", "also-bogus"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "candidateIds[1]")
	assert.Contains(t, w.Body.String(), "candidateIds[2]")
}

func TestCandidateApproval_BulkReportsCountAndRepresentative(t *testing.T) {
	router, candidates, _ := setupApprovalRouter()
	second := "7f1d0c3a-02ab-4f7e-9a40-5a2e9d3b5c11"
	candidates.candidates[second] = &models.Candidate{
		ID: second, UserID: "u2", FirstName: "Alan", LastName: "Turing",
		ApprovalStatus: models.ApprovalPending, Email: "alan@example.com",
		AccountRole: models.RoleCandidate, AccountStatus: models.AccountPendingVerification,
	}

	w := postJSON(router, "/api/admin/candidates/approval?action=bulk-approve", map[string]interface{}{
		"candidateIds": []string{candidateID, second},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2 candidates approved")

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	representative, ok := body["candidate"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, candidateID, representative["id"])
}

func TestCandidateApproval_NotFound(t *testing.T) {
	router, _, _ := setupApprovalRouter()

	w := postJSON(router, "/api/admin/candidates/approval", map[string]interface{}{
		"candidateId": missingID,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestCandidateApprovalStatus_ReadOnly(t *testing.T) {
	router, candidates, _ := setupApprovalRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/admin/candidates/approval?candidateId="+candidateID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pending")
	assert.Equal(t, 0, candidates.updateCalls)
}

func TestCandidateApprovalStatus_MissingID(t *testing.T) {
	router, _, _ := setupApprovalRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/admin/candidates/approval", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "candidateId")
	assert.Contains(t, w.Body.String(), "required")
}

func TestCompanyApproval_ApproveAndReject(t *testing.T) {
	router, _, companies := setupApprovalRouter()

	w := postJSON(router, "/api/admin/companies/approval", map[string]interface{}{
		"companyId": companyID,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Company approved successfully")
	assert.NotNil(t, companies.companies[companyID].VerifiedAt)
	assert.False(t, companies.companies[companyID].NotificationDismissed)

	w = postJSON(router, "/api/admin/companies/approval?action=reject", map[string]interface{}{
		"companyId": companyID,
		"reason":    "unverifiable business registration",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Company rejected successfully")
	assert.Nil(t, companies.companies[companyID].VerifiedAt)
	assert.True(t, companies.companies[companyID].NotificationDismissed)
}

func TestCompanyApprovalStatus_NotFound(t *testing.T) {
	router, _, _ := setupApprovalRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/admin/companies/approval?companyId="+missingID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
