package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"hirebridge/models"
	"hirebridge/services"
	"hirebridge/utils"
)

type candidateTransitionRequest struct {
	CandidateID  string   `json:"candidateId"`
	CandidateIDs []string `json:"candidateIds"`
}

type companyTransitionRequest struct {
	CompanyID  string   `json:"companyId"`
	CompanyIDs []string `json:"companyIds"`
	Reason     string   `json:"reason"`
}

// CandidateApproval handles POST /api/admin/candidates/approval.
// The action query param selects approve, reject, bulk-approve or
// bulk-reject; absent or unknown values mean approve.
func CandidateApproval(svc *services.ApprovalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req candidateTransitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ValidationError(c, []utils.ValidationIssue{{
				Code:    "invalid_json",
				Message: "request body must be valid JSON",
				Path:    "body",
			}})
			return
		}

		cmd, issues := ParseTransitionCommand(c.Query("action"), req.CandidateID, req.CandidateIDs, "candidateId", "candidateIds", "")
		if issues != nil {
			utils.ValidationError(c, issues)
			return
		}

		if cmd.Kind == KindBulk {
			var result *services.BulkResult
			var err error
			if cmd.Action == ActionApprove {
				result, err = svc.BulkApproveCandidates(cmd.IDs)
			} else {
				result, err = svc.BulkRejectCandidates(cmd.IDs)
			}
			if err != nil {
				respondWorkflowError(c, err)
				return
			}
			c.JSON(200, gin.H{
				"message":   fmt.Sprintf("%d candidates %s", result.Count, pastTense(cmd.Action)),
				"candidate": result.First,
			})
			return
		}

		var summary *services.Summary
		var err error
		if cmd.Action == ActionApprove {
			summary, err = svc.ApproveCandidate(cmd.IDs[0])
		} else {
			summary, err = svc.RejectCandidate(cmd.IDs[0])
		}
		if err != nil {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(200, gin.H{
			"message":   fmt.Sprintf("Candidate %s successfully", pastTense(cmd.Action)),
			"candidate": summary,
		})
	}
}

// CandidateApprovalStatus handles GET /api/admin/candidates/approval?candidateId=...
func CandidateApprovalStatus(svc *services.ApprovalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("candidateId")
		if issues := ValidateQueryID(id, "candidateId"); issues != nil {
			utils.ValidationError(c, issues)
			return
		}

		summary, err := svc.CandidateStatus(id)
		if err != nil {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(200, gin.H{
			"message":   "Candidate status retrieved",
			"candidate": summary,
		})
	}
}

// CompanyApproval handles POST /api/admin/companies/approval.
func CompanyApproval(svc *services.ApprovalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req companyTransitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ValidationError(c, []utils.ValidationIssue{{
				Code:    "invalid_json",
				Message: "request body must be valid JSON",
				Path:    "body",
			}})
			return
		}

		cmd, issues := ParseTransitionCommand(c.Query("action"), req.CompanyID, req.CompanyIDs, "companyId", "companyIds", req.Reason)
		if issues != nil {
			utils.ValidationError(c, issues)
			return
		}

		if cmd.Kind == KindBulk {
			var result *services.BulkResult
			var err error
			if cmd.Action == ActionApprove {
				result, err = svc.BulkApproveCompanies(cmd.IDs)
			} else {
				result, err = svc.BulkRejectCompanies(cmd.IDs)
			}
			if err != nil {
				respondWorkflowError(c, err)
				return
			}
			c.JSON(200, gin.H{
				"message": fmt.Sprintf("%d companies %s", result.Count, pastTense(cmd.Action)),
				"company": result.First,
			})
			return
		}

		var summary *services.Summary
		var err error
		if cmd.Action == ActionApprove {
			summary, err = svc.ApproveCompany(cmd.IDs[0])
		} else {
			summary, err = svc.RejectCompany(cmd.IDs[0], cmd.Reason)
		}
		if err != nil {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(200, gin.H{
			"message": fmt.Sprintf("Company %s successfully", pastTense(cmd.Action)),
			"company": summary,
		})
	}
}

// CompanyApprovalStatus handles GET /api/admin/companies/approval?companyId=...
func CompanyApprovalStatus(svc *services.ApprovalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("companyId")
		if issues := ValidateQueryID(id, "companyId"); issues != nil {
			utils.ValidationError(c, issues)
			return
		}

		summary, err := svc.CompanyStatus(id)
		if err != nil {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(200, gin.H{
			"message": "Company status retrieved",
			"company": summary,
		})
	}
}

func pastTense(action string) string {
	if action == ActionReject {
		return "rejected"
	}
	return "approved"
}

// respondWorkflowError maps workflow errors onto the API error taxonomy.
// Internal detail stays in the server log.
func respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.NotFoundError(c, "Entity not found")
	case errors.Is(err, services.ErrInvalidState):
		utils.InvalidStateError(c, "Entity is not in a valid state for this action")
	default:
		log.Printf("Approval workflow error: %v", err)
		utils.InternalServerError(c, "Internal server error")
	}
}
