package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisionTemplate_CandidateApprove(t *testing.T) {
	template := decisionTemplate("candidate", "Ada Lovelace", "approve", "")

	assert.Contains(t, template.Subject, "approved")
	assert.Contains(t, template.Body, "Ada Lovelace")
	assert.Contains(t, template.Body, "visible to employers")
}

func TestDecisionTemplate_CompanyRejectWithReason(t *testing.T) {
	template := decisionTemplate("company", "Initech", "reject", "unverifiable business registration")

	assert.Contains(t, template.Subject, "Initech")
	assert.Contains(t, template.Body, "Reason: unverifiable business registration")
}

func TestDecisionTemplate_CompanyRejectWithoutReason(t *testing.T) {
	template := decisionTemplate("company", "Initech", "reject", "")

	assert.NotContains(t, template.Body, "Reason:")
	assert.Contains(t, template.Body, "request another review")
}

func TestNotifyDecision_NoRecipient(t *testing.T) {
	svc := NewEmailNotificationService()

	assert.False(t, svc.NotifyDecision("candidate", "", "Ada Lovelace", "approve", ""))
}

func TestNotifyDecision_LogOnlyDeliverySucceeds(t *testing.T) {
	// Without AWS env vars the service runs in log-only mode and reports
	// the message as delivered.
	svc := NewEmailNotificationService()
	if svc.sesClient != nil {
		t.Skip("AWS configured in environment")
	}

	assert.True(t, svc.NotifyDecision("candidate", "ada@example.com", "Ada Lovelace", "approve", ""))
}
