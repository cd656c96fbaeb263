package models

import "errors"

// Approval workflow states shared by candidates and companies.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Account statuses on the linked users row.
const (
	AccountActive              = "active"
	AccountPendingVerification = "pending_verification"
)

// Account roles.
const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
	RoleMIS       = "mis"
)

// ErrNotFound is returned when an id does not resolve to a row.
var ErrNotFound = errors.New("not found")

// AccountStatusFor maps an approval decision onto the linked account status.
func AccountStatusFor(approvalStatus string) string {
	if approvalStatus == ApprovalApproved {
		return AccountActive
	}
	return AccountPendingVerification
}
