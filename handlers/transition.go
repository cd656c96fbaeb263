package handlers

import (
	"fmt"

	"github.com/google/uuid"

	"hirebridge/utils"
)

// Actions accepted on the approval endpoints via the ?action query param.
const (
	ActionApprove     = "approve"
	ActionReject      = "reject"
	ActionBulkApprove = "bulk-approve"
	ActionBulkReject  = "bulk-reject"
)

// Command kinds produced by ParseTransitionCommand.
const (
	KindSingle = "single"
	KindBulk   = "bulk"
)

// TransitionCommand is the typed form of an approval request. Handlers
// never act on raw payload fields, only on a parsed command.
type TransitionCommand struct {
	Kind   string
	Action string
	IDs    []string
	Reason string
}

// ParseTransitionCommand turns the action selector and the id fields of a
// request into a command, or a list of per-field issues. An absent or
// unrecognized action selects the single default-approve behavior, which
// the source platform has always exposed.
func ParseTransitionCommand(action, id string, ids []string, idField, idsField, reason string) (*TransitionCommand, []utils.ValidationIssue) {
	cmd := &TransitionCommand{Reason: reason}

	switch action {
	case ActionBulkApprove:
		cmd.Kind = KindBulk
		cmd.Action = ActionApprove
	case ActionBulkReject:
		cmd.Kind = KindBulk
		cmd.Action = ActionReject
	case ActionReject:
		cmd.Kind = KindSingle
		cmd.Action = ActionReject
	default:
		cmd.Kind = KindSingle
		cmd.Action = ActionApprove
	}

	var issues []utils.ValidationIssue
	if cmd.Kind == KindBulk {
		if len(ids) == 0 {
			issues = append(issues, utils.ValidationIssue{
				Code:    "too_small",
				Message: "at least one id is required",
				Path:    idsField,
			})
			return nil, issues
		}
		for i, candidate := range ids {
			if _, err := uuid.Parse(candidate); err != nil {
				issues = append(issues, utils.ValidationIssue{
					Code:    "invalid_uuid",
					Message: "must be a valid UUID",
					Path:    fmt.Sprintf("%s[%d]", idsField, i),
				})
			}
		}
		if len(issues) > 0 {
			return nil, issues
		}
		cmd.IDs = ids
		return cmd, nil
	}

	if id == "" {
		issues = append(issues, utils.ValidationIssue{
			Code:    "required",
			Message: "is required",
			Path:    idField,
		})
		return nil, issues
	}
	if _, err := uuid.Parse(id); err != nil {
		issues = append(issues, utils.ValidationIssue{
			Code:    "invalid_uuid",
			Message: "must be a valid UUID",
			Path:    idField,
		})
		return nil, issues
	}
	cmd.IDs = []string{id}
	return cmd, nil
}

// ValidateQueryID checks a single id supplied on a GET status request.
func ValidateQueryID(id, field string) []utils.ValidationIssue {
	if id == "" {
		return []utils.ValidationIssue{{
			Code:    "required",
			Message: "is required",
			Path:    field,
		}}
	}
	if _, err := uuid.Parse(id); err != nil {
		return []utils.ValidationIssue{{
			Code:    "invalid_uuid",
			Message: "must be a valid UUID",
			Path:    field,
		}}
	}
	return nil
}
