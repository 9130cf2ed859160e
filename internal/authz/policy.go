package authz

import (
	"fmt"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
)

// Relationships is the precomputed tuple of a principal's relationships to
// one target resource. It is the sole input, besides the role, that the
// policy reasons over.
type Relationships struct {
	IsLead     bool // principal is the research lead of the (task's/comment's) project
	IsMember   bool // principal is in the project's team member set
	IsAssignee bool // principal is the task's assignee
	IsAuthor   bool // principal authored the comment
}

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Allowed bool
	Reason  string // machine-readable reason code, empty when allowed
}

// Err converts a deny decision into a taxonomy error, nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return domain.ErrNotAuthorized
}

// Evaluate is the single decision point for every permission check in the
// system. It is a pure function of (principal, operation, relationships):
// no store access, no side effects, safely re-entrant.
//
// Admins are allowed every operation. For the other roles each operation
// maps to the set of qualifying relationships; if the principal holds any
// qualifying relationship the operation is allowed (most-permissive-wins).
// Unknown roles and unknown operations are denied.
func Evaluate(principal *models.Principal, op Operation, rel Relationships) Decision {
	if principal == nil || !principal.Role.Valid() {
		return deny()
	}
	if !ValidOperation(op) {
		return deny()
	}
	if principal.Role == models.RoleAdmin {
		return allow()
	}

	isLead := principal.Role == models.RoleResearchLead && rel.IsLead

	switch op {
	case OpReadProject:
		return decide(isLead || rel.IsMember)

	case OpWriteProject, OpDeleteProject, OpAddTeamMember, OpRemoveTeamMember:
		return decide(isLead)

	case OpReadTask:
		return decide(isLead || rel.IsMember || rel.IsAssignee)

	case OpWriteTaskFull, OpDeleteTask:
		return decide(isLead)

	case OpWriteTaskLimited:
		// The least-privilege boundary: an assignee may report progress on
		// their own work without being able to reassign, retitle, or
		// redeadline it. Leads qualify through WriteTaskFull as well.
		return decide(isLead || rel.IsAssignee)

	case OpReadComment, OpCreateComment:
		return decide(isLead || rel.IsMember)

	case OpDeleteComment:
		return decide(isLead || rel.IsAuthor)
	}

	return deny()
}

// Check is a convenience wrapper that evaluates and returns the taxonomy
// error directly, annotated with the operation.
func Check(principal *models.Principal, op Operation, rel Relationships) error {
	if d := Evaluate(principal, op, rel); !d.Allowed {
		return fmt.Errorf("%s: %w", op, domain.ErrNotAuthorized)
	}
	return nil
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny() Decision {
	return Decision{Allowed: false, Reason: domain.ReasonNotAuthorized}
}

func decide(allowed bool) Decision {
	if allowed {
		return allow()
	}
	return deny()
}
