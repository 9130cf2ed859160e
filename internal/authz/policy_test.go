package authz

import (
	"errors"
	"testing"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
)

func principal(role models.Role) *models.Principal {
	return &models.Principal{ID: "user-1", Role: role}
}

func TestEvaluateDecisionTable(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		op      Operation
		rel     Relationships
		allowed bool
	}{
		// Project reads
		{"lead reads own project", models.RoleResearchLead, OpReadProject, Relationships{IsLead: true}, true},
		{"member reads project", models.RoleTeamMember, OpReadProject, Relationships{IsMember: true}, true},
		{"outsider cannot read project", models.RoleTeamMember, OpReadProject, Relationships{}, false},
		{"lead of another project cannot read", models.RoleResearchLead, OpReadProject, Relationships{}, false},

		// Project writes
		{"lead writes own project", models.RoleResearchLead, OpWriteProject, Relationships{IsLead: true}, true},
		{"member cannot write project", models.RoleTeamMember, OpWriteProject, Relationships{IsMember: true}, false},
		{"lead deletes own project", models.RoleResearchLead, OpDeleteProject, Relationships{IsLead: true}, true},
		{"member cannot delete project", models.RoleTeamMember, OpDeleteProject, Relationships{IsMember: true}, false},

		// Membership
		{"lead adds team member", models.RoleResearchLead, OpAddTeamMember, Relationships{IsLead: true}, true},
		{"member cannot add team member", models.RoleTeamMember, OpAddTeamMember, Relationships{IsMember: true}, false},
		{"lead removes team member", models.RoleResearchLead, OpRemoveTeamMember, Relationships{IsLead: true}, true},
		{"non-lead lead role cannot remove", models.RoleResearchLead, OpRemoveTeamMember, Relationships{IsMember: true}, false},

		// Task reads
		{"assignee reads task", models.RoleTeamMember, OpReadTask, Relationships{IsAssignee: true}, true},
		{"member reads project task", models.RoleTeamMember, OpReadTask, Relationships{IsMember: true}, true},
		{"outsider cannot read task", models.RoleTeamMember, OpReadTask, Relationships{}, false},

		// Task writes
		{"lead full-writes task", models.RoleResearchLead, OpWriteTaskFull, Relationships{IsLead: true}, true},
		{"assignee cannot full-write task", models.RoleTeamMember, OpWriteTaskFull, Relationships{IsAssignee: true}, false},
		{"assignee limited-writes task", models.RoleTeamMember, OpWriteTaskLimited, Relationships{IsAssignee: true}, true},
		{"member cannot limited-write unassigned task", models.RoleTeamMember, OpWriteTaskLimited, Relationships{IsMember: true}, false},
		{"lead deletes task", models.RoleResearchLead, OpDeleteTask, Relationships{IsLead: true}, true},
		{"assignee cannot delete task", models.RoleTeamMember, OpDeleteTask, Relationships{IsAssignee: true}, false},

		// Comments
		{"member reads comments", models.RoleTeamMember, OpReadComment, Relationships{IsMember: true}, true},
		{"member creates comment", models.RoleTeamMember, OpCreateComment, Relationships{IsMember: true}, true},
		{"outsider cannot comment", models.RoleTeamMember, OpCreateComment, Relationships{}, false},
		{"author deletes own comment", models.RoleTeamMember, OpDeleteComment, Relationships{IsAuthor: true, IsMember: true}, true},
		{"lead deletes any comment", models.RoleResearchLead, OpDeleteComment, Relationships{IsLead: true}, true},
		{"member cannot delete another's comment", models.RoleTeamMember, OpDeleteComment, Relationships{IsMember: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(principal(tt.role), tt.op, tt.rel)
			if d.Allowed != tt.allowed {
				t.Errorf("Evaluate(%s, %s, %+v) = %v, want %v",
					tt.role, tt.op, tt.rel, d.Allowed, tt.allowed)
			}
			if !d.Allowed && d.Reason == "" {
				t.Error("deny decision carries no reason code")
			}
		})
	}
}

// Admins must be allowed every operation regardless of relationships, so the
// admin decision set is a superset of every other role's.
func TestEvaluateAdminSuperset(t *testing.T) {
	admin := principal(models.RoleAdmin)
	for op := range validOperations {
		if d := Evaluate(admin, op, Relationships{}); !d.Allowed {
			t.Errorf("admin denied %s with no relationships", op)
		}
	}
}

// A lead relationship on a team_member principal must not grant lead powers:
// the role gates the relationship.
func TestEvaluateLeadRelationshipRequiresLeadRole(t *testing.T) {
	member := principal(models.RoleTeamMember)
	rel := Relationships{IsLead: true}

	for _, op := range []Operation{OpWriteProject, OpDeleteProject, OpAddTeamMember, OpWriteTaskFull} {
		if d := Evaluate(member, op, rel); d.Allowed {
			t.Errorf("team_member with IsLead allowed %s", op)
		}
	}
}

// Holding any single qualifying relationship is sufficient; extra denials do
// not subtract.
func TestEvaluateMostPermissiveWins(t *testing.T) {
	lead := principal(models.RoleResearchLead)
	rel := Relationships{IsLead: true, IsMember: false, IsAssignee: false, IsAuthor: false}

	if d := Evaluate(lead, OpDeleteComment, rel); !d.Allowed {
		t.Error("lead denied comment delete despite qualifying lead relationship")
	}

	member := principal(models.RoleTeamMember)
	if d := Evaluate(member, OpReadTask, Relationships{IsAssignee: true}); !d.Allowed {
		t.Error("assignee denied task read despite qualifying assignee relationship")
	}
}

func TestEvaluateFailsClosed(t *testing.T) {
	if d := Evaluate(nil, OpReadProject, Relationships{IsLead: true}); d.Allowed {
		t.Error("nil principal allowed")
	}

	unknown := &models.Principal{ID: "u", Role: "superuser"}
	if d := Evaluate(unknown, OpReadProject, Relationships{IsLead: true, IsMember: true}); d.Allowed {
		t.Error("unknown role allowed")
	}

	if d := Evaluate(principal(models.RoleAdmin), Operation("project:explode"), Relationships{}); d.Allowed {
		t.Error("unknown operation allowed, even for admin")
	}
}

func TestCheckReturnsTaxonomyError(t *testing.T) {
	err := Check(principal(models.RoleTeamMember), OpWriteProject, Relationships{IsMember: true})
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("Check denial = %v, want ErrNotAuthorized", err)
	}

	if err := Check(principal(models.RoleAdmin), OpWriteProject, Relationships{}); err != nil {
		t.Fatalf("Check allow = %v, want nil", err)
	}
}

func TestDecisionErr(t *testing.T) {
	if err := (Decision{Allowed: true}).Err(); err != nil {
		t.Errorf("allow Err() = %v", err)
	}
	if err := (Decision{}).Err(); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("deny Err() = %v, want ErrNotAuthorized", err)
	}
}
