package models

// Role is the fixed set of roles the policy reasons over.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleResearchLead Role = "research_lead"
	RoleTeamMember   Role = "team_member"
)

// Valid reports whether the role is one of the known roles.
// Unknown roles must be rejected at resolution time so the policy
// never sees a role outside the fixed set (fail-closed).
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleResearchLead, RoleTeamMember:
		return true
	default:
		return false
	}
}

// Principal is the resolved identity making a request. It is constructed
// per-request by the identity resolver and never persisted.
//
// Trusted marks principals built directly from pre-trusted token claims
// (demo identities). Their role and department have no persisted-record
// freshness guarantee; policy code must not assume store-verified state
// for them.
type Principal struct {
	ID         string `json:"id"`
	Role       Role   `json:"role"`
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
	Trusted    bool   `json:"-"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
