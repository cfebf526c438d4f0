package domain

import "time"

// Organization is the tenant boundary; memberships, projects and tasks are
// scoped to exactly one organization.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Membership relates a user to an organization with a role. A user holds at
// most one membership per organization.
type Membership struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Membership) IsActiveAdmin() bool {
	return m != nil && m.IsActive && m.Role == RoleAdmin
}
