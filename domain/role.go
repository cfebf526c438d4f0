package domain

// Role is a membership privilege level within an organization.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// roleRank defines the total order admin > manager > member. Keeping the
// precedence in one table avoids nested role comparisons at call sites.
var roleRank = map[Role]int{
	RoleMember:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Valid reports whether the role is one of the known levels.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

// IsSupervisor reports whether the role may manage members and tasks.
func (r Role) IsSupervisor() bool {
	return r.AtLeast(RoleManager)
}

// EffectiveRole folds a user's active memberships in one organization into a
// single privilege level, taking the highest-ranked role. The second return
// value is false when no active membership exists; callers must treat that as
// "not authorized", which is distinct from holding the member role.
func EffectiveRole(memberships []Membership) (Role, bool) {
	var (
		best  Role
		found bool
	)
	for _, m := range memberships {
		if !m.IsActive {
			continue
		}
		if !found || m.Role.AtLeast(best) {
			best = m.Role
			found = true
		}
	}
	return best, found
}
