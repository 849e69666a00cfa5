package authz

import "sort"

// RoleSet is the set of role identifiers a subject currently holds.
// Membership is exact string match; no hierarchy or wildcard semantics.
type RoleSet map[string]struct{}

// NewRoleSet builds a RoleSet from role strings, ignoring blanks
func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		if role == "" {
			continue
		}
		set[role] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the given role
func (s RoleSet) Has(role string) bool {
	_, ok := s[role]
	return ok
}

// Len returns the number of distinct roles in the set
func (s RoleSet) Len() int {
	return len(s)
}

// Values returns the roles in sorted order, for stable logs and responses
func (s RoleSet) Values() []string {
	out := make([]string, 0, len(s))
	for role := range s {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}
