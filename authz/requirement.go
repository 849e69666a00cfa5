// Package authz holds the access control core: route requirements, role
// sets, the pure authorization decision, and credential validation against
// the identity provider.
package authz

import (
	"fmt"
	"strings"
)

// OpaqueTokenPrefix marks credentials that must be verified against the
// identity provider. Anything without the prefix is treated as a
// self-contained bearer token.
const OpaqueTokenPrefix = "oat_"

// Kind identifies which access rule a route declares.
type Kind int

const (
	// KindNone declares no requirement. Anonymous requests pass through;
	// a credential, when present, is still validated.
	KindNone Kind = iota

	// KindTokenOnly requires a valid credential but no particular role.
	KindTokenOnly

	// KindSingleRole requires one specific role.
	KindSingleRole

	// KindAnyRole requires at least one role from a candidate list.
	KindAnyRole

	// KindAllRoles requires every role from a list.
	KindAllRoles
)

// String returns the kind name used in logs
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTokenOnly:
		return "token-only"
	case KindSingleRole:
		return "single-role"
	case KindAnyRole:
		return "any-role"
	case KindAllRoles:
		return "all-roles"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Requirement describes the access rule bound to a route at registration
// time. The zero value means no requirement.
type Requirement struct {
	kind  Kind
	roles []string
}

// NoRequirement declares a route open to anonymous requests
func NoRequirement() Requirement {
	return Requirement{kind: KindNone}
}

// TokenOnly declares a route that needs a valid credential, any role
func TokenOnly() Requirement {
	return Requirement{kind: KindTokenOnly}
}

// SingleRole declares a route that needs one specific role
func SingleRole(role string) Requirement {
	return Requirement{kind: KindSingleRole, roles: sanitizeRoles([]string{role})}
}

// AnyRole declares a route that needs at least one of the given roles.
// Candidate order is preserved; the first held role wins the match.
func AnyRole(roles ...string) Requirement {
	return Requirement{kind: KindAnyRole, roles: sanitizeRoles(roles)}
}

// AllRoles declares a route that needs every one of the given roles
func AllRoles(roles ...string) Requirement {
	return Requirement{kind: KindAllRoles, roles: sanitizeRoles(roles)}
}

// Kind returns the declared rule kind
func (r Requirement) Kind() Kind {
	return r.kind
}

// Roles returns a copy of the declared role list in declaration order
func (r Requirement) Roles() []string {
	out := make([]string, len(r.roles))
	copy(out, r.roles)
	return out
}

// RequiresToken reports whether a missing credential must be rejected
func (r Requirement) RequiresToken() bool {
	return r.kind != KindNone
}

// HasRoleRule reports whether a role check runs after credential validation
func (r Requirement) HasRoleRule() bool {
	switch r.kind {
	case KindSingleRole, KindAnyRole, KindAllRoles:
		return true
	default:
		return false
	}
}

// String renders the requirement for log fields
func (r Requirement) String() string {
	if len(r.roles) == 0 {
		return r.kind.String()
	}
	return fmt.Sprintf("%s(%s)", r.kind, strings.Join(r.roles, ", "))
}

// sanitizeRoles trims whitespace, drops blanks, and removes duplicates
// while preserving first-occurrence order.
func sanitizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	seen := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	return out
}
