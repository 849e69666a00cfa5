package authz

import (
	"fmt"
	"strings"
)

// Verdict is the outcome of evaluating a role requirement against the
// roles a subject holds.
type Verdict struct {
	// Authorized reports whether the requirement is satisfied.
	Authorized bool

	// MatchedRoles lists the roles that satisfied the requirement, in the
	// requirement's declaration order. Empty when denied or when the
	// requirement carries no role rule.
	MatchedRoles []string

	// UserRoles is the role set the decision was made against.
	UserRoles RoleSet

	// Reason says why authorization was denied. Empty when authorized.
	Reason string
}

// GrantedRole flattens the matched roles into the single string attached
// to the request identity.
func (v Verdict) GrantedRole() string {
	return strings.Join(v.MatchedRoles, ",")
}

// Authorize evaluates a requirement against the subject's current roles.
// The decision is pure: same inputs, same verdict, no I/O.
func Authorize(userRoles RoleSet, req Requirement) Verdict {
	switch req.kind {
	case KindSingleRole:
		return authorizeSingle(userRoles, req.roles)
	case KindAnyRole:
		return authorizeAny(userRoles, req.roles)
	case KindAllRoles:
		return authorizeAll(userRoles, req.roles)
	default:
		// KindNone and KindTokenOnly carry no role rule.
		return Verdict{Authorized: true, MatchedRoles: []string{}, UserRoles: userRoles}
	}
}

func authorizeSingle(userRoles RoleSet, roles []string) Verdict {
	role := ""
	if len(roles) > 0 {
		role = roles[0]
	}
	if role != "" && userRoles.Has(role) {
		return Verdict{Authorized: true, MatchedRoles: []string{role}, UserRoles: userRoles}
	}
	return denied(fmt.Sprintf("no required role present: %s", role), userRoles)
}

func authorizeAny(userRoles RoleSet, roles []string) Verdict {
	// First held candidate in declaration order wins.
	for _, role := range roles {
		if userRoles.Has(role) {
			return Verdict{Authorized: true, MatchedRoles: []string{role}, UserRoles: userRoles}
		}
	}
	return denied(
		fmt.Sprintf("no required role present: one of %s required", strings.Join(roles, ", ")),
		userRoles,
	)
}

func authorizeAll(userRoles RoleSet, roles []string) Verdict {
	missing := make([]string, 0, len(roles))
	for _, role := range roles {
		if !userRoles.Has(role) {
			missing = append(missing, role)
		}
	}
	if len(missing) > 0 {
		return denied(
			fmt.Sprintf("missing required roles: %s", strings.Join(missing, ", ")),
			userRoles,
		)
	}
	matched := make([]string, len(roles))
	copy(matched, roles)
	return Verdict{Authorized: true, MatchedRoles: matched, UserRoles: userRoles}
}

func denied(reason string, userRoles RoleSet) Verdict {
	return Verdict{MatchedRoles: []string{}, UserRoles: userRoles, Reason: reason}
}
