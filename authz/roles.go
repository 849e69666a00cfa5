package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/upb/authgate/identity"
)

// MembershipLister is the slice of the identity provider used for role
// lookups.
type MembershipLister interface {
	ListRoleMemberships(ctx context.Context, subjectID string) ([]identity.RoleMembership, error)
}

// RoleResolver fetches the roles a subject holds at decision time. Every
// lookup is fresh; revocations on the provider side take effect on the
// next request.
type RoleResolver struct {
	lister MembershipLister
}

// NewRoleResolver creates a resolver backed by the given lister
func NewRoleResolver(lister MembershipLister) *RoleResolver {
	return &RoleResolver{lister: lister}
}

// RolesFor returns the subject's current role set. An unconfigured
// provider yields an empty set with no error; other failures are returned
// for the caller to classify.
func (r *RoleResolver) RolesFor(ctx context.Context, subjectID string) (RoleSet, error) {
	memberships, err := r.lister.ListRoleMemberships(ctx, subjectID)
	if err != nil {
		if errors.Is(err, identity.ErrNotConfigured) {
			return NewRoleSet(), nil
		}
		return nil, fmt.Errorf("list role memberships: %w", err)
	}

	roles := make([]string, 0, len(memberships))
	for _, m := range memberships {
		roles = append(roles, m.Role)
	}
	return NewRoleSet(roles...), nil
}
