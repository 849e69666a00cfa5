package middleware

import "context"

// Context key type to avoid collisions
type contextKey string

const (
	// IdentityKey is the context key for the authenticated identity
	IdentityKey contextKey = "identity"
)

// Identity is the principal attached to a request after successful
// validation. GrantedRole is empty on routes without a role rule.
type Identity struct {
	SubjectID   string `json:"subject_id"`
	GrantedRole string `json:"granted_role,omitempty"`
}

// WithIdentity adds the authenticated identity to the context
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentityFromContext retrieves the authenticated identity from context.
// Returns nil for anonymous requests.
func GetIdentityFromContext(ctx context.Context) *Identity {
	if val := ctx.Value(IdentityKey); val != nil {
		if identity, ok := val.(*Identity); ok {
			return identity
		}
	}
	return nil
}
