package authz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/upb/authgate/identity"
)

var (
	// ErrVerifierNotConfigured means no identity provider key is
	// provisioned, so opaque tokens cannot be verified at all.
	ErrVerifierNotConfigured = errors.New("token validation not configured")

	// ErrEmptyCredential means the caller passed an empty credential.
	// Extraction from the Authorization header happens before validation.
	ErrEmptyCredential = errors.New("empty credential")
)

// PlaceholderSubject identifies principals carrying self-contained bearer
// tokens, which skip remote verification entirely.
const PlaceholderSubject = "external"

// VerificationOutcome reports whether one credential is currently valid.
// SubjectID is only meaningful when Valid is true.
type VerificationOutcome struct {
	Valid     bool
	SubjectID string
}

// TokenVerifier is the slice of the identity provider the validator uses.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*identity.TokenState, error)
}

// CredentialValidator turns a bearer credential into a verification
// outcome. Opaque tokens (OpaqueTokenPrefix) are checked against the
// identity provider; everything else is treated as a self-contained token.
type CredentialValidator struct {
	verifier TokenVerifier
}

// NewCredentialValidator creates a validator backed by the given verifier
func NewCredentialValidator(verifier TokenVerifier) *CredentialValidator {
	return &CredentialValidator{verifier: verifier}
}

// Validate checks one credential. Remote failures of any kind come back as
// an invalid outcome plus a classifiable error; the caller decides how to
// respond. Context cancellation is passed through untouched.
func (v *CredentialValidator) Validate(ctx context.Context, credential string) (VerificationOutcome, error) {
	if credential == "" {
		return VerificationOutcome{}, ErrEmptyCredential
	}
	if err := ctx.Err(); err != nil {
		return VerificationOutcome{}, err
	}

	if !strings.HasPrefix(credential, OpaqueTokenPrefix) {
		// Self-contained tokens are accepted without remote verification
		// and carry no real subject.
		// TODO: verify signature and expiry once the provider exposes a
		// JWKS endpoint for session tokens.
		return VerificationOutcome{Valid: true, SubjectID: PlaceholderSubject}, nil
	}

	state, err := v.verifier.VerifyToken(ctx, credential)
	if err != nil {
		if errors.Is(err, identity.ErrNotConfigured) {
			return VerificationOutcome{}, ErrVerifierNotConfigured
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return VerificationOutcome{}, err
		}
		return VerificationOutcome{}, fmt.Errorf("verify token: %w", err)
	}

	if state.Revoked || state.Expired {
		return VerificationOutcome{}, nil
	}

	return VerificationOutcome{Valid: true, SubjectID: state.Subject}, nil
}
