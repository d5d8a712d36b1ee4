package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"playroom/contract"
	"playroom/domain"
)

// ErrMissingToken is returned when no token was supplied, or only
// whitespace. The identity provider is never contacted in that case, so the
// common "no token" path fails fast and locally.
var ErrMissingToken = fmt.Errorf("missing auth token")

// RejectedError reports a provider-side rejection. The provider's message is
// passed through verbatim.
type RejectedError struct {
	Reason string
}

func (e RejectedError) Error() string { return "token rejected: " + e.Reason }

// Authenticator validates bearer tokens through an injected identity
// provider capability. verifyTimeout bounds the provider call so a stalled
// backend cannot hold a connection handshake forever.
type Authenticator struct {
	provider      contract.IdentityProvider
	verifyTimeout time.Duration
}

func NewAuthenticator(provider contract.IdentityProvider, verifyTimeout time.Duration) *Authenticator {
	return &Authenticator{provider: provider, verifyTimeout: verifyTimeout}
}

// ValidateToken resolves a bearer token to an Identity, or reports why it
// could not. Neither failure is retried here; the caller that initiated the
// connection decides what to do.
func (a *Authenticator) ValidateToken(ctx context.Context, token string) (domain.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Identity{}, ErrMissingToken
	}
	if a.verifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.verifyTimeout)
		defer cancel()
	}
	identity, err := a.provider.Verify(ctx, token)
	if err != nil {
		return domain.Identity{}, RejectedError{Reason: err.Error()}
	}
	if identity.ID == "" {
		return domain.Identity{}, RejectedError{Reason: "provider returned no identity"}
	}
	return identity, nil
}

// ExtractToken parses the token query parameter from a connection handshake
// URL. A malformed URL and an absent parameter both yield "", so callers
// treat "no token supplied" uniformly in both cases.
func ExtractToken(connectionURL string) string {
	u, err := url.Parse(connectionURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("token")
}
