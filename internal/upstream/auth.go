package upstream

import (
	"context"
	"errors"
	"net/http"

	"github.com/retail-kit/backoffice-console/internal/domain"
)

// LoginResult is the credential exchange payload.
type LoginResult struct {
	User  domain.UserProfile `json:"user"`
	Token string             `json:"token"`
}

// VerifyOutcome classifies a verify call.
type VerifyOutcome int

const (
	// VerifyValid confirms the stored credential is still accepted.
	VerifyValid VerifyOutcome = iota
	// VerifyInvalid means the upstream explicitly refused the credential.
	VerifyInvalid
	// VerifyIndeterminate means no trustworthy answer arrived; the stored
	// session must not be torn down on its account.
	VerifyIndeterminate
)

// Login exchanges operator credentials for a profile and token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/staff/login", "", body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" || result.User.ID == "" {
		return nil, ErrMalformedEnvelope
	}
	return &result, nil
}

// Verify asks the upstream whether the stored credential is still valid.
// Only an explicit 401/403 counts as invalid; transport failures and server
// errors are indeterminate.
func (c *Client) Verify(ctx context.Context, token string) (VerifyOutcome, error) {
	err := c.do(ctx, http.MethodGet, "/auth/verify", token, nil, nil)
	if err == nil {
		return VerifyValid, nil
	}

	var rejection *RejectionError
	if errors.As(err, &rejection) {
		if rejection.Status == http.StatusUnauthorized || rejection.Status == http.StatusForbidden {
			return VerifyInvalid, nil
		}
	}
	return VerifyIndeterminate, err
}

// Logout revokes the credential server-side. Best effort: the console resets
// local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}
