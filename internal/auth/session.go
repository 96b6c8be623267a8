package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/arraykit-io/flasharray-client/internal/constants"
	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// ErrNoSessionToken indicates the login response carried no session token.
var ErrNoSessionToken = errors.New("login response carried no session token")

// SessionConfig holds the API-token credential.
type SessionConfig struct {
	// LoginURL and LogoutURL are the session endpoints on the array, already
	// bound to a REST version.
	LoginURL  string
	LogoutURL string

	APIToken string

	Timeout time.Duration
}

// SessionTokenManager exchanges a long-lived API token for a session token
// at the login endpoint and produces "x-auth-token: <token>" headers. The
// session is disposed of via Logout.
type SessionTokenManager struct {
	config *SessionConfig
	http   *retryablehttp.Client
	cache  tokenCache
}

// NewSessionTokenManager creates the manager. No network call is made until
// the first header is requested.
func NewSessionTokenManager(config *SessionConfig) *SessionTokenManager {
	return &SessionTokenManager{
		config: config,
		http:   newExchangeClient(config.Timeout),
	}
}

// Header implements TokenManager.
func (m *SessionTokenManager) Header(ctx context.Context, force bool) (string, string, error) {
	value, err := m.cache.current(ctx, force, m.exchange)
	if err != nil {
		return "", "", err
	}

	return constants.HeaderAuthToken, value, nil
}

// exchange logs in with the API token and captures the session token from
// the response headers. The array does not report the session lifetime, so
// the documented idle lifetime is assumed.
func (m *SessionTokenManager) exchange(ctx context.Context) (*token, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, m.config.LoginURL, nil)
	if err != nil {
		return nil, &flasharray.AuthenticationError{Op: "building login request", Err: err}
	}

	req.Header.Set(constants.HeaderAPIToken, m.config.APIToken)

	resp, err := m.http.Do(req)
	if err != nil {
		return nil, &flasharray.AuthenticationError{Op: "login", Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &flasharray.AuthenticationError{
			Op:  "login",
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	sessionToken := resp.Header.Get(constants.HeaderAuthToken)
	if sessionToken == "" {
		return nil, &flasharray.AuthenticationError{Op: "login", Err: ErrNoSessionToken}
	}

	return &token{
		value:     sessionToken,
		expiresAt: time.Now().Add(constants.SessionTokenLifetime),
	}, nil
}

// Logout disposes of the current session on the array, if one exists.
func (m *SessionTokenManager) Logout(ctx context.Context) error {
	value, ok := m.cache.take()
	if !ok {
		return nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, m.config.LogoutURL, nil)
	if err != nil {
		return fmt.Errorf("building logout request: %w", err)
	}

	req.Header.Set(constants.HeaderAuthToken, value)

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("logout: unexpected status %d", resp.StatusCode)
	}

	return nil
}
