package auth

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/arraykit-io/flasharray-client/internal/constants"
)

// TokenManager produces the authorization header attached to every API
// request. When force is true the credential exchange is always performed
// again, regardless of any cached token; this is how the call executor
// reacts to 401/403 responses.
type TokenManager interface {
	Header(ctx context.Context, force bool) (name, value string, err error)
}

// token is one exchanged credential with its expiry.
type token struct {
	value     string
	expiresAt time.Time
}

// valid reports whether the token can still be used, leaving a buffer so a
// refresh happens before the array rejects it.
func (t *token) valid() bool {
	return t != nil && time.Now().Add(constants.TokenExpirationBuffer).Before(t.expiresAt)
}

// tokenCache is the shared mutable token state across all calls on a client.
// Exchanges are serialized under the lock, so concurrent refreshes settle on
// the latest token rather than clobbering each other.
type tokenCache struct {
	mu  sync.Mutex
	tok *token
}

// current returns a usable token value, exchanging when the cache is empty,
// expired, or force is set.
func (c *tokenCache) current(ctx context.Context, force bool, exchange func(context.Context) (*token, error)) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !force && c.tok.valid() {
		return c.tok.value, nil
	}

	tok, err := exchange(ctx)
	if err != nil {
		return "", err
	}

	c.tok = tok

	return tok.value, nil
}

// take removes and returns the cached token value, if any.
func (c *tokenCache) take() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tok == nil {
		return "", false
	}

	value := c.tok.value
	c.tok = nil

	return value, true
}

// newExchangeClient builds the HTTP client used for credential exchanges.
// Exchange endpoints are plain request/response calls, so the stock
// retryablehttp policy (retry connection errors, 429 and 5xx with backoff)
// fits them.
func newExchangeClient(timeout time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = constants.AuthExchangeRetryMax
	client.Logger = nil

	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	client.HTTPClient.Timeout = timeout

	return client
}
