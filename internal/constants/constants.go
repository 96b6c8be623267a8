package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single transport
	// invocation, including each retry attempt individually.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as REST version
	// discovery.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits and backoff.
const (
	// DefaultRetryLimit is the total number of attempts per call, including
	// the first.
	DefaultRetryLimit = 5

	// AuthExchangeRetryMax bounds retries of the credential exchange itself.
	AuthExchangeRetryMax = 3

	// RateLimitMinuteSleep is the backoff when the per-minute quota is fully
	// exhausted.
	RateLimitMinuteSleep = time.Minute

	// RateLimitSecondSleep is the backoff applied to every rate-limited
	// attempt.
	RateLimitSecondSleep = time.Second
)

// Headers consumed or produced by the array API.
const (
	// HeaderRequestID carries the request correlation id.
	HeaderRequestID = "x-request-id"

	// HeaderRateLimitMin is the size of the per-minute quota bucket.
	HeaderRateLimitMin = "x-ratelimit-min"

	// HeaderRateLimitRemainingMin is the remaining per-minute quota.
	HeaderRateLimitRemainingMin = "x-ratelimit-remaining-min"

	// HeaderAuthToken carries the session token for the session-token
	// credential variant.
	HeaderAuthToken = "x-auth-token"

	// HeaderAPIToken carries the long-lived API token on login requests.
	HeaderAPIToken = "api-token"
)

// Token lifetimes.
const (
	// TokenExpirationBuffer is subtracted from a token's lifetime so a
	// refresh happens before the array rejects the token.
	TokenExpirationBuffer = 30 * time.Second

	// SessionTokenLifetime is the idle lifetime the array grants session
	// tokens; the login response does not report it.
	SessionTokenLifetime = 30 * time.Minute

	// AssertionLifetime is the validity window of a signed identity
	// assertion.
	AssertionLifetime = 5 * time.Minute
)

// API paths.
const (
	// APIVersionPath lists the REST versions the array supports.
	APIVersionPath = "/api/api_version"

	// OAuth2TokenPath is the identity-assertion token exchange endpoint.
	OAuth2TokenPath = "/oauth2/1.0/token"
)

// Defaults.
const (
	// DefaultUserAgent identifies the SDK on the wire.
	DefaultUserAgent = "flasharray-client-go"

	// DefaultPageSize is a reasonable page size for bulk listings.
	DefaultPageSize = 100
)
