package auth

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/arraykit-io/flasharray-client/internal/constants"
	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// Static errors for key parsing.
var (
	ErrNoPEMData = errors.New("no PEM data in private key")
	ErrNotRSAKey = errors.New("private key is not an RSA key")
	ErrNoToken   = errors.New("token endpoint returned no access token")
)

// BearerConfig holds the identity-assertion credentials.
type BearerConfig struct {
	// TokenURL is the full oauth2 token exchange endpoint on the array.
	TokenURL string

	Issuer   string
	Subject  string
	Audience string
	KeyID    string

	// PrivateKeyPEM is the PEM-encoded RSA key used to sign assertions.
	PrivateKeyPEM []byte

	Timeout time.Duration
}

// BearerTokenManager exchanges a signed identity assertion for a short-lived
// bearer token and produces "Authorization: Bearer <token>" headers.
type BearerTokenManager struct {
	config *BearerConfig
	key    *rsa.PrivateKey
	http   *retryablehttp.Client
	cache  tokenCache
}

// NewBearerTokenManager parses the configured private key and creates the
// manager. No network call is made until the first header is requested.
func NewBearerTokenManager(config *BearerConfig) (*BearerTokenManager, error) {
	key, err := ParsePrivateKey(config.PrivateKeyPEM)
	if err != nil {
		return nil, &flasharray.ConfigurationError{Reason: fmt.Sprintf("parsing private key: %v", err)}
	}

	return &BearerTokenManager{
		config: config,
		key:    key,
		http:   newExchangeClient(config.Timeout),
	}, nil
}

// Header implements TokenManager.
func (m *BearerTokenManager) Header(ctx context.Context, force bool) (string, string, error) {
	value, err := m.cache.current(ctx, force, m.exchange)
	if err != nil {
		return "", "", err
	}

	return "Authorization", "Bearer " + value, nil
}

// exchange signs a fresh assertion and trades it for a bearer token.
func (m *BearerTokenManager) exchange(ctx context.Context) (*token, error) {
	assertion, err := m.signAssertion()
	if err != nil {
		return nil, &flasharray.AuthenticationError{Op: "signing identity assertion", Err: err}
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:token-exchange")
	form.Set("subject_token", assertion)
	form.Set("subject_token_type", "urn:ietf:params:oauth:token-type:jwt")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &flasharray.AuthenticationError{Op: "building token request", Err: err}
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.http.Do(req)
	if err != nil {
		return nil, &flasharray.AuthenticationError{Op: "token exchange", Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &flasharray.AuthenticationError{Op: "reading token response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &flasharray.AuthenticationError{
			Op:  "token exchange",
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &flasharray.AuthenticationError{Op: "parsing token response", Err: err}
	}

	if result.AccessToken == "" {
		return nil, &flasharray.AuthenticationError{Op: "token exchange", Err: ErrNoToken}
	}

	return &token{
		value:     result.AccessToken,
		expiresAt: time.Now().Add(time.Duration(result.ExpiresIn) * time.Second),
	}, nil
}

// signAssertion builds and signs the RS256 identity assertion.
func (m *BearerTokenManager) signAssertion() (string, error) {
	now := time.Now()

	audience := m.config.Audience
	if audience == "" {
		audience = strings.TrimSuffix(m.config.TokenURL, constants.OAuth2TokenPath)
	}

	header := map[string]interface{}{
		"alg": "RS256",
		"typ": "JWT",
		"kid": m.config.KeyID,
	}

	claims := map[string]interface{}{
		"iss": m.config.Issuer,
		"aud": audience,
		"sub": m.config.Subject,
		"iat": now.Unix(),
		"exp": now.Add(constants.AssertionLifetime).Unix(),
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encoding assertion header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encoding assertion claims: %w", err)
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) + "." +
		base64.RawURLEncoding.EncodeToString(claimsJSON)

	digest := sha256.Sum256([]byte(signingInput))

	signature, err := rsa.SignPKCS1v15(rand.Reader, m.key, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("signing assertion: %w", err)
	}

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(signature), nil
}

// ParsePrivateKey parses a PEM-encoded RSA private key in PKCS#1 or PKCS#8
// form.
func ParsePrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, ErrNoPEMData
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrNotRSAKey
	}

	return key, nil
}
