// Package faclient provides the main entry point for creating FlashArray API clients
package faclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/arraykit-io/flasharray-client/internal/client"
	"github.com/arraykit-io/flasharray-client/internal/constants"
	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// New creates a new FlashArray API client with automatic REST version
// discovery.
func New(ctx context.Context, config *flasharray.Config) (flasharray.Client, error) {
	if config == nil {
		return nil, flasharray.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, flasharray.ErrEndpointRequired
	}

	// Normalize endpoint
	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	if err := validateCredentials(config); err != nil {
		return nil, err
	}

	apiVersion := config.APIVersion
	if apiVersion == "" {
		discovered, err := discoverAPIVersion(ctx, endpoint)
		if err != nil {
			return nil, fmt.Errorf("discovering REST version: %w", err)
		}

		apiVersion = discovered
	}

	apiClient, err := client.New(config, apiVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// validateCredentials checks that exactly one credential variant is present.
func validateCredentials(config *flasharray.Config) error {
	hasAssertion := len(config.PrivateKeyPEM) > 0 || config.Issuer != "" || config.KeyID != ""
	hasAPIToken := config.APIToken != ""

	if hasAssertion && hasAPIToken {
		return &flasharray.ConfigurationError{
			Reason: "both identity-assertion and api-token credentials were supplied; choose one",
		}
	}

	if !hasAssertion && !hasAPIToken {
		return flasharray.ErrNoCredentials
	}

	return nil
}

// discoverAPIVersion asks the array which REST versions it supports and picks
// the newest. The endpoint is unauthenticated and lists versions in ascending
// order.
func discoverAPIVersion(ctx context.Context, endpoint string) (string, error) {
	httpClient := &http.Client{Timeout: constants.ShortHTTPTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+constants.APIVersionPath, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("getting supported versions: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return "", fmt.Errorf("version discovery returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var versions struct {
		Version []string `json:"version"`
	}

	err = json.NewDecoder(resp.Body).Decode(&versions)
	if err != nil {
		return "", fmt.Errorf("parsing version response: %w", err)
	}

	if len(versions.Version) == 0 {
		return "", flasharray.ErrNoRESTVersion
	}

	return versions.Version[len(versions.Version)-1], nil
}

// NewWithAPIToken creates a new client using the api-token credential.
func NewWithAPIToken(ctx context.Context, endpoint, apiToken string) (flasharray.Client, error) {
	return New(ctx, &flasharray.Config{
		Endpoint: endpoint,
		APIToken: apiToken,
	})
}

// NewWithIdentityAssertion creates a new client using the identity-assertion
// credential.
func NewWithIdentityAssertion(ctx context.Context, endpoint, issuer, subject, keyID string, privateKeyPEM []byte) (flasharray.Client, error) {
	return New(ctx, &flasharray.Config{
		Endpoint:      endpoint,
		Issuer:        issuer,
		Subject:       subject,
		KeyID:         keyID,
		PrivateKeyPEM: privateKeyPEM,
	})
}
