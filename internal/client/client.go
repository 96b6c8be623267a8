// Package client implements the flasharray.Client interface on top of the
// transport layer, one resource client per endpoint family.
package client

import (
	"context"
	"errors"

	"github.com/arraykit-io/flasharray-client/internal/auth"
	"github.com/arraykit-io/flasharray-client/internal/constants"
	"github.com/arraykit-io/flasharray-client/internal/http"
	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// ErrEmptyResponse indicates the array returned a success with no items where
// exactly one was expected.
var ErrEmptyResponse = errors.New("empty response from array")

// Client implements the flasharray.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	apiVersion   string

	arrays           flasharray.ArraysClient
	volumes          flasharray.VolumesClient
	hosts            flasharray.HostsClient
	hostGroups       flasharray.HostGroupsClient
	pods             flasharray.PodsClient
	protectionGroups flasharray.ProtectionGroupsClient
	volumeSnapshots  flasharray.VolumeSnapshotsClient
	connections      flasharray.ConnectionsClient
}

// New creates a client bound to the given endpoint and REST version. The
// endpoint must already be normalized and the version already negotiated.
func New(config *flasharray.Config, apiVersion string) (*Client, error) {
	tokenManager, err := createTokenManager(config, apiVersion)
	if err != nil {
		return nil, err
	}

	opts := []http.Option{
		http.WithRetryLimit(config.RetryLimit),
		http.WithTimeout(config.Timeout),
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger), http.WithDebug(config.Debug))
	}

	if config.Cache != nil {
		cache, err := flasharray.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, err
		}

		opts = append(opts, http.WithCache(cache, config.Cache.EffectiveTTL()))
	}

	client := &Client{
		httpClient:   http.NewClient(config.Endpoint, tokenManager, opts...),
		tokenManager: tokenManager,
		apiVersion:   apiVersion,
	}

	client.arrays = &ArraysClient{client: client}
	client.volumes = &VolumesClient{client: client}
	client.hosts = &HostsClient{client: client}
	client.hostGroups = &HostGroupsClient{client: client}
	client.pods = &PodsClient{client: client}
	client.protectionGroups = &ProtectionGroupsClient{client: client}
	client.volumeSnapshots = &VolumeSnapshotsClient{client: client}
	client.connections = &ConnectionsClient{client: client}

	return client, nil
}

// createTokenManager creates the token manager matching the configured
// credential variant. faclient.New validates exclusivity before calling New,
// so exactly one variant is present here.
func createTokenManager(config *flasharray.Config, apiVersion string) (auth.TokenManager, error) {
	if len(config.PrivateKeyPEM) > 0 {
		return auth.NewBearerTokenManager(&auth.BearerConfig{
			TokenURL:      config.Endpoint + constants.OAuth2TokenPath,
			Issuer:        config.Issuer,
			Subject:       config.Subject,
			Audience:      config.Audience,
			KeyID:         config.KeyID,
			PrivateKeyPEM: config.PrivateKeyPEM,
			Timeout:       config.Timeout,
		})
	}

	if config.APIToken != "" {
		return auth.NewSessionTokenManager(&auth.SessionConfig{
			LoginURL:  config.Endpoint + "/api/" + apiVersion + "/login",
			LogoutURL: config.Endpoint + "/api/" + apiVersion + "/logout",
			APIToken:  config.APIToken,
			Timeout:   config.Timeout,
		}), nil
	}

	return nil, flasharray.ErrNoCredentials
}

// apiPath prefixes a resource path with the negotiated REST version.
func (c *Client) apiPath(path string) string {
	return "/api/" + c.apiVersion + path
}

// Arrays implements flasharray.Client.Arrays.
func (c *Client) Arrays() flasharray.ArraysClient {
	return c.arrays
}

// Volumes implements flasharray.Client.Volumes.
func (c *Client) Volumes() flasharray.VolumesClient {
	return c.volumes
}

// Hosts implements flasharray.Client.Hosts.
func (c *Client) Hosts() flasharray.HostsClient {
	return c.hosts
}

// HostGroups implements flasharray.Client.HostGroups.
func (c *Client) HostGroups() flasharray.HostGroupsClient {
	return c.hostGroups
}

// Pods implements flasharray.Client.Pods.
func (c *Client) Pods() flasharray.PodsClient {
	return c.pods
}

// ProtectionGroups implements flasharray.Client.ProtectionGroups.
func (c *Client) ProtectionGroups() flasharray.ProtectionGroupsClient {
	return c.protectionGroups
}

// VolumeSnapshots implements flasharray.Client.VolumeSnapshots.
func (c *Client) VolumeSnapshots() flasharray.VolumeSnapshotsClient {
	return c.volumeSnapshots
}

// Connections implements flasharray.Client.Connections.
func (c *Client) Connections() flasharray.ConnectionsClient {
	return c.connections
}

// APIVersion implements flasharray.Client.APIVersion.
func (c *Client) APIVersion() string {
	return c.apiVersion
}

// Close implements flasharray.Client.Close. For the session-token credential
// variant it logs the session out on the array; for other variants there is
// nothing to release.
func (c *Client) Close(ctx context.Context) error {
	if session, ok := c.tokenManager.(*auth.SessionTokenManager); ok {
		return session.Logout(ctx)
	}

	return nil
}
