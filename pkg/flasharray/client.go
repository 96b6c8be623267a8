package flasharray

import (
	"context"
	"time"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a flasharray.Client.
//
// # Authentication
//
// Exactly one credential variant must be supplied:
//
//  1. Identity assertion: Issuer, Subject, KeyID and PrivateKeyPEM. The
//     client signs an RS256 assertion and exchanges it at the array's
//     oauth2 token endpoint for a short-lived bearer token
//     ("Authorization: Bearer <token>").
//  2. API token: APIToken. The client exchanges it at the login endpoint for
//     a session token ("x-auth-token: <token>") and disposes of the session
//     via logout.
//
// Supplying both variants fails at construction with *ConfigurationError,
// before any network call. Supplying neither fails with ErrNoCredentials.
type Config struct {
	// Endpoint is the base URL of the array management interface
	// (e.g. "https://array01.example.com"). faclient.New normalizes this
	// value by trimming a trailing slash and adding "https://" if no scheme
	// is present.
	Endpoint string

	// Identity-assertion credentials.
	Issuer        string
	Subject       string
	KeyID         string
	PrivateKeyPEM []byte
	// Audience overrides the assertion audience; defaults to the endpoint.
	Audience string

	// API-token credential.
	APIToken string

	// APIVersion pins the REST version (e.g. "2.4"). If empty, faclient.New
	// discovers the newest supported version from the array.
	APIVersion string

	// RetryLimit is the total number of attempts per call, including the
	// first. If 0, the default of 5 is used.
	RetryLimit int

	// Timeout bounds every transport invocation individually, including
	// retries and page-fetch follow-ups. If 0, a default is used.
	Timeout time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Logger is an optional structured logger used by the transport layer.
	Logger Logger

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool

	// Cache optionally configures response caching for GET requests.
	Cache *CacheConfig
}

// ArraysClient provides access to the array resource.
type ArraysClient interface {
	Get(ctx context.Context) (*Array, error)
	Update(ctx context.Context, body *ArrayPatch) (*Array, error)
}

// VolumesClient provides access to volume resources.
type VolumesClient interface {
	List(ctx context.Context, params *QueryParams, refs ...Reference) (*ListResponse[Volume], error)
	Create(ctx context.Context, body *VolumePost, names ...string) ([]Volume, error)
	Update(ctx context.Context, body *VolumePatch, refs ...Reference) ([]Volume, error)
	Delete(ctx context.Context, refs ...Reference) error
}

// HostsClient provides access to host resources. Hosts are keyed by name
// only.
type HostsClient interface {
	List(ctx context.Context, params *QueryParams, refs ...Reference) (*ListResponse[Host], error)
	Create(ctx context.Context, body *HostPost, names ...string) ([]Host, error)
	Update(ctx context.Context, body *HostPatch, refs ...Reference) ([]Host, error)
	Delete(ctx context.Context, refs ...Reference) error
}

// HostGroupsClient provides access to host group resources.
type HostGroupsClient interface {
	List(ctx context.Context, params *QueryParams, refs ...Reference) (*ListResponse[HostGroup], error)
	Create(ctx context.Context, names ...string) ([]HostGroup, error)
	Update(ctx context.Context, body *HostGroupPatch, refs ...Reference) ([]HostGroup, error)
	Delete(ctx context.Context, refs ...Reference) error
}

// PodsClient provides access to pod resources.
type PodsClient interface {
	List(ctx context.Context, params *QueryParams, refs ...Reference) (*ListResponse[Pod], error)
	Create(ctx context.Context, body *PodPost, names ...string) ([]Pod, error)
	Update(ctx context.Context, body *PodPatch, refs ...Reference) ([]Pod, error)
	Delete(ctx context.Context, refs ...Reference) error
}

// ProtectionGroupsClient provides access to protection group resources.
type ProtectionGroupsClient interface {
	List(ctx context.Context, params *QueryParams, refs ...Reference) (*ListResponse[ProtectionGroup], error)
	Create(ctx context.Context, names ...string) ([]ProtectionGroup, error)
	Update(ctx context.Context, body *ProtectionGroupPatch, refs ...Reference) ([]ProtectionGroup, error)
	Delete(ctx context.Context, refs ...Reference) error
}

// VolumeSnapshotsClient provides access to volume snapshot resources.
type VolumeSnapshotsClient interface {
	List(ctx context.Context, params *QueryParams, refs ...Reference) (*ListResponse[VolumeSnapshot], error)
	// Create snapshots the volumes identified by sources.
	Create(ctx context.Context, body *VolumeSnapshotPost, sources ...Reference) ([]VolumeSnapshot, error)
	Delete(ctx context.Context, refs ...Reference) error
}

// ConnectionsClient provides access to host/volume connections. Hosts and
// volumes are two independent reference targets resolved separately.
type ConnectionsClient interface {
	List(ctx context.Context, params *QueryParams, hosts []Reference, volumes []Reference) (*ListResponse[Connection], error)
	Create(ctx context.Context, body *ConnectionPost, hosts []Reference, volumes []Reference) ([]Connection, error)
	Delete(ctx context.Context, hosts []Reference, volumes []Reference) error
}

// Client is the top-level interface to an array.
type Client interface {
	Arrays() ArraysClient
	Volumes() VolumesClient
	Hosts() HostsClient
	HostGroups() HostGroupsClient
	Pods() PodsClient
	ProtectionGroups() ProtectionGroupsClient
	VolumeSnapshots() VolumeSnapshotsClient
	Connections() ConnectionsClient

	// APIVersion returns the negotiated REST version.
	APIVersion() string

	// Close releases the client's session on the array, if any.
	Close(ctx context.Context) error
}
