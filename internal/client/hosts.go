package client

import (
	"context"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// HostsClient implements flasharray.HostsClient. Hosts carry no id, so the
// only reference candidate is "names".
type HostsClient struct {
	client *Client
}

// List implements flasharray.HostsClient.List.
func (c *HostsClient) List(ctx context.Context, params *flasharray.QueryParams, refs ...flasharray.Reference) (*flasharray.ListResponse[flasharray.Host], error) {
	return listResource[flasharray.Host](ctx, c.client, c.client.apiPath("/hosts"), params, refs, "names")
}

// Create implements flasharray.HostsClient.Create.
func (c *HostsClient) Create(ctx context.Context, body *flasharray.HostPost, names ...string) ([]flasharray.Host, error) {
	return createResource[flasharray.Host](ctx, c.client, c.client.apiPath("/hosts"), namesQuery(names), body)
}

// Update implements flasharray.HostsClient.Update.
func (c *HostsClient) Update(ctx context.Context, body *flasharray.HostPatch, refs ...flasharray.Reference) ([]flasharray.Host, error) {
	return patchResource[flasharray.Host](ctx, c.client, c.client.apiPath("/hosts"), nil, refs, body, "names")
}

// Delete implements flasharray.HostsClient.Delete.
func (c *HostsClient) Delete(ctx context.Context, refs ...flasharray.Reference) error {
	return deleteResource(ctx, c.client, c.client.apiPath("/hosts"), refs, "names")
}
