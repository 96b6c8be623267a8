package client

import (
	"context"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// HostGroupsClient implements flasharray.HostGroupsClient.
type HostGroupsClient struct {
	client *Client
}

// List implements flasharray.HostGroupsClient.List.
func (c *HostGroupsClient) List(ctx context.Context, params *flasharray.QueryParams, refs ...flasharray.Reference) (*flasharray.ListResponse[flasharray.HostGroup], error) {
	return listResource[flasharray.HostGroup](ctx, c.client, c.client.apiPath("/host-groups"), params, refs, "names")
}

// Create implements flasharray.HostGroupsClient.Create.
func (c *HostGroupsClient) Create(ctx context.Context, names ...string) ([]flasharray.HostGroup, error) {
	return createResource[flasharray.HostGroup](ctx, c.client, c.client.apiPath("/host-groups"), namesQuery(names), nil)
}

// Update implements flasharray.HostGroupsClient.Update.
func (c *HostGroupsClient) Update(ctx context.Context, body *flasharray.HostGroupPatch, refs ...flasharray.Reference) ([]flasharray.HostGroup, error) {
	return patchResource[flasharray.HostGroup](ctx, c.client, c.client.apiPath("/host-groups"), nil, refs, body, "names")
}

// Delete implements flasharray.HostGroupsClient.Delete.
func (c *HostGroupsClient) Delete(ctx context.Context, refs ...flasharray.Reference) error {
	return deleteResource(ctx, c.client, c.client.apiPath("/host-groups"), refs, "names")
}
