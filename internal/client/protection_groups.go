package client

import (
	"context"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// ProtectionGroupsClient implements flasharray.ProtectionGroupsClient.
type ProtectionGroupsClient struct {
	client *Client
}

// List implements flasharray.ProtectionGroupsClient.List.
func (c *ProtectionGroupsClient) List(ctx context.Context, params *flasharray.QueryParams, refs ...flasharray.Reference) (*flasharray.ListResponse[flasharray.ProtectionGroup], error) {
	return listResource[flasharray.ProtectionGroup](ctx, c.client, c.client.apiPath("/protection-groups"), params, refs, "names")
}

// Create implements flasharray.ProtectionGroupsClient.Create.
func (c *ProtectionGroupsClient) Create(ctx context.Context, names ...string) ([]flasharray.ProtectionGroup, error) {
	return createResource[flasharray.ProtectionGroup](ctx, c.client, c.client.apiPath("/protection-groups"), namesQuery(names), nil)
}

// Update implements flasharray.ProtectionGroupsClient.Update.
func (c *ProtectionGroupsClient) Update(ctx context.Context, body *flasharray.ProtectionGroupPatch, refs ...flasharray.Reference) ([]flasharray.ProtectionGroup, error) {
	return patchResource[flasharray.ProtectionGroup](ctx, c.client, c.client.apiPath("/protection-groups"), nil, refs, body, "names")
}

// Delete implements flasharray.ProtectionGroupsClient.Delete.
func (c *ProtectionGroupsClient) Delete(ctx context.Context, refs ...flasharray.Reference) error {
	return deleteResource(ctx, c.client, c.client.apiPath("/protection-groups"), refs, "names")
}
