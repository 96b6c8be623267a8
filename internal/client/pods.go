package client

import (
	"context"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// PodsClient implements flasharray.PodsClient.
type PodsClient struct {
	client *Client
}

// List implements flasharray.PodsClient.List.
func (c *PodsClient) List(ctx context.Context, params *flasharray.QueryParams, refs ...flasharray.Reference) (*flasharray.ListResponse[flasharray.Pod], error) {
	return listResource[flasharray.Pod](ctx, c.client, c.client.apiPath("/pods"), params, refs, "ids", "names")
}

// Create implements flasharray.PodsClient.Create.
func (c *PodsClient) Create(ctx context.Context, body *flasharray.PodPost, names ...string) ([]flasharray.Pod, error) {
	return createResource[flasharray.Pod](ctx, c.client, c.client.apiPath("/pods"), namesQuery(names), body)
}

// Update implements flasharray.PodsClient.Update.
func (c *PodsClient) Update(ctx context.Context, body *flasharray.PodPatch, refs ...flasharray.Reference) ([]flasharray.Pod, error) {
	return patchResource[flasharray.Pod](ctx, c.client, c.client.apiPath("/pods"), nil, refs, body, "ids", "names")
}

// Delete implements flasharray.PodsClient.Delete.
func (c *PodsClient) Delete(ctx context.Context, refs ...flasharray.Reference) error {
	return deleteResource(ctx, c.client, c.client.apiPath("/pods"), refs, "ids", "names")
}
