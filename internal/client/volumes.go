package client

import (
	"context"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// VolumesClient implements flasharray.VolumesClient.
type VolumesClient struct {
	client *Client
}

// List implements flasharray.VolumesClient.List.
func (c *VolumesClient) List(ctx context.Context, params *flasharray.QueryParams, refs ...flasharray.Reference) (*flasharray.ListResponse[flasharray.Volume], error) {
	return listResource[flasharray.Volume](ctx, c.client, c.client.apiPath("/volumes"), params, refs, "ids", "names")
}

// Create implements flasharray.VolumesClient.Create.
func (c *VolumesClient) Create(ctx context.Context, body *flasharray.VolumePost, names ...string) ([]flasharray.Volume, error) {
	return createResource[flasharray.Volume](ctx, c.client, c.client.apiPath("/volumes"), namesQuery(names), body)
}

// Update implements flasharray.VolumesClient.Update.
func (c *VolumesClient) Update(ctx context.Context, body *flasharray.VolumePatch, refs ...flasharray.Reference) ([]flasharray.Volume, error) {
	return patchResource[flasharray.Volume](ctx, c.client, c.client.apiPath("/volumes"), nil, refs, body, "ids", "names")
}

// Delete implements flasharray.VolumesClient.Delete.
func (c *VolumesClient) Delete(ctx context.Context, refs ...flasharray.Reference) error {
	return deleteResource(ctx, c.client, c.client.apiPath("/volumes"), refs, "ids", "names")
}
