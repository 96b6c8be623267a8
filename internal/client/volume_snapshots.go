package client

import (
	"context"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// VolumeSnapshotsClient implements flasharray.VolumeSnapshotsClient.
type VolumeSnapshotsClient struct {
	client *Client
}

// List implements flasharray.VolumeSnapshotsClient.List.
func (c *VolumeSnapshotsClient) List(ctx context.Context, params *flasharray.QueryParams, refs ...flasharray.Reference) (*flasharray.ListResponse[flasharray.VolumeSnapshot], error) {
	return listResource[flasharray.VolumeSnapshot](ctx, c.client, c.client.apiPath("/volume-snapshots"), params, refs, "ids", "names")
}

// Create implements flasharray.VolumeSnapshotsClient.Create. sources identify
// the volumes to snapshot, resolved to source_ids or source_names.
func (c *VolumeSnapshotsClient) Create(ctx context.Context, body *flasharray.VolumeSnapshotPost, sources ...flasharray.Reference) ([]flasharray.VolumeSnapshot, error) {
	resolved, err := flasharray.ResolveReferences(sources, nil, "source_ids", "source_names")
	if err != nil {
		return nil, err
	}

	return createResource[flasharray.VolumeSnapshot](ctx, c.client, c.client.apiPath("/volume-snapshots"), resolved.ToValues(), body)
}

// Delete implements flasharray.VolumeSnapshotsClient.Delete.
func (c *VolumeSnapshotsClient) Delete(ctx context.Context, refs ...flasharray.Reference) error {
	return deleteResource(ctx, c.client, c.client.apiPath("/volume-snapshots"), refs, "ids", "names")
}
