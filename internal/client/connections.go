package client

import (
	"context"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// ConnectionsClient implements flasharray.ConnectionsClient. Connections
// address two independent reference targets, hosts and volumes, resolved
// separately into host_names and volume_ids/volume_names.
type ConnectionsClient struct {
	client *Client
}

// List implements flasharray.ConnectionsClient.List.
func (c *ConnectionsClient) List(ctx context.Context, params *flasharray.QueryParams, hosts []flasharray.Reference, volumes []flasharray.Reference) (*flasharray.ListResponse[flasharray.Connection], error) {
	resolved, err := resolveConnectionRefs(params, hosts, volumes)
	if err != nil {
		return nil, err
	}

	return listResource[flasharray.Connection](ctx, c.client, c.client.apiPath("/connections"), resolved, nil)
}

// Create implements flasharray.ConnectionsClient.Create.
func (c *ConnectionsClient) Create(ctx context.Context, body *flasharray.ConnectionPost, hosts []flasharray.Reference, volumes []flasharray.Reference) ([]flasharray.Connection, error) {
	resolved, err := resolveConnectionRefs(nil, hosts, volumes)
	if err != nil {
		return nil, err
	}

	return createResource[flasharray.Connection](ctx, c.client, c.client.apiPath("/connections"), resolved.ToValues(), body)
}

// Delete implements flasharray.ConnectionsClient.Delete.
func (c *ConnectionsClient) Delete(ctx context.Context, hosts []flasharray.Reference, volumes []flasharray.Reference) error {
	resolved, err := resolveConnectionRefs(nil, hosts, volumes)
	if err != nil {
		return err
	}

	_, err = c.client.httpClient.Delete(ctx, c.client.apiPath("/connections"), resolved.ToValues())

	return err
}

// resolveConnectionRefs resolves the host and volume targets independently.
func resolveConnectionRefs(params *flasharray.QueryParams, hosts []flasharray.Reference, volumes []flasharray.Reference) (*flasharray.QueryParams, error) {
	resolved, err := flasharray.ResolveReferences(hosts, params, "host_names")
	if err != nil {
		return nil, err
	}

	return flasharray.ResolveReferences(volumes, resolved, "volume_ids", "volume_names")
}
