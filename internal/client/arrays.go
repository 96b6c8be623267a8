package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// ArraysClient implements flasharray.ArraysClient. The arrays endpoint always
// addresses the one managed array, so its responses carry exactly one item.
type ArraysClient struct {
	client *Client
}

// Get implements flasharray.ArraysClient.Get.
func (c *ArraysClient) Get(ctx context.Context) (*flasharray.Array, error) {
	resp, err := c.client.httpClient.Get(ctx, c.client.apiPath("/arrays"), nil)
	if err != nil {
		return nil, err
	}

	return singleArray(resp.Body)
}

// Update implements flasharray.ArraysClient.Update.
func (c *ArraysClient) Update(ctx context.Context, body *flasharray.ArrayPatch) (*flasharray.Array, error) {
	resp, err := c.client.httpClient.Patch(ctx, c.client.apiPath("/arrays"), nil, body)
	if err != nil {
		return nil, err
	}

	return singleArray(resp.Body)
}

func singleArray(body []byte) (*flasharray.Array, error) {
	var page flasharray.Page[flasharray.Array]

	err := json.Unmarshal(body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing array response: %w", err)
	}

	if len(page.Items) == 0 {
		return nil, ErrEmptyResponse
	}

	return &page.Items[0], nil
}
