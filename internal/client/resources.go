package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/arraykit-io/flasharray-client/internal/constants"
	"github.com/arraykit-io/flasharray-client/internal/http"
	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// listResource performs a collection GET and wraps the first page in a
// ListResponse whose iterator fetches follow-up pages through the same
// transport. Follow-ups prefer the continuation token and fall back to the
// item offset; they reuse the initial request's correlation id so the whole
// traversal shows up as one logical request on the array.
func listResource[T any](ctx context.Context, c *Client, path string, params *flasharray.QueryParams, refs []flasharray.Reference, candidates ...string) (*flasharray.ListResponse[T], error) {
	resolved, err := flasharray.ResolveReferences(refs, params, candidates...)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, resolved.ToValues())
	if err != nil {
		return nil, err
	}

	var page flasharray.Page[T]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	requestID := resp.RequestID

	fetch := func(ctx context.Context, token string, offset int) (*flasharray.Page[T], error) {
		followUp := resolved.Clone()

		if token != "" {
			followUp.WithContinuationToken(token).WithOffset(0)
		} else {
			followUp.WithContinuationToken("").WithOffset(offset)
		}

		return fetchPage[T](ctx, c, path, followUp.ToValues(), requestID)
	}

	return flasharray.NewListResponse(ctx, resp.StatusCode, resp.Headers, requestID, &page, resolved.Offset, fetch), nil
}

// fetchPage performs one follow-up page fetch.
func fetchPage[T any](ctx context.Context, c *Client, path string, query url.Values, requestID string) (*flasharray.Page[T], error) {
	req := &http.Request{
		Method: nethttp.MethodGet,
		Path:   path,
		Query:  query,
	}

	if requestID != "" {
		req.Headers = map[string]string{constants.HeaderRequestID: requestID}
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var page flasharray.Page[T]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing page response: %w", err)
	}

	return &page, nil
}

// createResource performs a POST that returns the created items.
func createResource[T any](ctx context.Context, c *Client, path string, query url.Values, body interface{}) ([]T, error) {
	resp, err := c.httpClient.Post(ctx, path, query, body)
	if err != nil {
		return nil, err
	}

	var page flasharray.Page[T]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing create response: %w", err)
	}

	return page.Items, nil
}

// patchResource performs a PATCH that returns the updated items.
func patchResource[T any](ctx context.Context, c *Client, path string, params *flasharray.QueryParams, refs []flasharray.Reference, body interface{}, candidates ...string) ([]T, error) {
	resolved, err := flasharray.ResolveReferences(refs, params, candidates...)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Patch(ctx, path, resolved.ToValues(), body)
	if err != nil {
		return nil, err
	}

	var page flasharray.Page[T]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing update response: %w", err)
	}

	return page.Items, nil
}

// deleteResource performs a DELETE addressed by references.
func deleteResource(ctx context.Context, c *Client, path string, refs []flasharray.Reference, candidates ...string) error {
	resolved, err := flasharray.ResolveReferences(refs, nil, candidates...)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path, resolved.ToValues())

	return err
}

// namesQuery builds the query for create operations addressed by name.
func namesQuery(names []string) url.Values {
	return flasharray.NewQueryParams().WithNames(names...).ToValues()
}
