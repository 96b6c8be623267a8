package flasharray

import (
	"context"
	"net/http"
)

// ListResponse represents a successful collection response. The envelope is
// immutable once constructed; Items exposes the current page plus the
// machinery to fetch subsequent pages transparently.
type ListResponse[T any] struct {
	// StatusCode is the HTTP status of the initial fetch.
	StatusCode int

	// ContinuationToken is the opaque cursor returned with the first page,
	// if any.
	ContinuationToken string

	// TotalItemCount is the total size of the collection. It is only present
	// when explicitly requested via QueryParams.WithTotalItemCount.
	TotalItemCount *int

	// Total holds the aggregate row(s) for total/total_only queries.
	Total []T

	// MoreItemsRemaining reports whether the server indicated further items
	// beyond the first page.
	MoreItemsRemaining bool

	// Headers are the response headers of the initial fetch.
	Headers http.Header

	// RequestID is the request correlation id, either supplied by the caller
	// or generated by the server. Follow-up page fetches reuse it.
	RequestID string

	// Items iterates the collection across page fetches. Nil for operations
	// with no collection body.
	Items *ItemIterator[T]
}

// NewListResponse builds the success envelope for a collection response and
// seeds its iterator with the first page. offset is the item offset at which
// that page started.
func NewListResponse[T any](ctx context.Context, statusCode int, headers http.Header, requestID string, page *Page[T], offset int, fetch PageFetcher[T]) *ListResponse[T] {
	return &ListResponse[T]{
		StatusCode:         statusCode,
		ContinuationToken:  page.ContinuationToken,
		TotalItemCount:     page.TotalItemCount,
		Total:              page.Total,
		MoreItemsRemaining: page.MoreItemsRemaining,
		Headers:            headers,
		RequestID:          requestID,
		Items:              NewItemIterator(ctx, page, offset, fetch),
	}
}
