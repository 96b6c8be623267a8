package flasharray

import (
	"context"
	"errors"
)

// Page is one fetched page of a collection endpoint, as decoded off the wire.
type Page[T any] struct {
	ContinuationToken  string `json:"continuation_token,omitempty"`
	TotalItemCount     *int   `json:"total_item_count,omitempty"`
	MoreItemsRemaining bool   `json:"more_items_remaining,omitempty"`
	Total              []T    `json:"total,omitempty"`
	Items              []T    `json:"items,omitempty"`
}

// PageFetcher fetches a follow-up page. When token is non-empty the fetch
// uses the continuation-token scheme; otherwise offset is the index of the
// first item to return. Implementations route the fetch through the same
// call executor as the initial request, so retry, auth refresh and rate-limit
// handling apply to every page uniformly.
type PageFetcher[T any] func(ctx context.Context, token string, offset int) (*Page[T], error)

// ItemIterator is a lazy, forward-only, single-pass sequence of items that
// transparently spans as many page fetches as necessary. It is owned by a
// single consumer and is not safe for concurrent use.
type ItemIterator[T any] struct {
	ctx    context.Context
	fetch  PageFetcher[T]
	items  []T
	cursor int
	token  string
	more   bool
	offset int
}

// NewItemIterator creates an iterator seeded with an already-fetched first
// page. offset is the item offset at which that page started.
func NewItemIterator[T any](ctx context.Context, page *Page[T], offset int, fetch PageFetcher[T]) *ItemIterator[T] {
	return &ItemIterator[T]{
		ctx:    ctx,
		fetch:  fetch,
		items:  page.Items,
		token:  page.ContinuationToken,
		more:   page.MoreItemsRemaining,
		offset: offset,
	}
}

// HasNext reports whether another item is available or a further page is
// known to exist. It never performs a fetch.
func (it *ItemIterator[T]) HasNext() bool {
	return it.cursor < len(it.items) || it.token != "" || it.more
}

// Next returns the next item, fetching further pages as needed. It returns
// ErrNoMoreItems once the collection is exhausted; any other error indicates
// a failed page fetch, which callers must treat as a failure of the
// iteration rather than the end of the collection.
func (it *ItemIterator[T]) Next() (T, error) {
	var zero T

	for it.cursor >= len(it.items) {
		if it.token == "" && !it.more {
			return zero, ErrNoMoreItems
		}

		nextOffset := it.offset + len(it.items)

		page, err := it.fetch(it.ctx, it.token, nextOffset)
		if err != nil {
			return zero, err
		}

		it.offset = nextOffset
		it.items = page.Items
		it.cursor = 0
		it.token = page.ContinuationToken
		// An empty page without a token terminates the sequence even if the
		// server still claims more items remain.
		it.more = page.MoreItemsRemaining && len(page.Items) > 0
	}

	item := it.items[it.cursor]
	it.cursor++

	return item, nil
}

// All drains the iterator into a slice.
func (it *ItemIterator[T]) All() ([]T, error) {
	var all []T

	for {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				return all, nil
			}

			return nil, err
		}

		all = append(all, item)
	}
}

// ForEach applies fn to each remaining item, stopping on the first error.
func (it *ItemIterator[T]) ForEach(fn func(T) error) error {
	for {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				return nil
			}

			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}
}
