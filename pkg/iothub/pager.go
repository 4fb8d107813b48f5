package iothub

import (
	"context"
	"net/url"
	"strconv"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

// Pager walks a paged result set. The continuation token travels in
// response headers; an empty token after a page marks the end of the set.
type Pager[T any] struct {
	client *Client

	method string
	path   string
	query  url.Values
	body   any

	pageSize int

	continuation string
	done         bool

	err error
}

// More reports whether another page can be fetched. It is true before
// the first call to NextPage.
func (p *Pager[T]) More() bool {
	return !p.done
}

// NextPage fetches the next page. A failed call leaves the pager
// position unchanged, so the same page can be requested again.
func (p *Pager[T]) NextPage(ctx context.Context) ([]T, error) {
	if p.err != nil {
		return nil, p.err
	}

	if p.done {
		return nil, ErrNoMorePages
	}

	headers := map[string]string{}

	if p.continuation != "" {
		headers[headerContinuation] = p.continuation
	}

	if p.pageSize > 0 {
		headers[headerMaxItemCount] = strconv.Itoa(p.pageSize)
	}

	var items []T

	responseHeaders, err := p.client.do(ctx, p.method, p.path, p.query, headers, p.body, &items)

	if err != nil {
		return nil, err
	}

	for i := range items {
		if v, ok := any(&items[i]).(models.Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, &DecodeError{Err: err}
			}
		}
	}

	p.continuation = responseHeaders.Get(headerContinuation)
	p.done = p.continuation == ""

	return items, nil
}

// All drains the pager and returns every remaining item.
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	var all []T

	for p.More() {
		items, err := p.NextPage(ctx)

		if err != nil {
			return nil, err
		}

		all = append(all, items...)
	}

	return all, nil
}
