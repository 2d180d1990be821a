package client

import (
	"context"

	"github.com/haystack-rest/haystack-go/pkg/value"
)

// WatchSub is not implemented. Server-push watches need a
// subscription lifecycle this batch client does not carry; poll with
// Read or Eval instead.
func (c *Client) WatchSub(context.Context, []value.Ref) (*value.Grid, error) {
	return nil, ErrNotSupported
}

// WatchPoll is not implemented.
func (c *Client) WatchPoll(context.Context, string) (*value.Grid, error) {
	return nil, ErrNotSupported
}

// WatchUnsub is not implemented.
func (c *Client) WatchUnsub(context.Context, string) (*value.Grid, error) {
	return nil, ErrNotSupported
}
