package client

import (
	"context"
	"errors"
	"sort"

	"github.com/haystack-rest/haystack-go/pkg/session"
	"github.com/haystack-rest/haystack-go/pkg/value"
)

// ErrNotSupported marks ops this client deliberately does not speak.
var ErrNotSupported = errors.New("client: op not supported")

// ErrEmptyResponse means the server answered with a grid that has no
// rows where one was required.
var ErrEmptyResponse = errors.New("client: empty response grid")

// Client is a typed front end to one project.
type Client struct {
	session *session.Session
	format  session.Format
}

// New creates a client with its own session.
func New(cfg session.Config) (*Client, error) {
	s, err := session.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{session: s}, nil
}

// NewFromSession wraps an existing session.
func NewFromSession(s *session.Session) *Client {
	return &Client{session: s}
}

// Session returns the underlying session.
func (c *Client) Session() *session.Session { return c.session }

// SetFormat picks the wire codec for subsequent calls. The zero
// value is Zinc.
func (c *Client) SetFormat(f session.Format) { c.format = f }

// Open authenticates eagerly.
func (c *Client) Open(ctx context.Context) error {
	return c.session.Open(ctx)
}

// About returns the server summary record.
func (c *Client) About(ctx context.Context) (value.Dict, error) {
	g, err := c.session.Call(ctx, "about", nil, c.format)
	if err != nil {
		return value.Dict{}, err
	}
	if g.NumRows() == 0 {
		return value.Dict{}, ErrEmptyResponse
	}
	return g.Row(0), nil
}

// Ops lists the ops the server implements.
func (c *Client) Ops(ctx context.Context) (*value.Grid, error) {
	return c.session.Call(ctx, "ops", nil, c.format)
}

// Formats lists the MIME types the server can read and write.
func (c *Client) Formats(ctx context.Context) (*value.Grid, error) {
	return c.session.Call(ctx, "formats", nil, c.format)
}

// Defs queries the def namespace. An empty filter returns all defs;
// limit 0 means no limit.
func (c *Client) Defs(ctx context.Context, filter string, limit int) (*value.Grid, error) {
	return c.session.Call(ctx, "defs", filterGrid(filter, limit), c.format)
}

// Read queries records by filter. Limit 0 means no limit.
func (c *Client) Read(ctx context.Context, filter string, limit int) (*value.Grid, error) {
	return c.session.Call(ctx, "read", filterGrid(filter, limit), c.format)
}

// ReadByIDs reads records by identifier. Rows come back in request
// order; unknown ids yield empty rows.
func (c *Client) ReadByIDs(ctx context.Context, ids []value.Ref) (*value.Grid, error) {
	b := value.NewGridBuilder().Col("id")
	for _, id := range ids {
		b.Row(map[string]value.Value{"id": id})
	}
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return c.session.Call(ctx, "read", g, c.format)
}

// Eval evaluates an Axon expression.
func (c *Client) Eval(ctx context.Context, expr string) (*value.Grid, error) {
	g, err := exprGrid(expr)
	if err != nil {
		return nil, err
	}
	return c.session.Call(ctx, "eval", g, c.format)
}

func exprGrid(expr string) (*value.Grid, error) {
	return value.NewGridBuilder().
		Col("expr").
		Row(map[string]value.Value{"expr": value.Str(expr)}).
		Build()
}

// Nav navigates the project tree. A nil navID reads the root.
func (c *Client) Nav(ctx context.Context, navID value.Value) (*value.Grid, error) {
	b := value.NewGridBuilder().Col("navId")
	if navID != nil {
		b.Row(map[string]value.Value{"navId": navID})
	}
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return c.session.Call(ctx, "nav", g, c.format)
}

// InvokeAction invokes a user action on a record.
func (c *Client) InvokeAction(ctx context.Context, id value.Ref, action string, args map[string]value.Value) (*value.Grid, error) {
	b := value.NewGridBuilder().
		Meta("id", id).
		Meta("action", value.Str(action))
	if len(args) == 0 {
		b.Col("empty")
	} else {
		names := make([]string, 0, len(args))
		for name := range args {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.Col(name)
		}
		b.Row(args)
	}
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return c.session.Call(ctx, "invokeAction", g, c.format)
}

func filterGrid(filter string, limit int) *value.Grid {
	row := map[string]value.Value{"filter": value.Str(filter)}
	b := value.NewGridBuilder().Col("filter")
	if limit > 0 {
		b.Col("limit")
		row["limit"] = value.Num(float64(limit))
	}
	g, err := b.Row(row).Build()
	if err != nil {
		// The builder only fails on invalid tag names, which are
		// constants here.
		panic(err)
	}
	return g
}
