package client

import (
	"context"

	"github.com/haystack-rest/haystack-go/pkg/value"
)

// PointWrite writes val to the point's priority array at the given
// level (1 is highest, 17 is the default level). who is recorded as
// the author; empty means the username. duration, when non-nil,
// limits how long levels 8 and 16 hold.
func (c *Client) PointWrite(ctx context.Context, id value.Ref, level int, val value.Value, who string, duration *value.Number) (*value.Grid, error) {
	row := map[string]value.Value{
		"id":    id,
		"level": value.Num(float64(level)),
		"val":   val,
	}
	b := value.NewGridBuilder().Col("id").Col("level").Col("val")
	if who != "" {
		b.Col("who")
		row["who"] = value.Str(who)
	}
	if duration != nil {
		b.Col("duration")
		row["duration"] = *duration
	}
	g, err := b.Row(row).Build()
	if err != nil {
		return nil, err
	}
	return c.session.Call(ctx, "pointWrite", g, c.format)
}

// PointWriteStatus reads the point's priority array: one row per
// level with its current value and who set it.
func (c *Client) PointWriteStatus(ctx context.Context, id value.Ref) (*value.Grid, error) {
	g, err := value.NewGridBuilder().
		Col("id").
		Row(map[string]value.Value{"id": id}).
		Build()
	if err != nil {
		return nil, err
	}
	return c.session.Call(ctx, "pointWrite", g, c.format)
}
