package client

import (
	"context"

	"github.com/haystack-rest/haystack-go/pkg/value"
)

// HisRange selects the time window of a history read. Construct with
// the Range functions; the zero value is invalid.
type HisRange struct {
	str string
}

// RangeToday selects today in the point's timezone.
func RangeToday() HisRange { return HisRange{str: "today"} }

// RangeYesterday selects yesterday in the point's timezone.
func RangeYesterday() HisRange { return HisRange{str: "yesterday"} }

// RangeDate selects one whole date.
func RangeDate(d value.Date) HisRange {
	return HisRange{str: d.String()}
}

// RangeDateSpan selects from the start of from to the end of to,
// exclusive.
func RangeDateSpan(from, to value.Date) HisRange {
	return HisRange{str: from.String() + "," + to.String()}
}

// RangeDateTimeSpan selects the half-open interval [from, to).
func RangeDateTimeSpan(from, to value.DateTime) HisRange {
	return HisRange{str: from.String() + "," + to.String()}
}

// RangeSince selects everything after the given instant.
func RangeSince(since value.DateTime) HisRange {
	return HisRange{str: since.String()}
}

// String returns the wire form of the range.
func (r HisRange) String() string { return r.str }

// HisRead reads the history of one point over the given range.
func (c *Client) HisRead(ctx context.Context, id value.Ref, r HisRange) (*value.Grid, error) {
	g, err := value.NewGridBuilder().
		Col("id").
		Col("range").
		Row(map[string]value.Value{
			"id":    id,
			"range": value.Str(r.String()),
		}).
		Build()
	if err != nil {
		return nil, err
	}
	return c.session.Call(ctx, "hisRead", g, c.format)
}

// HisItem is one timestamped sample to write.
type HisItem struct {
	TS  value.DateTime
	Val value.Value
}

// BoolItem builds a boolean sample.
func BoolItem(ts value.DateTime, val bool) HisItem {
	return HisItem{TS: ts, Val: value.Bool(val)}
}

// NumItem builds a numeric sample with an optional unit.
func NumItem(ts value.DateTime, val float64, unit string) HisItem {
	return HisItem{TS: ts, Val: value.NumUnit(val, unit)}
}

// StrItem builds a string sample.
func StrItem(ts value.DateTime, val string) HisItem {
	return HisItem{TS: ts, Val: value.Str(val)}
}

// HisWrite writes samples to one point's history. The point id rides
// in the grid meta; rows are ts/val pairs in chronological order.
func (c *Client) HisWrite(ctx context.Context, id value.Ref, items []HisItem) (*value.Grid, error) {
	b := value.NewGridBuilder().
		Meta("id", id).
		Col("ts").
		Col("val")
	for _, item := range items {
		b.Row(map[string]value.Value{
			"ts":  item.TS,
			"val": item.Val,
		})
	}
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return c.session.Call(ctx, "hisWrite", g, c.format)
}
