package value

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes the grid as CSV: a header row of column names, then
// one record per row. Nested structures are not expanded; a Dict cell
// renders as "<Dict>", a List as "<List>", a Grid as "<Grid>".
// Absent cells and explicit nulls both render as empty fields, since
// CSV cannot express the distinction.
func (g *Grid) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(g.ColNames()); err != nil {
		return err
	}
	record := make([]string, len(g.cols))
	for _, row := range g.rows {
		for i, col := range g.cols {
			v, ok := row.Get(col.name)
			if !ok {
				record[i] = ""
				continue
			}
			record[i] = csvCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvCell(v Value) string {
	switch cell := v.(type) {
	case Null:
		return ""
	case Marker:
		return "✓"
	case Remove:
		return "remove"
	case NA:
		return "NA"
	case Bool:
		if cell {
			return "true"
		}
		return "false"
	case Number:
		return cell.String()
	case Str:
		return string(cell)
	case Uri:
		return string(cell)
	case Ref:
		if cell.dis != "" {
			return cell.dis
		}
		return "@" + cell.id
	case Date:
		return cell.String()
	case Time:
		return cell.String()
	case DateTime:
		return cell.String()
	case Coord:
		return cell.String()
	case XStr:
		return cell.Type + "(" + cell.Val + ")"
	case List:
		return "<List>"
	case Dict:
		return "<Dict>"
	case *Grid:
		return "<Grid>"
	default:
		return ""
	}
}
