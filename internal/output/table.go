package output

import (
	"fmt"
	"sort"
	"strings"
)

// preferredColumns orders well-known fields ahead of the alphabetical rest.
var preferredColumns = []string{"id", "title", "name", "status", "due_on", "created_at"}

// writeTable renders a Response as a plain text table, one row per item.
// Error responses render as "error: message" with an optional hint line.
func (w *Writer) writeTable(v any) error {
	switch resp := v.(type) {
	case *Response:
		return w.writeDataTable(resp)
	case *ErrorResponse:
		fmt.Fprintf(w.opts.Writer, "error: %s\n", resp.Error)
		if resp.Hint != "" {
			fmt.Fprintf(w.opts.Writer, "hint: %s\n", resp.Hint)
		}
		return nil
	default:
		return w.writeJSON(v)
	}
}

func (w *Writer) writeDataTable(resp *Response) error {
	if resp.Summary != "" {
		fmt.Fprintln(w.opts.Writer, resp.Summary)
	}

	switch d := normalizeData(resp.Data).(type) {
	case []map[string]any:
		if len(d) == 0 {
			fmt.Fprintln(w.opts.Writer, "(no results)")
			return nil
		}
		w.renderRows(d)
	case map[string]any:
		w.renderRecord(d)
	case nil:
		// Summary-only response.
	default:
		return w.writeJSON(resp.Data)
	}
	return nil
}

func (w *Writer) renderRows(rows []map[string]any) {
	cols := columnOrder(rows[0])

	widths := make([]int, len(cols))
	cells := make([][]string, 0, len(rows))
	for i, c := range cols {
		widths[i] = len(c)
	}
	for _, row := range rows {
		line := make([]string, len(cols))
		for i, c := range cols {
			line[i] = cellValue(row[c])
			if len(line[i]) > widths[i] {
				widths[i] = len(line[i])
			}
		}
		cells = append(cells, line)
	}

	var b strings.Builder
	for i, c := range cols {
		fmt.Fprintf(&b, "%-*s  ", widths[i], strings.ToUpper(c))
	}
	fmt.Fprintln(w.opts.Writer, strings.TrimRight(b.String(), " "))

	for _, line := range cells {
		b.Reset()
		for i, cell := range line {
			fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
		}
		fmt.Fprintln(w.opts.Writer, strings.TrimRight(b.String(), " "))
	}
}

func (w *Writer) renderRecord(record map[string]any) {
	cols := columnOrder(record)
	for _, c := range cols {
		fmt.Fprintf(w.opts.Writer, "%s: %s\n", c, cellValue(record[c]))
	}
}

func columnOrder(row map[string]any) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, c := range preferredColumns {
		if _, ok := row[c]; ok {
			cols = append(cols, c)
			seen[c] = true
		}
	}
	var rest []string
	for c := range row {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(cols, rest...)
}

func cellValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			parts = append(parts, cellValue(p))
		}
		return strings.Join(parts, ", ")
	case string:
		// Keep table rows on one line.
		if i := strings.IndexByte(val, '\n'); i >= 0 {
			val = val[:i] + "…"
		}
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
