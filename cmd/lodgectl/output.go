package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// emit writes v as indented JSON under --json and hands the terminal to
// render otherwise.
func (c *commandContext) emit(cmd *cobra.Command, v any, render func(io.Writer) error) error {
	out := cmd.OutOrStdout()
	if c.jsonOutput() {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return render(out)
}

// report prints a one-line confirmation, or v as JSON when --json is set.
func (c *commandContext) report(cmd *cobra.Command, v any, format string, args ...any) error {
	return c.emit(cmd, v, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, format+"\n", args...)
		return err
	})
}

// listing is a table of backend records. Cells are typed so the table can lay
// itself out: ints right-align their column, bools print as yes/no and empty
// strings as "-".
type listing struct {
	headers table.Row
	rows    []table.Row
	numeric map[int]bool
	empty   string
}

func newListing(headers ...string) *listing {
	row := make(table.Row, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	return &listing{headers: row, numeric: make(map[int]bool)}
}

// whenEmpty sets the line printed instead of a table with no rows.
func (l *listing) whenEmpty(msg string) *listing {
	l.empty = msg
	return l
}

func (l *listing) add(cells ...any) {
	row := make(table.Row, len(l.headers))
	for i := range row {
		if i >= len(cells) {
			row[i] = "-"
			continue
		}
		switch v := cells[i].(type) {
		case int:
			l.numeric[i] = true
			row[i] = strconv.Itoa(v)
		case bool:
			row[i] = "no"
			if v {
				row[i] = "yes"
			}
		case string:
			row[i] = v
			if v == "" {
				row[i] = "-"
			}
		default:
			row[i] = fmt.Sprint(v)
		}
	}
	l.rows = append(l.rows, row)
}

func (l *listing) write(w io.Writer) error {
	if len(l.rows) == 0 && l.empty != "" {
		_, err := fmt.Fprintln(w, l.empty)
		return err
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(l.headers)
	tw.AppendRows(l.rows)
	configs := make([]table.ColumnConfig, 0, len(l.numeric))
	for i := range l.numeric {
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
