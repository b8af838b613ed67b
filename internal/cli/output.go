package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Table is a header plus rows for FormatTable.
type Table struct {
	Header []string
	Rows   [][]string
}

type Printer struct {
	out    io.Writer
	format string
}

func NewPrinter(out io.Writer, format string) (*Printer, error) {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return &Printer{out: out, format: format}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
}

// Print writes v in the printer's format. In table format the table
// function renders v; a nil table function falls back to YAML.
func (p *Printer) Print(v any, table func() Table) error {
	switch {
	case p.format == FormatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case p.format == FormatTable && table != nil:
		return p.table(table())
	default:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
}

// Message writes a one-line status such as a submission outcome.
func (p *Printer) Message(ok bool, msg string) {
	mark := "✔"
	if !ok {
		mark = "✖"
	}
	fmt.Fprintf(p.out, "%s %s\n", mark, msg)
}

func (p *Printer) table(t Table) error {
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Header, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
