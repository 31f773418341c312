// Package output provides output formatting.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCLI, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want cli or json)", s)
	}
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is one command's result. CLI output renders the table and notes;
// JSON output encodes Data.
type Report struct {
	// Title heads the CLI table
	Title string

	// Columns and Rows form the table body
	Columns []string
	Rows    [][]string

	// Notes are printed under the table
	Notes []string

	// Data is the machine-readable payload
	Data interface{}
}

// New returns the formatter for f
func New(f Format) (Formatter, error) {
	switch f {
	case FormatCLI:
		return &CLIFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("no formatter for %q", f)
	}
}

// CLIFormatter renders a boxed, column-aligned table
type CLIFormatter struct{}

// Format implements Formatter
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render implements Formatter
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	var body strings.Builder
	tw := tabwriter.NewWriter(&body, 0, 0, 3, ' ', 0)
	if len(report.Columns) > 0 {
		fmt.Fprintln(tw, strings.Join(report.Columns, "\t"))
	}
	for _, row := range report.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	lines := strings.Split(strings.TrimRight(body.String(), "\n"), "\n")
	width := len(report.Title)
	for _, l := range lines {
		width = max(width, len(l))
	}

	bar := strings.Repeat("─", width+2)
	var out strings.Builder
	fmt.Fprintf(&out, "┌%s┐\n", bar)
	fmt.Fprintf(&out, "│ %-*s │\n", width, report.Title)
	if len(report.Rows) > 0 || len(report.Columns) > 0 {
		fmt.Fprintf(&out, "├%s┤\n", bar)
		for _, l := range lines {
			fmt.Fprintf(&out, "│ %-*s │\n", width, l)
		}
	}
	fmt.Fprintf(&out, "└%s┘\n", bar)
	for _, n := range report.Notes {
		fmt.Fprintln(&out, n)
	}

	_, err := io.WriteString(w, out.String())
	return err
}

// JSONFormatter encodes the report payload
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render implements Formatter
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(report.Data)
}
