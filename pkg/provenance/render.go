package provenance

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Format selects how Render lays out rows.
type Format string

// Table formats.
const (
	FormatRounded  Format = "rounded"
	FormatPlain    Format = "plain"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatVertical Format = "vertical"
)

// Formats lists the supported formats, default first.
var Formats = []Format{FormatRounded, FormatPlain, FormatJSON, FormatCSV, FormatVertical}

// FormatNames returns Formats as strings.
func FormatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return names
}

// Render writes rows to w in the given format.
func Render(w io.Writer, rows []Row, f Format) error {
	switch f {
	case FormatRounded, "":
		return renderRounded(w, rows)
	case FormatPlain:
		return renderPlain(w, rows)
	case FormatJSON:
		return renderJSON(w, rows)
	case FormatCSV:
		return renderCSV(w, rows)
	case FormatVertical:
		return renderVertical(w, rows)
	}
	return fmt.Errorf("unknown table format %q", f)
}

func renderRounded(w io.Writer, rows []Row) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(Headers...)
	for _, r := range rows {
		t.Row(r.Cells()...)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func renderPlain(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(Headers, "\t"))
	for _, r := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(r.Cells(), "\t"))
	}
	return tw.Flush()
}

func renderJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func renderCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Cells()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderVertical(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for i, r := range rows {
		if i > 0 {
			_, _ = fmt.Fprintln(tw)
		}
		_, _ = fmt.Fprintf(tw, "%s\n", strings.Repeat("*", 10)+fmt.Sprintf(" %d. row ", i+1)+strings.Repeat("*", 10))
		for j, cell := range r.Cells() {
			_, _ = fmt.Fprintf(tw, "%s:\t%s\n", Headers[j], cell)
		}
	}
	return tw.Flush()
}
