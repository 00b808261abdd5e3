// Package output routes user-facing CLI output through a mode-aware
// renderer, so commands print plain text for humans and JSON for scripts
// without caring which is active.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Mode selects the output format.
type Mode string

const (
	// ModeText prints human-readable text and tables.
	ModeText Mode = "text"
	// ModeJSON prints machine-readable JSON.
	ModeJSON Mode = "json"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer creates a renderer. Unrecognized modes fall back to text.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode != ModeJSON {
		mode = ModeText
	}
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

// Mode returns the active output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Writer returns the stdout-equivalent writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Println writes a line to standard output.
func (r *Renderer) Println(s string) {
	fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to standard output.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Errorf writes formatted text to error output.
func (r *Renderer) Errorf(format string, args ...any) {
	fmt.Fprintf(r.errOut, format, args...)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes a table with the given header and rows.
func (r *Renderer) Table(header []any, rows [][]any) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}
	t.Render()
}
