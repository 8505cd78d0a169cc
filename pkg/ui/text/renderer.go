// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/medialink/pkg/planner"
	"github.com/arthur-debert/medialink/pkg/ui/preview"
	"github.com/arthur-debert/medialink/pkg/ui/report"
	"github.com/arthur-debert/medialink/pkg/undo"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *planner.Result:
		return r.renderReport(report.FromLink(v))
	case *undo.Result:
		return r.renderReport(report.FromUndo(v))
	case *report.Report:
		return r.renderReport(v)
	case *preview.Preview:
		return r.renderPreview(v)
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderReport(rep *report.Report) error {
	w := &errWriter{w: r.output}
	title := rep.Title
	if rep.DryRun {
		title += " [dry run]"
	}
	w.printf("%s\n", title)
	for _, line := range rep.Lines {
		w.printf("  %-9s %s", line.Status, line.Subject)
		if line.Target != "" {
			w.printf(" -> %s", line.Target)
		}
		if line.Detail != "" {
			w.printf(" (%s)", line.Detail)
		}
		w.printf("\n")
	}
	for _, note := range rep.Notes {
		w.printf("%s\n", note)
	}
	w.printf("%s\n", rep.Summary)
	return w.err
}

func (r *Renderer) renderPreview(p *preview.Preview) error {
	w := &errWriter{w: r.output}
	if !p.Changed() {
		w.printf("Nothing would change in %s\n", p.Destination)
		return w.err
	}
	w.printf("%s", p.Diff)
	for _, name := range p.Replaced {
		w.printf("~%s (replaced)\n", name)
	}
	return w.err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// errWriter keeps the first write error so a report can be printed without
// checking every line
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
