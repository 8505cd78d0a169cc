// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/planner"
	"github.com/arthur-debert/medialink/pkg/ui/output/styles"
	"github.com/arthur-debert/medialink/pkg/ui/preview"
	"github.com/arthur-debert/medialink/pkg/ui/report"
	"github.com/arthur-debert/medialink/pkg/undo"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using pterm badges and the
// lipgloss styles registry
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
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

// statusStyle returns the badge style for a report status
func statusStyle(status report.Status) *pterm.Style {
	switch status {
	case report.StatusLinked, report.StatusRemoved:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case report.StatusOverwrote:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case report.StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case report.StatusPlanned:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

func (r *Renderer) renderReport(rep *report.Report) error {
	var b strings.Builder

	title := styles.Render("Header", rep.Title)
	if rep.DryRun {
		title += " " + styles.Render("Muted", "[dry run]")
	}
	b.WriteString(title + "\n")

	for _, line := range rep.Lines {
		badge := statusStyle(line.Status).Sprint(fmt.Sprintf("%-9s", line.Status))
		b.WriteString("  " + badge + " " + line.Subject)
		if line.Target != "" {
			b.WriteString(" " + styles.Render("Muted", "→") + " " + styles.Render("Path", line.Target))
		}
		if line.Detail != "" {
			detailStyle := "Sequence"
			if line.Status == report.StatusFailed {
				detailStyle = "Error"
			}
			b.WriteString(" " + styles.Render(detailStyle, line.Detail))
		}
		b.WriteString("\n")
	}

	for _, note := range rep.Notes {
		b.WriteString(styles.Render("Warning", note) + "\n")
	}

	summaryStyle := "Success"
	if rep.Count(report.StatusFailed) > 0 {
		summaryStyle = "Error"
	}
	b.WriteString("\n" + styles.Render(summaryStyle, rep.Summary) + "\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderPreview(p *preview.Preview) error {
	var b strings.Builder

	if !p.Changed() {
		b.WriteString(styles.Render("Info", "Nothing would change in "+p.Destination) + "\n")
		_, err := io.WriteString(r.output, b.String())
		return err
	}

	for _, line := range strings.SplitAfter(p.Diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"), strings.HasPrefix(text, "@@"):
			text = styles.Render("DiffMeta", text)
		case strings.HasPrefix(text, "+"):
			text = styles.Render("DiffAdd", text)
		case strings.HasPrefix(text, "-"):
			text = styles.Render("DiffRemove", text)
		}
		b.WriteString(text + "\n")
	}
	for _, name := range p.Replaced {
		b.WriteString(styles.Render("Warning", "~"+name+" (replaced)") + "\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	msg := err.Error()
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		msg = fmt.Sprintf("%s %s", msg, styles.Render("Muted", "("+string(code)+")"))
	}
	_, werr := fmt.Fprintf(r.output, "%s %s\n", pterm.Error.Prefix.Style.Sprint(pterm.Error.Prefix.Text), msg)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", pterm.Info.Prefix.Style.Sprint(pterm.Info.Prefix.Text), styles.Render("Info", msg))
	return err
}
