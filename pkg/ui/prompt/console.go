// Package prompt implements the collision prompter on a console: questions
// go to an output stream and answers are read line by line from an input
// stream.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/arthur-debert/medialink/pkg/resolver"
	"github.com/arthur-debert/medialink/pkg/types"
	"github.com/arthur-debert/medialink/pkg/ui/output/styles"
	"github.com/rs/zerolog"
)

// Console asks questions on out and reads answers from in
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	logger zerolog.Logger
}

// NewConsole creates a console prompter
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logging.GetLogger("prompt"),
	}
}

// Ask implements resolver.Prompter
func (c *Console) Ask(p resolver.Prompt) (string, error) {
	if p.Message != "" {
		c.printf("%s\n", styles.Render("Warning", p.Message))
	}
	c.printf("%s\n", question(p))
	c.printf("%s\n", styles.Render("Hint", Hint(p)))
	c.printf("%s ", styles.Render("Prompt", ">"))

	answer, err := c.readLine()
	if err != nil {
		return "", err
	}
	c.logger.Debug().Str("proposed", p.Proposed).Str("answer", answer).Msg("prompt answered")
	return answer, nil
}

// Confirm implements resolver.Prompter. Only y or yes confirm.
func (c *Console) Confirm(q string) (bool, error) {
	c.printf("%s %s ", styles.Render("Prompt", q), styles.Render("Hint", "[y/N]"))
	answer, err := c.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Notify implements resolver.Prompter
func (c *Console) Notify(message string) {
	c.printf("%s\n", styles.Render("Info", message))
}

// readLine returns one line without its terminator. A final line without a
// newline is still an answer; io.EOF is only returned when nothing was read.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func question(p resolver.Prompt) string {
	name := styles.Render("Path", p.Proposed)
	if !p.Collision {
		return fmt.Sprintf("%s will be linked as %s", filepath.Base(p.Source), name)
	}
	what := "file"
	if p.ExistingKind == types.KindDir {
		what = "directory"
	}
	return fmt.Sprintf("A %s named %s already exists in %s", what, name, styles.Render("Path", p.Dir))
}

// Hint explains which answers the prompt accepts
func Hint(p resolver.Prompt) string {
	var parts []string
	switch {
	case p.Policy == resolver.PolicyDefaultAccept && !p.Collision:
		parts = append(parts, "enter accepts the name")
	case p.Policy == resolver.PolicyDefaultAccept && p.Blank == resolver.BlankOverwrite:
		parts = append(parts, "enter replaces the existing "+p.ExistingKind.String())
	case p.Policy == resolver.PolicyDefaultAccept && p.Blank == resolver.BlankConfirm:
		parts = append(parts, "enter replaces it after confirmation")
	default:
		parts = append(parts, "type a new name")
	}
	if p.AllowReanchor {
		parts = append(parts, "a sequence such as s01e05 re-anchors the counter")
	}
	parts = append(parts,
		fmt.Sprintf("%q skips", p.Sentinels.Skip),
		fmt.Sprintf("%q ends the run", p.Sentinels.End))
	return strings.Join(parts, "; ")
}
