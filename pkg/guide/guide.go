// Package guide serves medialink's built-in documentation. Topics are
// markdown files embedded in the binary; "guide" is the overview and files
// named option-<flag> document a single flag, so both "help dry-run" and
// "help --dry-run" find option-dry-run.
package guide

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/spf13/cobra"
)

// Overview is the topic shown when none is named
const Overview = "guide"

const optionPrefix = "option-"

//go:embed topics/*.md
var embedded embed.FS

// Topic is one help document
type Topic struct {
	Name    string
	Format  string
	Content string
}

// Manager holds the loaded topics
type Manager struct {
	topics map[string]*Topic
}

// New loads the topics embedded in the binary
func New() (*Manager, error) {
	sub, err := fs.Sub(embedded, "topics")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "embedded guide is missing")
	}
	return Load(sub)
}

// Load reads every .md and .txt file at any depth of fsys as a topic named
// after the file
func Load(fsys fs.FS) (*Manager, error) {
	m := &Manager{topics: make(map[string]*Topic)}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if ext != ".md" && ext != ".txt" {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Format: ext, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to load guide topics")
	}
	return m, nil
}

// Get retrieves a topic by name. Flag-style names (--dry-run) map to
// option- topics.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if topic, ok := m.topics[name]; ok {
		return topic, true
	}
	topic, ok := m.topics[optionPrefix+name]
	return topic, ok
}

// List returns all topic names in order
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Show writes a rendered topic to w
func (m *Manager) Show(w io.Writer, name string, r Renderer) error {
	topic, ok := m.Get(name)
	if !ok {
		return errors.Newf(errors.ErrMissingArgument, "no guide topic named %q", name).
			WithDetail("topics", m.List())
	}
	_, err := io.WriteString(w, r.Render(topic.Content, topic.Format))
	return err
}

// WriteIndex lists the topics, general ones first, then flag topics
func (m *Manager) WriteIndex(w io.Writer, appName string) error {
	var general, options []string
	for _, name := range m.List() {
		if strings.HasPrefix(name, optionPrefix) {
			options = append(options, "--"+strings.TrimPrefix(name, optionPrefix))
		} else {
			general = append(general, name)
		}
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	if len(general) > 0 {
		b.WriteString("\nGeneral topics:\n")
		for _, name := range general {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		b.WriteString("\nOption topics:\n")
		for _, name := range options {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", appName)
	_, err := io.WriteString(w, b.String())
	return err
}

// Install replaces the root command's help command so that it also serves
// topics. "help topics" lists them; anything that is not a topic falls back
// to cobra's command help.
func Install(rootCmd *cobra.Command, m *Manager, renderer func() Renderer) {
	originalHelp := rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.List()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				originalHelp(rootCmd, []string{})
				return nil
			}
			if args[0] == "topics" {
				return m.WriteIndex(cmd.OutOrStdout(), rootCmd.Name())
			}
			if _, ok := m.Get(args[0]); ok {
				return m.Show(cmd.OutOrStdout(), args[0], renderer())
			}
			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				target = rootCmd
			}
			originalHelp(target, args)
			return nil
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.SetHelpCommand(helpCmd)
}
