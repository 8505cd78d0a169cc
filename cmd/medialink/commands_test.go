// cmd/medialink/commands_test.go
// TEST TYPE: CLI Integration
// DEPENDENCIES: real filesystem (temp dirs), isolated XDG directories
// PURPOSE: Test the command tree end to end: flags, exit codes and output

package medialink

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	src, dst, ledger string
}

func setup(t *testing.T) cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	root := t.TempDir()
	c := cli{
		src:    filepath.Join(root, "src"),
		dst:    filepath.Join(root, "dst"),
		ledger: filepath.Join(root, "ledger"),
	}
	for _, dir := range []string{c.src, c.dst, filepath.Join(c.src, "Show")} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	for _, name := range []string{"b.mkv", "a.mkv", "notes.txt", "Show/e1.mkv"} {
		require.NoError(t, os.WriteFile(filepath.Join(c.src, name), []byte(name), 0644))
	}
	return c
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCmd()
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLinkSequentialAutoThenUndo(t *testing.T) {
	c := setup(t)

	out, err := execute(t, "", "link", "-s", "-a", "-e", "s02e09", "--ledger", c.ledger, "--format", "text", c.src, c.dst)
	require.NoError(t, err)
	assert.Contains(t, out, "2 linked, 0 skipped, 0 failed")

	for _, name := range []string{"a - s02e09.mkv", "b - s02e10.mkv"} {
		linked, err := os.Stat(filepath.Join(c.dst, name))
		require.NoError(t, err)
		source, err := os.Stat(filepath.Join(c.src, name[:1]+".mkv"))
		require.NoError(t, err)
		assert.True(t, os.SameFile(source, linked), "%s is a hardlink", name)
	}

	out, err = execute(t, "", "undo", "--ledger", c.ledger, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "2 removed")

	entries, err := os.ReadDir(c.dst)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = execute(t, "", "undo", "--ledger", c.ledger)
	assert.Equal(t, errors.ExitNoPriorRun, errors.ExitCode(err))
}

func TestLinkInteractiveReadsStdin(t *testing.T) {
	c := setup(t)

	_, err := execute(t, "\nskip\n", "link", "-s", "--ledger", c.ledger, "--format", "text", c.src, c.dst)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(c.dst, "a - s01e01.mkv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(c.dst, "b - s01e02.mkv"))
	assert.True(t, os.IsNotExist(err))
}

func TestLinkRecursive(t *testing.T) {
	c := setup(t)

	_, err := execute(t, "", "link", "-r", "--ledger", c.ledger, "--format", "text", c.src, c.dst)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(c.dst, "Show", "e1.mkv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(c.dst, "a.mkv"))
	assert.NoError(t, err)
}

func TestLinkDryRun(t *testing.T) {
	c := setup(t)

	out, err := execute(t, "", "link", "--dry-run", "--ledger", c.ledger, "--format", "text", c.src, filepath.Join(c.dst, "new"))
	require.NoError(t, err)

	assert.Contains(t, out, "+a.mkv")
	assert.Contains(t, out, "+b.mkv")
	assert.Contains(t, out, MsgDryRunNotice)
	_, err = os.Stat(filepath.Join(c.dst, "new"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(c.ledger)
	assert.True(t, os.IsNotExist(err))
}

func TestLinkJSON(t *testing.T) {
	c := setup(t)

	out, err := execute(t, "", "link", "--ledger", c.ledger, "--format", "json", c.src, c.dst)
	require.NoError(t, err)
	assert.Contains(t, out, `"strategy": "verbatim"`)
}

func TestLinkExitCodes(t *testing.T) {
	c := setup(t)

	tests := []struct {
		name string
		args []string
		exit int
	}{
		{"no source", []string{"link"}, errors.ExitMissingArgument},
		{"missing source", []string{"link", filepath.Join(c.src, "nope"), c.dst}, errors.ExitSourceNotFound},
		{"missing destination", []string{"link", c.src, filepath.Join(c.dst, "nope")}, errors.ExitDestInvalid},
		{"bad sequence", []string{"link", "-s", "-e", "s2e1-s3e1", c.src, c.dst}, errors.ExitInvalidSequence},
		{"auto without sequential", []string{"link", "-a", c.src, c.dst}, errors.ExitFailure},
		{"exclusive modes", []string{"link", "-r", "-s", c.src, c.dst}, errors.ExitFailure},
		{"bad overwrite policy", []string{"link", "-s", "--overwrite-policy", "sometimes", c.src, c.dst}, errors.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// --ledger is a link flag, so it goes after the subcommand name
			args := append([]string{"link", "--ledger", c.ledger}, tt.args[1:]...)
			_, err := execute(t, "", args...)
			require.Error(t, err)
			assert.Equal(t, tt.exit, errors.ExitCode(err), "%v", err)
		})
	}

	_, err := os.Stat(c.ledger)
	assert.True(t, os.IsNotExist(err), "failed runs leave no ledger")
}

func TestConfigCommand(t *testing.T) {
	setup(t)

	out, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, MsgConfigDefaults)
	assert.Contains(t, out, "[link]")
	assert.Contains(t, out, "blank_collision")

	out, err = execute(t, "", "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "# default_sequence")

	out, err = execute(t, "", "config", "--init")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(xdg.ConfigHome, "medialink", "config.toml"))

	out, err = execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "# loaded from:")
}

func TestGuideAndHelpTopics(t *testing.T) {
	setup(t)

	out, err := execute(t, "", "guide")
	require.NoError(t, err)
	assert.Contains(t, out, "hardlinks")

	out, err = execute(t, "", "guide", "sequences")
	require.NoError(t, err)
	assert.Contains(t, out, "s01e07")

	out, err = execute(t, "", "help", "dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "unified diff")

	_, err = execute(t, "", "guide", "nope")
	assert.Equal(t, errors.ExitMissingArgument, errors.ExitCode(err))
}

func TestVersionAndCompletion(t *testing.T) {
	setup(t)

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "medialink version dev")

	out, err = execute(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "medialink")
}
