// Package genconfig prints or writes a starter configuration file
package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/medialink/pkg/config"
	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/filesystem"
	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/arthur-debert/medialink/pkg/paths"
	"github.com/arthur-debert/medialink/pkg/types"
)

// Options holds options for the config --init command
type Options struct {
	FS types.FS
	// Write stores the template instead of only returning it
	Write bool
	// Path overrides the user config location
	Path string
}

// Result holds the template and any file written
type Result struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
}

// GenConfig returns the commented-out defaults and, with Write, stores them
// as the user config file unless one already exists
func GenConfig(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	result := &Result{
		ConfigContent: config.GenerateConfigContent(),
		FilesWritten:  []string{},
	}
	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	target := opts.Path
	if target == "" {
		target = filepath.Join(paths.ConfigDir(), "config.toml")
	}
	target, err := paths.Normalize(target)
	if err != nil {
		return result, err
	}

	if _, err := opts.FS.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	}
	if err := opts.FS.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileAccess, "failed to create directory %s", filepath.Dir(target))
	}
	if err := opts.FS.WriteFile(target, []byte(result.ConfigContent), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileAccess, "failed to write config to %s", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
