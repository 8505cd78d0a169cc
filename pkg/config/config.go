package config

import (
	"strings"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/resolver"
	"github.com/pelletier/go-toml/v2"
)

// Config is the effective medialink configuration
type Config struct {
	Link   Link   `koanf:"link" toml:"link"`
	Prompt Prompt `koanf:"prompt" toml:"prompt"`
	Ledger Ledger `koanf:"ledger" toml:"ledger"`
	Output Output `koanf:"output" toml:"output"`

	// Sources lists the files that contributed to this configuration
	Sources []string `koanf:"-" toml:"-"`
}

// Link holds discovery and naming settings
type Link struct {
	MediaExtensions []string `koanf:"media_extensions" toml:"media_extensions"`
	DefaultSequence string   `koanf:"default_sequence" toml:"default_sequence"`
}

// Prompt holds the collision protocol settings
type Prompt struct {
	Skip           string `koanf:"skip" toml:"skip"`
	End            string `koanf:"end" toml:"end"`
	BlankCollision string `koanf:"blank_collision" toml:"blank_collision"`
}

// Ledger holds undo log settings
type Ledger struct {
	Path string `koanf:"path" toml:"path"`
}

// Output holds rendering settings
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

var outputFormats = map[string]bool{"auto": true, "term": true, "text": true, "json": true}

// Validate checks values that cannot be expressed by the TOML types alone
func (c *Config) Validate() error {
	if _, ok := resolver.ParseBlankPolicy(c.Prompt.BlankCollision); !ok {
		return errors.Newf(errors.ErrConfigInvalid,
			"prompt.blank_collision must be overwrite, confirm or reprompt, got %q", c.Prompt.BlankCollision)
	}
	if !outputFormats[strings.ToLower(c.Output.Format)] {
		return errors.Newf(errors.ErrConfigInvalid,
			"output.format must be auto, term, text or json, got %q", c.Output.Format)
	}
	if strings.TrimSpace(c.Prompt.Skip) == "" || strings.TrimSpace(c.Prompt.End) == "" {
		return errors.New(errors.ErrConfigInvalid, "prompt.skip and prompt.end cannot be blank")
	}
	if strings.EqualFold(strings.TrimSpace(c.Prompt.Skip), strings.TrimSpace(c.Prompt.End)) {
		return errors.New(errors.ErrConfigInvalid, "prompt.skip and prompt.end must differ")
	}
	return nil
}

// ResolverOptions converts the prompt settings for the resolver
func (c *Config) ResolverOptions() resolver.Options {
	blank, _ := resolver.ParseBlankPolicy(c.Prompt.BlankCollision)
	return resolver.Options{
		Sentinels: resolver.Sentinels{
			Skip: strings.TrimSpace(c.Prompt.Skip),
			End:  strings.TrimSpace(c.Prompt.End),
		},
		Blank: blank,
	}
}

// TOML renders the configuration as a TOML document
func (c *Config) TOML() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot encode configuration")
	}
	return string(data), nil
}
