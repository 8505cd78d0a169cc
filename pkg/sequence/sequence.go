// Package sequence implements the season/episode counter used by the
// sequential strategy. A counter starts from a token such as "s01e01" or a
// bounded range "s01e01-s01e12", pads every generated name to the widest
// number seen so far and can be re-anchored by the operator mid-run.
package sequence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/medialink/pkg/errors"
)

const (
	// DefaultDigits is the padding used when no token is given
	DefaultDigits = 2
)

var (
	tokenPattern = regexp.MustCompile(`(?i)^s(\d+)e(\d+)(?:[,-]s(\d+)e(\d+))?$`)
	pairPattern  = regexp.MustCompile(`(?i)^s(\d+)e(\d+)$`)
)

// Pair is a parsed season/episode literal together with the number of
// digits the caller typed for each part.
type Pair struct {
	Season        int
	Episode       int
	SeasonDigits  int
	EpisodeDigits int
}

// Counter tracks the current season/episode and the padding widths.
// Widths only ever grow.
type Counter struct {
	season        int
	episode       int
	seasonDigits  int
	episodeDigits int

	startSeason  int
	startEpisode int
	ceiling      int
	hasCeiling   bool
}

// New returns the default counter: s01e01, no ceiling.
func New() *Counter {
	return &Counter{
		season:        1,
		episode:       1,
		startSeason:   1,
		startEpisode:  1,
		seasonDigits:  DefaultDigits,
		episodeDigits: DefaultDigits,
	}
}

// Parse builds a counter from a sequence token. An empty token yields the
// default counter.
func Parse(token string) (*Counter, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return New(), nil
	}

	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return nil, errors.Newf(errors.ErrInvalidToken,
			"invalid sequence token %q (expected sXeY or sXeY-sXeZ)", token).
			WithDetail("token", token)
	}

	start, err := pairFromDigits(m[1], m[2])
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidToken, "invalid sequence token %q", token)
	}

	c := &Counter{
		season:        start.Season,
		episode:       start.Episode,
		startSeason:   start.Season,
		startEpisode:  start.Episode,
		seasonDigits:  start.SeasonDigits,
		episodeDigits: start.EpisodeDigits,
	}

	if m[3] == "" {
		return c, nil
	}

	end, err := pairFromDigits(m[3], m[4])
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidToken, "invalid sequence token %q", token)
	}
	if end.Season != start.Season {
		return nil, errors.Newf(errors.ErrSeasonMismatch,
			"season mismatch: range starts in season %d but ends in season %d", start.Season, end.Season).
			WithDetail("token", token)
	}
	if end.Episode <= start.Episode {
		return nil, errors.Newf(errors.ErrEmptyRange,
			"empty range: end episode %d must be greater than start episode %d", end.Episode, start.Episode).
			WithDetail("token", token)
	}

	c.ceiling = end.Episode
	c.hasCeiling = true
	c.grow(end.SeasonDigits, end.EpisodeDigits)
	return c, nil
}

// ParsePair recognises a single "sXeY" literal. ok is false when text is
// not exactly one pair.
func ParsePair(text string) (Pair, bool) {
	m := pairPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Pair{}, false
	}
	p, err := pairFromDigits(m[1], m[2])
	if err != nil {
		return Pair{}, false
	}
	return p, true
}

func pairFromDigits(season, episode string) (Pair, error) {
	s, err := strconv.Atoi(season)
	if err != nil {
		return Pair{}, err
	}
	e, err := strconv.Atoi(episode)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		Season:        s,
		Episode:       e,
		SeasonDigits:  len(season),
		EpisodeDigits: len(episode),
	}, nil
}

// Format renders the current position, e.g. "s01e07".
func (c *Counter) Format() string {
	return fmt.Sprintf("s%0*de%0*d", c.seasonDigits, c.season, c.episodeDigits, c.episode)
}

// Advance moves to the next episode. Seasons never roll over.
func (c *Counter) Advance() {
	c.episode++
}

// Override re-anchors the counter at an explicit position.
func (c *Counter) Override(p Pair) error {
	if c.hasCeiling {
		if p.Season != c.season {
			return errors.Newf(errors.ErrSeasonLocked,
				"season locked: the active range only covers season %d", c.season).
				WithDetail("requested", p.Season)
		}
		if p.Episode > c.ceiling {
			return errors.Newf(errors.ErrBeyondRange,
				"beyond range: episode %d is past the end of the range (%d)", p.Episode, c.ceiling).
				WithDetail("requested", p.Episode)
		}
	}
	c.season = p.Season
	c.episode = p.Episode
	c.grow(p.SeasonDigits, p.EpisodeDigits)
	return nil
}

// ReachedCeiling reports whether the counter has moved past the inclusive
// end of its range. It is always false without a range.
func (c *Counter) ReachedCeiling() bool {
	return c.hasCeiling && c.episode > c.ceiling
}

// Season returns the current season
func (c *Counter) Season() int { return c.season }

// Episode returns the current episode
func (c *Counter) Episode() int { return c.episode }

// Ceiling returns the inclusive last episode and whether a range is active
func (c *Counter) Ceiling() (int, bool) { return c.ceiling, c.hasCeiling }

// Digits returns the current season and episode padding widths
func (c *Counter) Digits() (season, episode int) { return c.seasonDigits, c.episodeDigits }

// String renders the configured range, e.g. "s01e01-s01e12".
func (c *Counter) String() string {
	start := fmt.Sprintf("s%0*de%0*d", c.seasonDigits, c.startSeason, c.episodeDigits, c.startEpisode)
	if !c.hasCeiling {
		return start
	}
	return fmt.Sprintf("%s-s%0*de%0*d", start, c.seasonDigits, c.startSeason, c.episodeDigits, c.ceiling)
}

func (c *Counter) grow(seasonDigits, episodeDigits int) {
	if seasonDigits > c.seasonDigits {
		c.seasonDigits = seasonDigits
	}
	if episodeDigits > c.episodeDigits {
		c.episodeDigits = episodeDigits
	}
}
