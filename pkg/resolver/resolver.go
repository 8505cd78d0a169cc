// Package resolver decides the final name of every entry the planner is
// about to create. Names that do not collide are accepted as-is; a
// collision runs the collision protocol, which always ends in a name, a
// skip, an abort of the whole run or a counter re-anchor. None of these
// outcomes are errors.
package resolver

import (
	"fmt"

	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/arthur-debert/medialink/pkg/sequence"
	"github.com/arthur-debert/medialink/pkg/snapshot"
	"github.com/arthur-debert/medialink/pkg/types"
	"github.com/rs/zerolog"
)

// Prompt describes one question put to the operator
type Prompt struct {
	Source        string
	Dir           string
	Proposed      string
	Kind          types.EntryKind
	Collision     bool
	ExistingKind  types.EntryKind
	Policy        Policy
	Blank         BlankPolicy
	Sentinels     Sentinels
	AllowReanchor bool
	// Message explains why the question is being repeated, if it is
	Message string
}

// Prompter is the I/O boundary of the collision protocol
type Prompter interface {
	// Ask blocks until the operator answers with one line
	Ask(p Prompt) (string, error)
	// Confirm asks a yes/no question
	Confirm(question string) (bool, error)
	// Notify shows a message without waiting for an answer
	Notify(message string)
}

// Request describes the entry to be named
type Request struct {
	Source string
	// Base is the default base name handed to Compose
	Base string
	// Compose builds the entry name from a base name. nil means identity.
	Compose func(base string) string
	Kind    types.EntryKind
	Policy  Policy
	// AlwaysAsk prompts even when the proposed name is free
	AlwaysAsk     bool
	AllowReanchor bool
}

// Action tags an Outcome
type Action int

const (
	ActionCreate Action = iota
	ActionSkip
	ActionAbort
	ActionReanchor
)

// String returns the action name used in logs
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionSkip:
		return "skip"
	case ActionAbort:
		return "abort"
	case ActionReanchor:
		return "reanchor"
	default:
		return "unknown"
	}
}

// Outcome is the result of resolving one Request
type Outcome struct {
	Action Action
	Name   string
	// Overwrite is set when the operator accepted a name that already
	// exists as a file
	Overwrite bool
	Pair      sequence.Pair
}

// Options configures a Resolver
type Options struct {
	Sentinels Sentinels
	Blank     BlankPolicy
}

// Resolver runs the collision protocol against a snapshot
type Resolver struct {
	prompter  Prompter
	sentinels Sentinels
	blank     BlankPolicy
	logger    zerolog.Logger
}

// New creates a Resolver. prompter may be nil when only PolicySkipExisting
// requests will be resolved.
func New(prompter Prompter, opts Options) *Resolver {
	if opts.Sentinels == (Sentinels{}) {
		opts.Sentinels = DefaultSentinels()
	}
	if opts.Blank == "" {
		opts.Blank = BlankOverwrite
	}
	return &Resolver{
		prompter:  prompter,
		sentinels: opts.Sentinels,
		blank:     opts.Blank,
		logger:    logging.GetLogger("resolver"),
	}
}

// Resolve returns the outcome for req inside the directory described by snap.
func (r *Resolver) Resolve(snap *snapshot.Snapshot, req Request) Outcome {
	compose := req.Compose
	if compose == nil {
		compose = func(base string) string { return base }
	}

	name := compose(req.Base)
	existing, collides := snap.Contains(name)

	if !collides && !req.AlwaysAsk {
		return Outcome{Action: ActionCreate, Name: name}
	}
	if collides && req.Policy == PolicySkipExisting {
		r.logger.Debug().
			Str("name", name).
			Str("dir", snap.Dir()).
			Msg("Target exists, skipping")
		return Outcome{Action: ActionSkip, Name: name}
	}
	if r.prompter == nil {
		r.logger.Warn().Str("name", name).Msg("Collision needs a decision but no prompter is available")
		return Outcome{Action: ActionAbort, Name: name}
	}

	ctx := Context{
		Policy:        req.Policy,
		Blank:         r.blank,
		Sentinels:     r.sentinels,
		AllowReanchor: req.AllowReanchor,
	}

	message := ""
	for {
		answer, err := r.prompter.Ask(Prompt{
			Source:        req.Source,
			Dir:           snap.Dir(),
			Proposed:      name,
			Kind:          req.Kind,
			Collision:     collides,
			ExistingKind:  existing,
			Policy:        req.Policy,
			Blank:         r.blank,
			Sentinels:     r.sentinels,
			AllowReanchor: req.AllowReanchor,
			Message:       message,
		})
		if err != nil {
			r.logger.Warn().Err(err).Msg("Prompt failed, ending run")
			return Outcome{Action: ActionAbort, Name: name}
		}
		message = ""

		ctx.Collision = collides
		d := Decide(answer, ctx)
		r.logger.Debug().
			Str("proposed", name).
			Str("policy", req.Policy.String()).
			Int("decision", int(d.Kind)).
			Msg("Prompt answered")

		switch d.Kind {
		case DecisionInvalid:
			message = d.Reason

		case DecisionSkip:
			return Outcome{Action: ActionSkip, Name: name}

		case DecisionAbortAll:
			return Outcome{Action: ActionAbort, Name: name}

		case DecisionReanchor:
			return Outcome{Action: ActionReanchor, Name: name, Pair: d.Pair}

		case DecisionAccept:
			if !collides {
				return Outcome{Action: ActionCreate, Name: name}
			}
			if existing == types.KindDir || req.Kind == types.KindDir {
				message = fmt.Sprintf("%q is a directory and cannot be replaced", name)
				continue
			}
			if r.blank == BlankConfirm {
				ok, err := r.prompter.Confirm(fmt.Sprintf("Replace existing %q?", name))
				if err != nil {
					r.logger.Warn().Err(err).Msg("Confirmation failed, ending run")
					return Outcome{Action: ActionAbort, Name: name}
				}
				if !ok {
					continue
				}
			}
			return Outcome{Action: ActionCreate, Name: name, Overwrite: true}

		case DecisionRename:
			candidate := compose(d.Name)
			kind, taken := snap.Contains(candidate)
			if !taken {
				return Outcome{Action: ActionCreate, Name: candidate}
			}
			name, existing, collides = candidate, kind, true
			message = fmt.Sprintf("%q already exists", candidate)
		}
	}
}
