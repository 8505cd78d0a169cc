package resolver

import (
	"strings"

	"github.com/arthur-debert/medialink/pkg/sequence"
)

// Policy selects how a collision on the proposed name is handled
type Policy int

const (
	// PolicySkipExisting silently skips the item on collision, no prompt.
	PolicySkipExisting Policy = iota
	// PolicyRenameRequired prompts on collision; a blank answer is invalid.
	PolicyRenameRequired
	// PolicyDefaultAccept prompts on collision; a blank answer keeps the
	// proposed name, replacing the existing file.
	PolicyDefaultAccept
)

// String returns the policy name used in logs
func (p Policy) String() string {
	switch p {
	case PolicySkipExisting:
		return "skip-existing"
	case PolicyRenameRequired:
		return "rename-required"
	case PolicyDefaultAccept:
		return "default-accept"
	default:
		return "unknown"
	}
}

// BlankPolicy decides what an empty answer means under PolicyDefaultAccept
// when the proposed name already exists.
type BlankPolicy string

const (
	BlankOverwrite BlankPolicy = "overwrite"
	BlankConfirm   BlankPolicy = "confirm"
	BlankReprompt  BlankPolicy = "reprompt"
)

// ParseBlankPolicy validates a configured blank policy
func ParseBlankPolicy(s string) (BlankPolicy, bool) {
	switch BlankPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case BlankOverwrite, "":
		return BlankOverwrite, true
	case BlankConfirm:
		return BlankConfirm, true
	case BlankReprompt:
		return BlankReprompt, true
	}
	return "", false
}

// Sentinels are the answers that skip the current item or end the run
type Sentinels struct {
	Skip string
	End  string
}

// DefaultSentinels returns the built-in sentinel words
func DefaultSentinels() Sentinels {
	return Sentinels{Skip: "skip", End: "end"}
}

// DecisionKind tags a Decision
type DecisionKind int

const (
	DecisionAccept DecisionKind = iota
	DecisionRename
	DecisionSkip
	DecisionAbortAll
	DecisionReanchor
	DecisionInvalid
)

// Decision is the interpretation of one operator answer
type Decision struct {
	Kind   DecisionKind
	Name   string        // DecisionRename
	Pair   sequence.Pair // DecisionReanchor
	Reason string        // DecisionInvalid
}

// Context carries what Decide needs to interpret an answer
type Context struct {
	Policy        Policy
	Blank         BlankPolicy
	Sentinels     Sentinels
	AllowReanchor bool
	// Collision is set when the proposed name already exists
	Collision bool
}

// Decide interprets a raw answer. It performs no I/O.
func Decide(response string, ctx Context) Decision {
	answer := strings.TrimSpace(response)

	if answer == "" {
		if ctx.Policy == PolicyDefaultAccept && (ctx.Blank != BlankReprompt || !ctx.Collision) {
			return Decision{Kind: DecisionAccept}
		}
		return Decision{Kind: DecisionInvalid, Reason: "a name is required"}
	}

	if ctx.Sentinels.Skip != "" && strings.EqualFold(answer, ctx.Sentinels.Skip) {
		return Decision{Kind: DecisionSkip}
	}
	if ctx.Sentinels.End != "" && strings.EqualFold(answer, ctx.Sentinels.End) {
		return Decision{Kind: DecisionAbortAll}
	}

	if ctx.AllowReanchor {
		if pair, ok := sequence.ParsePair(answer); ok {
			return Decision{Kind: DecisionReanchor, Pair: pair}
		}
	}

	if reason := invalidName(answer); reason != "" {
		return Decision{Kind: DecisionInvalid, Reason: reason}
	}

	return Decision{Kind: DecisionRename, Name: answer}
}

func invalidName(name string) string {
	if name == "." || name == ".." {
		return "name cannot be . or .."
	}
	if strings.ContainsAny(name, `/\`) {
		return "name cannot contain a path separator"
	}
	if strings.ContainsRune(name, 0) {
		return "name cannot contain NUL"
	}
	if strings.ContainsAny(name, "\r\n") {
		return "name cannot contain a line break"
	}
	return ""
}
