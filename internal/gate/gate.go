// Package gate implements the command classifier: a pure function from a
// command string to an allow/deny verdict. It performs no I/O and spawns
// nothing, which is what makes it independently testable.
//
// Classification order is fixed: structural shell-control validation, then
// the deny table, then the allow table, then default deny. Deny always runs
// before allow so that an unsafe allow rule added later cannot override an
// explicit denial.
package gate

import (
	"errors"
	"strings"

	"github.com/envdoctor/envdoctor/internal/rules"
)

// Verdict reasons. These are stable strings used in audit output.
const (
	ReasonInvalid     = "invalid command"
	ReasonDangerous   = "matches dangerous pattern"
	ReasonAllowed     = "on allowlist"
	ReasonDefaultDeny = "not on allowlist"
)

// Verdict is the classifier's decision for a single command string.
type Verdict struct {
	Safe    bool
	Reason  string
	Rule    string // name of the matching rule, if any
	Pattern string // source pattern of the matching rule, if any
}

// Classifier evaluates commands against an immutable ruleset.
type Classifier struct {
	rules *rules.Ruleset
}

// New returns a Classifier over the given ruleset.
func New(rs *rules.Ruleset) *Classifier {
	return &Classifier{rules: rs}
}

// Classify decides whether a command may be executed. Pure function of the
// input and the rule tables; calling it twice on the same string yields the
// same verdict.
func (c *Classifier) Classify(cmd string) Verdict {
	if strings.TrimSpace(cmd) == "" {
		return Verdict{Safe: false, Reason: ReasonInvalid}
	}

	norm, err := normalize(cmd)
	if err != nil {
		if errors.Is(err, errUnparseable) {
			return Verdict{Safe: false, Reason: ReasonInvalid}
		}
		return Verdict{Safe: false, Reason: ReasonDangerous}
	}

	// Deny pass runs against both the raw and the normalized form. The raw
	// scan catches anything the printer would smooth over; both scans exist
	// even where they overlap with default-deny outcomes.
	for _, candidate := range [2]string{cmd, norm} {
		for _, p := range c.rules.Deny {
			if p.Regex.MatchString(candidate) {
				return Verdict{
					Safe:    false,
					Reason:  ReasonDangerous,
					Rule:    p.Name,
					Pattern: p.Pattern,
				}
			}
		}
	}

	for _, p := range c.rules.Allow {
		if p.Regex.MatchString(norm) {
			return Verdict{
				Safe:    true,
				Reason:  ReasonAllowed,
				Rule:    p.Name,
				Pattern: p.Pattern,
			}
		}
	}

	return Verdict{Safe: false, Reason: ReasonDefaultDeny}
}
