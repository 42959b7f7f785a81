package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// SyntaxError is the grammar's single failure kind (spec.md §7): a
// position, the set of things that would have been accepted there, and a
// snippet of what was actually found there instead. Both ordered-choice
// backtracking failures surfaced by participle and post-parse semantic
// rejections (an inverted Cardinality bound, say) are reported through
// this one type — there is no separate "semantic error" kind.
type SyntaxError struct {
	Pos      lexer.Position
	Expected []string
	Found    string
}

func (e *SyntaxError) Error() string {
	msg := e.Pos.String() + ": syntax error"
	if e.Found != "" {
		msg += ": unexpected " + e.Found
	}
	if len(e.Expected) > 0 {
		msg += " (expected " + strings.Join(e.Expected, " or ") + ")"
	}
	return msg
}

// ActionError wraps a failure raised by an action callback attached via
// AttachAction (spec.md §7). Action failures abort the parse immediately;
// they never participate in ordered-choice backtracking the way a
// SyntaxError from a failed alternative does.
type ActionError struct {
	Rule  string
	Cause error
}

func (e *ActionError) Error() string {
	return "action error in rule " + e.Rule + ": " + e.Cause.Error()
}

func (e *ActionError) Unwrap() error { return e.Cause }
