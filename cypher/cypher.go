// Package cypher is the public driver facade over the grammar package
// (spec.md §1): a pure recognizer for the read-only Cypher subset, with
// named-rule lookup and an attachable action-rewriting layer. It holds no
// package-level mutable state of its own beyond what a Driver's action
// registry needs, performs no I/O, and does not spawn goroutines — the
// concurrency contract of spec.md §5 is satisfied by having nothing to
// race.
package cypher

import (
	"fmt"

	"github.com/davebshow/cypher-ro/ast"
	"github.com/davebshow/cypher-ro/grammar"
)

// Rule is one named production reachable via NamedRule.
type Rule = grammar.Rule

// SyntaxError and ActionError are the two failure kinds spec.md §7
// describes: the grammar's single parse-failure kind, and a wrapped
// failure from an attached action callback.
type (
	SyntaxError = grammar.SyntaxError
	ActionError = grammar.ActionError
)

// ActionFunc and ActionHandle let callers rewrite the parse tree after
// the fact (spec.md §4.6's attach_action).
type (
	ActionFunc   = grammar.ActionFunc
	ActionHandle = grammar.ActionHandle
)

// NamedRule looks up a single production by name.
func NamedRule(name string) (Rule, bool) { return grammar.NamedRule(name) }

// RuleNames lists every production reachable via NamedRule.
func RuleNames() []string { return grammar.RuleNames() }

// Parse recognizes text against the named start rule with no actions
// attached — the common case for a one-off recognition.
func Parse(text, startRule string) (*ast.Node, error) {
	rule, ok := grammar.NamedRule(startRule)
	if !ok {
		return nil, fmt.Errorf("cypher: unknown rule %q", startRule)
	}
	return rule.Parse(text)
}

// Driver binds one action registry to repeated Parse calls: actions
// attached via AttachAction apply to every subsequent Parse until
// detached.
type Driver struct {
	actions *grammar.ActionRegistry
}

// NewDriver returns a Driver with no actions attached.
func NewDriver() *Driver {
	return &Driver{actions: grammar.NewActionRegistry()}
}

// AttachAction registers fn to run on every node tagged with ruleName,
// across subsequent Parse calls on this Driver, until Detach.
func (d *Driver) AttachAction(ruleName string, fn ActionFunc) (ActionHandle, error) {
	tag, ok := ast.RuleTagByName(ruleName)
	if !ok {
		return ActionHandle{}, fmt.Errorf("cypher: unknown rule %q", ruleName)
	}
	return d.actions.Attach(tag, fn), nil
}

// Detach removes a previously attached action.
func (d *Driver) Detach(h ActionHandle) { d.actions.Detach(h) }

// Parse recognizes text against the named start rule and runs this
// Driver's attached actions over the resulting tree.
func (d *Driver) Parse(text, startRule string) (*ast.Node, error) {
	rule, ok := grammar.NamedRule(startRule)
	if !ok {
		return nil, fmt.Errorf("cypher: unknown rule %q", startRule)
	}
	n, err := rule.Parse(text)
	if err != nil {
		return nil, err
	}
	return d.actions.Apply(n)
}
