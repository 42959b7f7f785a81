package grammar

import (
	"sync"

	"github.com/davebshow/cypher-ro/ast"
)

// ActionFunc rewrites a node after its rule has finished parsing. It
// returns the node to keep in the tree — either n itself, unchanged, or a
// replacement.
type ActionFunc func(n *ast.Node) (*ast.Node, error)

type actionEntry struct {
	id uint64
	fn ActionFunc
}

// ActionHandle identifies one attached action for later Detach.
type ActionHandle struct {
	tag ast.RuleTag
	id  uint64
}

// ActionRegistry holds the rule-tag -> rewrite-callback bindings applied
// after a production succeeds (spec.md §4.6's attach_action). Participle
// has no native post-parse hook mechanism, so this is a separate
// tree-walking pass run after a rule's toAST conversion: hooks registered
// for a given rule compose in registration order, each seeing the
// previous hook's rewritten node.
type ActionRegistry struct {
	mu     sync.Mutex
	nextID uint64
	byTag  map[ast.RuleTag][]actionEntry
}

// NewActionRegistry returns an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{byTag: make(map[ast.RuleTag][]actionEntry)}
}

// Attach registers fn to run whenever a node tagged tag is built.
func (r *ActionRegistry) Attach(tag ast.RuleTag, fn ActionFunc) ActionHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.byTag[tag] = append(r.byTag[tag], actionEntry{id: id, fn: fn})
	return ActionHandle{tag: tag, id: id}
}

// Detach removes a previously attached action. A handle that is already
// detached, or was never valid, is silently ignored.
func (r *ActionRegistry) Detach(h ActionHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.byTag[h.tag]
	for i, e := range entries {
		if e.id == h.id {
			r.byTag[h.tag] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Apply walks n post-order — children rewritten before their parent, so a
// parent's action observes already-rewritten children — running every
// action registered for each node's tag, in registration order. The
// first action error aborts the walk and comes back wrapped as an
// *ActionError, per spec.md §7 ("action errors abort immediately").
func (r *ActionRegistry) Apply(n *ast.Node) (*ast.Node, error) {
	if n == nil {
		return nil, nil
	}
	for i, child := range n.Children {
		childNode, ok := child.(*ast.Node)
		if !ok {
			continue
		}
		rewritten, err := r.Apply(childNode)
		if err != nil {
			return nil, err
		}
		n.Children[i] = rewritten
	}

	r.mu.Lock()
	entries := append([]actionEntry(nil), r.byTag[n.Tag]...)
	r.mu.Unlock()

	cur := n
	for _, e := range entries {
		next, err := e.fn(cur)
		if err != nil {
			return nil, &ActionError{Rule: n.Tag.String(), Cause: err}
		}
		cur = next
	}
	return cur, nil
}
