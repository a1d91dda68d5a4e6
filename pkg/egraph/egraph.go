// Package egraph implements a congruence-closure e-graph over pkg/ds
// terms: a hash-consed set of e-nodes partitioned into e-classes by a
// union-find with path compression, kept congruent by a deferred-repair
// Rebuild rather than eager repair on every Merge.
package egraph

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/dslogic/pkg/ds"
)

// EClassID names an e-class. The zero value is never returned by Add.
type EClassID int

// ENode is an operator applied to child e-classes: the congruence-closure
// analogue of a ds.Term node, except its children are already-canonicalised
// e-class ids rather than sub-terms.
type ENode struct {
	Op       string
	Children []EClassID
}

func (n ENode) key() string {
	var b strings.Builder
	b.WriteString(n.Op)
	b.WriteByte('\x00')
	for _, c := range n.Children {
		fmt.Fprintf(&b, "%d\x00", c)
	}
	return b.String()
}

// listOp is the operator recorded for a ds.List node, per the specification's
// "literal operator "()" for list nodes" convention.
const listOp = "()"

// Option configures an EGraph.
type Option func(*EGraph)

// WithLogger attaches an hclog.Logger tracing add and merge events at
// Trace level. The default is a null logger.
func WithLogger(l hclog.Logger) Option {
	return func(g *EGraph) { g.log = l }
}

// EGraph is not safe for concurrent mutation of one instance.
type EGraph struct {
	log hclog.Logger

	nodes     map[EClassID]map[string]ENode // class -> its member nodes, keyed by structural key
	hashcons  map[string]EClassID           // node key -> canonical class owning it
	parent    []EClassID                    // union-find parent, indexed by EClassID-1
	parents   map[EClassID]map[string]ENode // class -> nodes that reference it as a child (parent back-index)
	worklist  []EClassID                    // classes awaiting repair, deferred until Rebuild
	nextClass EClassID
}

// New builds an empty EGraph.
func New(opts ...Option) *EGraph {
	g := &EGraph{
		log:      hclog.NewNullLogger(),
		nodes:    make(map[EClassID]map[string]ENode),
		hashcons: make(map[string]EClassID),
		parents:  make(map[EClassID]map[string]ENode),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *EGraph) newClass() EClassID {
	g.nextClass++
	id := g.nextClass
	g.parent = append(g.parent, id)
	g.nodes[id] = make(map[string]ENode)
	g.parents[id] = make(map[string]ENode)
	return id
}

// Find returns the canonical representative of id's e-class, compressing
// the union-find path as it walks.
func (g *EGraph) Find(id EClassID) EClassID {
	root := id
	for g.parent[root-1] != root {
		root = g.parent[root-1]
	}
	for g.parent[id-1] != root {
		next := g.parent[id-1]
		g.parent[id-1] = root
		id = next
	}
	return root
}

func (g *EGraph) canonicalize(n ENode) ENode {
	children := make([]EClassID, len(n.Children))
	for i, c := range n.Children {
		children[i] = g.Find(c)
	}
	return ENode{Op: n.Op, Children: children}
}

// Add hash-conses n (after canonicalising its children), returning the
// e-class id for an existing structurally-identical node or creating a new
// singleton e-class otherwise.
func (g *EGraph) Add(n ENode) EClassID {
	n = g.canonicalize(n)
	key := n.key()
	if id, ok := g.hashcons[key]; ok {
		return g.Find(id)
	}
	id := g.newClass()
	g.hashcons[key] = id
	g.nodes[id][key] = n
	for _, c := range n.Children {
		g.parents[c][key] = n
	}
	g.log.Trace("egraph: added", "op", n.Op, "children", n.Children, "class", id)
	return id
}

// AddTerm recurses over t, building ENodes for each List (operator "()")
// and a zero-arity ENode keyed by the rendered form of each Variable/Item
// leaf, and returns the e-class id of the root.
func (g *EGraph) AddTerm(t ds.Term) EClassID {
	if t.IsList() {
		children := make([]EClassID, t.Len())
		for i := 0; i < t.Len(); i++ {
			child, _ := t.Child(i)
			children[i] = g.AddTerm(child)
		}
		return g.Add(ENode{Op: listOp, Children: children})
	}
	return g.Add(ENode{Op: t.String()})
}

// Merge unions the e-classes of a and b and enqueues the result for
// repair; it does not itself restore congruence; call Rebuild to drain the
// worklist to a fixed point. This is the deferred-repair discipline: Merge
// is O(union-find) and Rebuild is the only place congruence is restored.
func (g *EGraph) Merge(a, b EClassID) EClassID {
	ra, rb := g.Find(a), g.Find(b)
	if ra == rb {
		return ra
	}
	// union by size of node set, arbitrary but deterministic tie-break on id
	if len(g.nodes[ra]) < len(g.nodes[rb]) || (len(g.nodes[ra]) == len(g.nodes[rb]) && ra > rb) {
		ra, rb = rb, ra
	}
	g.parent[rb-1] = ra
	for k, n := range g.nodes[rb] {
		g.nodes[ra][k] = n
	}
	delete(g.nodes, rb)
	for k, n := range g.parents[rb] {
		g.parents[ra][k] = n
	}
	delete(g.parents, rb)
	g.worklist = append(g.worklist, ra)
	g.log.Trace("egraph: merged", "into", ra, "absorbed", rb)
	return ra
}

// Rebuild drains the repair worklist to a fixed point: for each touched
// class it re-canonicalises every parent node referencing it (which may
// change that node's hash-cons key) and, whenever two parent nodes now
// canonicalise to the same key, recursively merges their owning classes —
// the congruence closure step. Ported from the teacher pack's eager
// egg-style repair (which ran this inline inside merge) restructured into
// the deferred form: Merge only unions and enqueues, Rebuild is the loop
// that used to live inside merge.
func (g *EGraph) Rebuild() {
	for len(g.worklist) > 0 {
		todo := g.worklist
		g.worklist = nil
		seen := make(map[EClassID]bool)
		for _, id := range todo {
			root := g.Find(id)
			if seen[root] {
				continue
			}
			seen[root] = true
			g.repair(root)
		}
	}
}

func (g *EGraph) repair(class EClassID) {
	parents := g.parents[class]
	newParents := make(map[string]ENode)
	byCanonical := make(map[string]EClassID) // canonical key -> owning class
	for oldKey, n := range parents {
		delete(g.hashcons, oldKey)
		ownerNow := g.classOf(n)
		canon := g.canonicalize(n)
		newKey := canon.key()
		if owner, ok := byCanonical[newKey]; ok {
			if owner != 0 && ownerNow != 0 {
				owner = g.Merge(owner, ownerNow)
			}
			g.hashcons[newKey] = owner
			continue
		}
		byCanonical[newKey] = ownerNow
		newParents[newKey] = canon
		g.hashcons[newKey] = ownerNow
	}
	g.parents[class] = newParents
}

// classOf finds which e-class currently stores n verbatim, used by repair
// to recover a node's owning class after its key has changed.
func (g *EGraph) classOf(n ENode) EClassID {
	key := n.key()
	if id, ok := g.hashcons[key]; ok {
		return g.Find(id)
	}
	for id, members := range g.nodes {
		if _, ok := members[key]; ok {
			return g.Find(id)
		}
	}
	return 0
}
