package engine

import (
	"slices"

	stacktrackerrors "stacktrack.dev/stacktrack/internal/errors"
)

// Node is one tracked branch
type Node struct {
	Name    string
	SHA     string
	Base    string // fork point from the parent's tip, empty for trunk
	PullURL string
}

// Edge links a parent branch to a child stacked on it
type Edge struct {
	Parent string
	Child  string
}

// Graph is the tracked tree of branches. Nodes and edges keep insertion order.
type Graph struct {
	order    []string
	nodes    map[string]*Node
	edges    []Edge
	parent   map[string]string
	children map[string][]string
}

// NewGraph returns an empty graph
func NewGraph() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}
}

// NewTrunkGraph returns a graph holding only an empty trunk placeholder
func NewTrunkGraph(trunk string) *Graph {
	g := NewGraph()
	_ = g.AddNode(Node{Name: trunk})
	return g
}

// Node returns a copy of the named node
func (g *Graph) Node(name string) (Node, bool) {
	n, ok := g.nodes[name]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Has reports whether the branch is tracked
func (g *Graph) Has(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, *g.nodes[name])
	}
	return out
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// Root returns the name of the node with no parent. With several candidates
// the first inserted is returned; Validate rejects that case.
func (g *Graph) Root() (string, bool) {
	for _, name := range g.order {
		if _, ok := g.parent[name]; !ok {
			return name, true
		}
	}
	return "", false
}

// Parents returns the parents of a node. A valid graph has at most one.
func (g *Graph) Parents(name string) []string {
	var out []string
	for _, e := range g.edges {
		if e.Child == name {
			out = append(out, e.Parent)
		}
	}
	return out
}

// Parent returns the single parent of a node
func (g *Graph) Parent(name string) (string, bool) {
	p, ok := g.parent[name]
	return p, ok
}

// Children returns the direct children of a node in insertion order
func (g *Graph) Children(name string) []string {
	return slices.Clone(g.children[name])
}

// Descendants returns every node below name, depth-first in insertion order.
// name itself is not included.
func (g *Graph) Descendants(name string) []string {
	var out []string
	stack := reversed(g.children[name])
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, current)
		stack = append(stack, reversed(g.children[current])...)
	}
	return out
}

// IsDescendant reports whether candidate is below name
func (g *Graph) IsDescendant(name, candidate string) bool {
	for current, ok := g.parent[candidate]; ok; current, ok = g.parent[current] {
		if current == name {
			return true
		}
	}
	return false
}

// AddNode adds a new node
func (g *Graph) AddNode(n Node) error {
	if n.Name == "" {
		return stacktrackerrors.NewTopologyError("", "branch name is empty")
	}
	if g.Has(n.Name) {
		return stacktrackerrors.NewTopologyError(n.Name, "branch is already tracked")
	}
	node := n
	g.nodes[n.Name] = &node
	g.order = append(g.order, n.Name)
	return nil
}

// AddEdge stacks child on parent. The child must not already have a parent
// and the edge must not close a cycle.
func (g *Graph) AddEdge(parent, child string) error {
	if !g.Has(parent) {
		return stacktrackerrors.NewUnknownBranchError(parent)
	}
	if !g.Has(child) {
		return stacktrackerrors.NewUnknownBranchError(child)
	}
	if existing, ok := g.parent[child]; ok {
		return stacktrackerrors.NewTopologyError(child, "already has parent %s", existing)
	}
	if parent == child || g.IsDescendant(child, parent) {
		return stacktrackerrors.NewTopologyError(child, "stacking on %s would create a cycle", parent)
	}
	g.edges = append(g.edges, Edge{Parent: parent, Child: child})
	g.parent[child] = parent
	g.children[parent] = append(g.children[parent], child)
	return nil
}

// RemoveEdge unstacks child from parent
func (g *Graph) RemoveEdge(parent, child string) error {
	idx := slices.Index(g.edges, Edge{Parent: parent, Child: child})
	if idx < 0 {
		return stacktrackerrors.NewTopologyError(child, "is not stacked on %s", parent)
	}
	g.edges = slices.Delete(g.edges, idx, idx+1)
	delete(g.parent, child)
	g.children[parent] = slices.DeleteFunc(g.children[parent], func(c string) bool { return c == child })
	if len(g.children[parent]) == 0 {
		delete(g.children, parent)
	}
	return nil
}

// RemoveNode removes a node and the edge into it. Nodes with children cannot be removed.
func (g *Graph) RemoveNode(name string) error {
	if !g.Has(name) {
		return stacktrackerrors.NewUnknownBranchError(name)
	}
	if len(g.children[name]) > 0 {
		return stacktrackerrors.NewTopologyError(name, "has %d stacked branch(es)", len(g.children[name]))
	}
	if parent, ok := g.parent[name]; ok {
		if err := g.RemoveEdge(parent, name); err != nil {
			return err
		}
	}
	delete(g.nodes, name)
	g.order = slices.DeleteFunc(g.order, func(n string) bool { return n == name })
	return nil
}

// SetSHA records the tip sha of a node
func (g *Graph) SetSHA(name, sha string) error {
	n, ok := g.nodes[name]
	if !ok {
		return stacktrackerrors.NewUnknownBranchError(name)
	}
	n.SHA = sha
	return nil
}

// SetBase records the fork point of a node
func (g *Graph) SetBase(name, base string) error {
	n, ok := g.nodes[name]
	if !ok {
		return stacktrackerrors.NewUnknownBranchError(name)
	}
	n.Base = base
	return nil
}

// SetPullURL records the pull request reference of a node
func (g *Graph) SetPullURL(name, url string) error {
	n, ok := g.nodes[name]
	if !ok {
		return stacktrackerrors.NewUnknownBranchError(name)
	}
	n.PullURL = url
	return nil
}

// FindBySHA returns the node whose recorded sha matches. When several nodes
// match, the most recently inserted one wins.
func (g *Graph) FindBySHA(sha string) (string, bool) {
	if sha == "" {
		return "", false
	}
	for i := len(g.order) - 1; i >= 0; i-- {
		if g.nodes[g.order[i]].SHA == sha {
			return g.order[i], true
		}
	}
	return "", false
}

// Validate checks that the graph is a tree rooted at trunk. An empty trunk
// skips the root name check.
func (g *Graph) Validate(trunk string) error {
	if len(g.order) == 0 {
		return stacktrackerrors.NewTopologyError("", "graph has no nodes")
	}

	inDegree := make(map[string]int, len(g.order))
	for _, e := range g.edges {
		if !g.Has(e.Parent) {
			return stacktrackerrors.NewTopologyError(e.Parent, "edge references an unknown branch")
		}
		if !g.Has(e.Child) {
			return stacktrackerrors.NewTopologyError(e.Child, "edge references an unknown branch")
		}
		inDegree[e.Child]++
	}

	var roots []string
	for _, name := range g.order {
		switch inDegree[name] {
		case 0:
			roots = append(roots, name)
		case 1:
		default:
			return stacktrackerrors.NewTopologyError(name, "has %d parents", inDegree[name])
		}
	}
	if len(roots) != 1 {
		return stacktrackerrors.NewTopologyError("", "graph must have exactly one root, found %d", len(roots))
	}

	root := roots[0]
	if trunk != "" && root != trunk {
		return stacktrackerrors.NewTopologyError(root, "root does not match trunk %s", trunk)
	}
	if g.nodes[root].Base != "" {
		return stacktrackerrors.NewTopologyError(root, "root must not have a base")
	}

	// every node must be reachable from the root, otherwise a cycle exists
	if reachable := len(g.Descendants(root)) + 1; reachable != len(g.order) {
		return stacktrackerrors.NewTopologyError("", "graph contains a cycle")
	}
	return nil
}

// Equal reports whether two graphs hold the same nodes and edges in the same order
func (g *Graph) Equal(other *Graph) bool {
	if other == nil {
		return false
	}
	return slices.Equal(g.Nodes(), other.Nodes()) && slices.Equal(g.edges, other.edges)
}

// Clone returns a deep copy
func (g *Graph) Clone() *Graph {
	out := NewGraph()
	for _, n := range g.Nodes() {
		_ = out.AddNode(n)
	}
	for _, e := range g.edges {
		out.appendEdge(e)
	}
	return out
}

// appendEdge inserts an edge without checks. Used when loading and cloning,
// where Validate runs afterwards.
func (g *Graph) appendEdge(e Edge) {
	g.edges = append(g.edges, e)
	g.parent[e.Child] = e.Parent
	g.children[e.Parent] = append(g.children[e.Parent], e.Child)
}

func reversed(in []string) []string {
	out := slices.Clone(in)
	slices.Reverse(out)
	return out
}
