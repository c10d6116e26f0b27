// internal/dependency/graph.go
package dependency

import "sort"

// NodeID is the unique identifier for a node inside a dependency graph. It is
// the component name as written in commands; any non-empty string is accepted.
type NodeID string

// nodeSet is a set of node IDs. Edges are stored as IDs rather than pointers so
// the graph owns every Node and cycles in the data never form reference cycles.
type nodeSet map[NodeID]struct{}

func (s nodeSet) sorted() []NodeID {
	res := make([]NodeID, 0, len(s))
	for id := range s {
		res = append(res, id)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Node represents a single software component together with its edges.
//
// dependsOn holds the components this node requires; dependents holds the
// components that require this node. The two are kept as mirror images of
// each other by Graph.AddEdge.
type Node struct {
	ID        NodeID
	Installed bool

	dependsOn  nodeSet
	dependents nodeSet
}

func newNode(id NodeID) *Node {
	return &Node{
		ID:         id,
		dependsOn:  make(nodeSet),
		dependents: make(nodeSet),
	}
}

// Graph is the registry of every component seen during a run. It only grows:
// nodes and edges are never deleted, only the Installed flag changes. It is
// *not* thread-safe by itself; callers must synchronise if they write
// concurrently.
type Graph struct {
	nodes map[NodeID]*Node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node)}
}

// GetOrCreate returns the node for id, registering a new, not installed node
// on first mention. It never returns two different nodes for the same id.
func (g *Graph) GetOrCreate(id NodeID) *Node {
	if g.nodes == nil {
		g.nodes = make(map[NodeID]*Node)
	}
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := newNode(id)
	g.nodes[id] = n
	return n
}

// Get returns a pointer to the stored node or nil if it does not exist.
func (g *Graph) Get(id NodeID) *Node {
	return g.nodes[id]
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Names returns the IDs of all registered nodes in ascending order.
func (g *Graph) Names() []NodeID {
	res := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		res = append(res, id)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// AddEdge records that from depends on to. Both nodes are created if needed
// and the reverse edge is inserted in the same call, so to lists from among
// its dependents exactly when from lists to among its dependencies.
// Adding an existing edge is a no-op.
func (g *Graph) AddEdge(from, to NodeID) {
	f := g.GetOrCreate(from)
	t := g.GetOrCreate(to)
	f.dependsOn[to] = struct{}{}
	t.dependents[from] = struct{}{}
}

// Dependencies returns the immediate dependency IDs of the given node in
// ascending order. The slice is a copy.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	if n, ok := g.nodes[id]; ok {
		return n.dependsOn.sorted()
	}
	return nil
}

// Dependents returns the IDs of all nodes with a direct dependency on the
// given node, in ascending order.
func (g *Graph) Dependents(id NodeID) []NodeID {
	if n, ok := g.nodes[id]; ok {
		return n.dependents.sorted()
	}
	return nil
}

// DependsOn reports whether from has a direct edge to to.
func (g *Graph) DependsOn(from, to NodeID) bool {
	n, ok := g.nodes[from]
	if !ok {
		return false
	}
	_, ok = n.dependsOn[to]
	return ok
}

// IsInstalled reports whether the node exists and is installed.
func (g *Graph) IsInstalled(id NodeID) bool {
	n, ok := g.nodes[id]
	return ok && n.Installed
}

// SetInstalled flips the installed flag of an existing node. Unknown ids are
// ignored; use GetOrCreate first when registration is intended.
func (g *Graph) SetInstalled(id NodeID, installed bool) {
	if n, ok := g.nodes[id]; ok {
		n.Installed = installed
	}
}

// HasInstalledDependent reports whether any direct dependent of id is
// currently installed.
func (g *Graph) HasInstalledDependent(id NodeID) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	for dep := range n.dependents {
		if g.IsInstalled(dep) {
			return true
		}
	}
	return false
}

// Installed returns the IDs of all installed nodes in ascending order.
func (g *Graph) Installed() []NodeID {
	var res []NodeID
	for _, id := range g.Names() {
		if g.nodes[id].Installed {
			res = append(res, id)
		}
	}
	return res
}
