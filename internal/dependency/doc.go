// Package dependency provides the component registry for depman: a directed
// graph of named components, each with edges to the components it requires
// and back-edges to the components that require it.
//
// # Core Concepts
//
// Graph: the single owning store for every component seen during a run.
// Components are registered lazily; any mention of a name (as a declaring
// component, a dependency or an install target) creates it with
// Installed=false. Nothing is ever deleted, removal only clears the flag.
//
// Node: one component with
//   - ID: the component name, the sole key for lookup and equality
//   - Installed: whether the component is currently installed
//   - its dependencies (outgoing edges) and dependents (incoming edges)
//
// # Symmetry
//
// Edges are only inserted through AddEdge, which writes both directions at
// once. For any A and B:
//
//	A ∈ Dependencies(B)  ⇔  B ∈ Dependents(A)
//
// # Usage Example
//
//	g := dependency.New()
//	g.AddEdge("web", "tcpip")
//	g.AddEdge("web", "html")
//	g.AddEdge("browser", "html")
//
//	g.Dependencies("web")  // ["html", "tcpip"]
//	g.Dependents("html")   // ["browser", "web"]
//
// All list accessors return sorted copies so output built on top of the graph
// is deterministic.
//
// # Thread Safety
//
// The Graph is not safe for concurrent use. depman applies commands one at a
// time; a caller adding concurrent access needs one mutex around the whole
// graph, because install and remove are multi-step traversals.
//
// Cycle detection is not done here. The graph stores whatever edges it is
// given; the manager package detects cycles while installing.
package dependency
