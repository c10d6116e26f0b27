package manager

import (
	"depman/internal/command"
	"depman/internal/dependency"
	"depman/internal/events"
	"depman/pkg/logging"
)

// Manager applies dependency commands to a component graph and reports what
// happened through an events.Sink. It is the only place that changes the
// installed state of components.
//
// A Manager is not safe for concurrent use; commands are applied one at a
// time, each to completion.
type Manager struct {
	graph *dependency.Graph
	sink  events.Sink
}

// ComponentStatus is a read-only view of one component.
type ComponentStatus struct {
	Name         string
	Installed    bool
	Dependencies []string
	Dependents   []string
}

// New creates a manager over graph. A nil graph starts empty and a nil sink
// discards all notifications.
func New(graph *dependency.Graph, sink events.Sink) *Manager {
	if graph == nil {
		graph = dependency.New()
	}
	if sink == nil {
		sink = events.Discard
	}
	return &Manager{graph: graph, sink: sink}
}

// Graph returns the underlying component graph.
func (m *Manager) Graph() *dependency.Graph {
	return m.graph
}

// Apply dispatches a single command. The returned error only concerns this
// command; callers are expected to report it and continue with the next one.
func (m *Manager) Apply(cmd command.Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	switch cmd.Keyword {
	case command.KeywordDepend:
		return m.DeclareDependency(cmd.Args[0], cmd.Args[1:])
	case command.KeywordInstall:
		return m.Install(cmd.Target(), true)
	case command.KeywordRemove:
		return m.Remove(cmd.Target())
	case command.KeywordList:
		m.List()
		return nil
	case command.KeywordEnd:
		// Stopping the source is the caller's business.
		return nil
	default:
		return &command.InvalidCommandError{Command: cmd.String(), Reason: "unsupported command"}
	}
}

// DeclareDependency records that component requires every name in deps.
// Declarations are cumulative: the new edges are added to any existing ones.
// Nothing is emitted.
func (m *Manager) DeclareDependency(component string, deps []string) error {
	if component == "" {
		return &command.InvalidCommandError{Reason: "DEPEND needs a component name"}
	}
	if len(deps) == 0 {
		return &command.InvalidCommandError{Command: "DEPEND " + component, Reason: "DEPEND needs at least one dependency"}
	}
	for _, dep := range deps {
		if dep == "" {
			return &command.InvalidCommandError{Command: "DEPEND " + component, Reason: "empty dependency name"}
		}
	}

	from := dependency.NodeID(component)
	m.graph.GetOrCreate(from)
	for _, dep := range deps {
		m.graph.AddEdge(from, dependency.NodeID(dep))
	}

	logging.Debug("Manager", "Declared %s -> %v", component, deps)
	return nil
}

// installFrame is one component on the install path together with the
// position of the next dependency to visit.
type installFrame struct {
	id   dependency.NodeID
	deps []dependency.NodeID
	next int
}

// Install installs component after its whole dependency closure, depth first
// and dependencies first. Every component that becomes installed is reported
// with ComponentInstalling at the moment its flag flips, so each report comes
// after the reports of all its dependencies.
//
// If component is already installed nothing changes; notifyIfAlreadyInstalled
// controls whether ComponentAlreadyInstalled is emitted. Dependencies reached
// transitively never produce that notification.
//
// Unknown names are registered as components without dependencies.
//
// A dependency cycle yields a *CyclicDependencyError. Components that were
// fully installed before the cycle was found stay installed; the components
// on the cyclic path are left untouched.
func (m *Manager) Install(component string, notifyIfAlreadyInstalled bool) error {
	if component == "" {
		return &command.InvalidCommandError{Reason: "INSTALL needs a component name"}
	}

	id := dependency.NodeID(component)
	node := m.graph.GetOrCreate(id)
	if node.Installed {
		if notifyIfAlreadyInstalled {
			m.emit(events.ReasonComponentAlreadyInstalled, id)
		}
		return nil
	}

	onPath := map[dependency.NodeID]bool{id: true}
	stack := []*installFrame{{id: id, deps: m.graph.Dependencies(id)}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.next < len(top.deps) {
			dep := top.deps[top.next]
			top.next++

			if m.graph.IsInstalled(dep) {
				continue
			}
			if onPath[dep] {
				err := &CyclicDependencyError{Path: installPath(stack, dep)}
				logging.Debug("Manager", "Install of %s aborted: %v", component, err)
				return err
			}
			onPath[dep] = true
			stack = append(stack, &installFrame{id: dep, deps: m.graph.Dependencies(dep)})
			continue
		}

		m.graph.SetInstalled(top.id, true)
		m.emit(events.ReasonComponentInstalling, top.id)
		delete(onPath, top.id)
		stack = stack[:len(stack)-1]
	}

	return nil
}

func installPath(stack []*installFrame, repeated dependency.NodeID) []string {
	path := make([]string, 0, len(stack)+1)
	for _, f := range stack {
		path = append(path, string(f.id))
	}
	return append(path, string(repeated))
}

// removeFrame is a removed component whose dependencies are still being
// examined as orphan candidates.
type removeFrame struct {
	deps []dependency.NodeID
	next int
}

// Remove uninstalls component and then every dependency it leaves orphaned.
//
//   - unknown names fail with *UnknownComponentError and are not registered
//   - a component that is not installed is reported with ComponentNotInstalled
//   - a component with an installed dependent is reported with
//     ComponentStillNeeded and nothing changes
//
// Otherwise the component is reported with ComponentRemoving and its direct
// dependencies are swept. A candidate with no installed dependent is an
// orphan and is removed the same way: if installed, it is reported with
// ComponentRemoving and its own dependencies are swept before the next
// sibling candidate is examined; if not installed, it is reported with
// ComponentNotInstalled. Candidates that are still needed are left alone
// without a notification.
func (m *Manager) Remove(component string) error {
	if component == "" {
		return &command.InvalidCommandError{Reason: "REMOVE needs a component name"}
	}

	id := dependency.NodeID(component)
	node := m.graph.Get(id)
	if node == nil {
		return &UnknownComponentError{Name: component}
	}
	if !node.Installed {
		m.emit(events.ReasonComponentNotInstalled, id)
		return nil
	}
	if m.graph.HasInstalledDependent(id) {
		m.emit(events.ReasonComponentStillNeeded, id)
		return nil
	}

	m.uninstall(id)
	stack := []*removeFrame{{deps: m.graph.Dependencies(id)}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.deps) {
			stack = stack[:len(stack)-1]
			continue
		}

		candidate := top.deps[top.next]
		top.next++

		if m.graph.HasInstalledDependent(candidate) {
			continue
		}
		if !m.graph.IsInstalled(candidate) {
			m.emit(events.ReasonComponentNotInstalled, candidate)
			continue
		}
		m.uninstall(candidate)
		stack = append(stack, &removeFrame{deps: m.graph.Dependencies(candidate)})
	}

	return nil
}

func (m *Manager) uninstall(id dependency.NodeID) {
	m.emit(events.ReasonComponentRemoving, id)
	m.graph.SetInstalled(id, false)
}

// List emits ComponentListed for every installed component, ordered by name.
func (m *Manager) List() {
	for _, id := range m.graph.Installed() {
		m.emit(events.ReasonComponentListed, id)
	}
}

// Installed returns the names of all installed components, ordered by name.
func (m *Manager) Installed() []string {
	ids := m.graph.Installed()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, string(id))
	}
	return names
}

// Snapshot returns the state of every known component, ordered by name.
func (m *Manager) Snapshot() []ComponentStatus {
	names := m.graph.Names()
	out := make([]ComponentStatus, 0, len(names))
	for _, id := range names {
		out = append(out, ComponentStatus{
			Name:         string(id),
			Installed:    m.graph.IsInstalled(id),
			Dependencies: toStrings(m.graph.Dependencies(id)),
			Dependents:   toStrings(m.graph.Dependents(id)),
		})
	}
	return out
}

func (m *Manager) emit(reason events.EventReason, id dependency.NodeID) {
	m.sink.Emit(events.Event{Reason: reason, Data: events.EventData{Name: string(id)}})
}

func toStrings(ids []dependency.NodeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}
