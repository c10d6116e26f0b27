package formatting

import (
	"depman/internal/manager"
	"depman/internal/runner"
)

// Component is one row of a summary.
type Component struct {
	Name         string   `json:"name" yaml:"name"`
	Installed    bool     `json:"installed" yaml:"installed"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Dependents   []string `json:"dependents,omitempty" yaml:"dependents,omitempty"`
}

// Summary describes the outcome of one run.
type Summary struct {
	Source     string      `json:"source,omitempty" yaml:"source,omitempty"`
	RunID      string      `json:"runId" yaml:"runId"`
	Applied    int         `json:"applied" yaml:"applied"`
	Rejected   int         `json:"rejected" yaml:"rejected"`
	Stopped    bool        `json:"stopped" yaml:"stopped"`
	Components []Component `json:"components" yaml:"components"`
}

// NewSummary combines a run result with the final component state.
func NewSummary(source string, res runner.Result, components []manager.ComponentStatus) Summary {
	s := Summary{
		Source:     source,
		RunID:      res.RunID,
		Applied:    res.Applied,
		Rejected:   res.Rejected,
		Stopped:    res.Stopped,
		Components: make([]Component, 0, len(components)),
	}
	for _, c := range components {
		s.Components = append(s.Components, Component{
			Name:         c.Name,
			Installed:    c.Installed,
			Dependencies: c.Dependencies,
			Dependents:   c.Dependents,
		})
	}
	return s
}

// InstalledCount returns the number of installed components.
func (s Summary) InstalledCount() int {
	n := 0
	for _, c := range s.Components {
		if c.Installed {
			n++
		}
	}
	return n
}
