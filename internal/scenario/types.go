package scenario

import (
	"time"
)

// Result is the outcome of a scenario.
type Result string

const (
	ResultPassed  Result = "PASSED"
	ResultFailed  Result = "FAILED"
	ResultSkipped Result = "SKIPPED"
	// ResultError means the scenario could not be run at all, for example
	// because one of its message templates does not parse.
	ResultError Result = "ERROR"
)

// Scenario is one self-contained run: a script applied to an empty graph and
// the output it is expected to produce.
type Scenario struct {
	// Name is the unique identifier for the scenario
	Name string `yaml:"name"`
	// Description provides human-readable scenario description
	Description string `yaml:"description,omitempty"`
	// Tags for additional categorization
	Tags []string `yaml:"tags,omitempty"`
	// Skip indicates whether this scenario should be skipped
	Skip bool `yaml:"skip,omitempty"`
	// Messages overrides notification templates, keyed by event reason
	Messages map[string]string `yaml:"messages,omitempty"`
	// Script holds the commands, one per line
	Script string `yaml:"script"`
	// Expected defines the expected outcome
	Expected Expectation `yaml:"expected"`

	// File is the scenario file the scenario was loaded from.
	File string `yaml:"-"`
}

// Expectation defines what a scenario must produce. Unset fields are not checked.
type Expectation struct {
	// Output lists every notification line, in order. Commands are not echoed.
	Output []string `yaml:"output,omitempty"`
	// Contains lists lines that must appear somewhere in the output
	Contains []string `yaml:"contains,omitempty"`
	// NotContains lists lines that must not appear in the output
	NotContains []string `yaml:"not_contains,omitempty"`
	// Installed is the sorted set of installed components after the script
	Installed []string `yaml:"installed,omitempty"`
	// Rejected is the number of rejected commands
	Rejected *int `yaml:"rejected,omitempty"`
}

// Config selects and paces the scenarios of a suite run.
type Config struct {
	// Filter keeps scenarios whose name contains it
	Filter string
	// Tag keeps scenarios carrying it
	Tag string
	// Parallel is the number of scenarios run at once; values below 1 mean 1
	Parallel int
	// FailFast stops starting new scenarios after the first failure
	FailFast bool
}

// ScenarioResult is the result of a single scenario.
type ScenarioResult struct {
	Scenario Scenario      `json:"scenario"`
	Result   Result        `json:"result"`
	Duration time.Duration `json:"duration"`
	// Output is the notification output the script produced
	Output []string `json:"output,omitempty"`
	// Failures lists every unmet expectation
	Failures []string `json:"failures,omitempty"`
	// Error is set when Result is ResultError
	Error string `json:"error,omitempty"`
}

// SuiteResult represents the overall result of a suite run.
type SuiteResult struct {
	StartTime time.Time        `json:"start_time"`
	Duration  time.Duration    `json:"duration"`
	Total     int              `json:"total"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Skipped   int              `json:"skipped"`
	Errors    int              `json:"errors"`
	Results   []ScenarioResult `json:"results"`
}

// Succeeded reports whether no scenario failed or errored.
func (s SuiteResult) Succeeded() bool {
	return s.Failed == 0 && s.Errors == 0
}

func (s *SuiteResult) count(r ScenarioResult) {
	s.Total++
	switch r.Result {
	case ResultPassed:
		s.Passed++
	case ResultFailed:
		s.Failed++
	case ResultSkipped:
		s.Skipped++
	case ResultError:
		s.Errors++
	}
}
