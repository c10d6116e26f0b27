package scenario

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"depman/internal/dependency"
	"depman/internal/events"
	"depman/internal/manager"
	"depman/internal/runner"
	"depman/pkg/logging"
)

// errFailFast stops the suite after the first failing scenario.
var errFailFast = errors.New("fail-fast triggered")

// Reporter receives results as scenarios finish. Calls are serialized.
type Reporter interface {
	ReportScenarioResult(ScenarioResult)
}

// Run executes the scenarios selected by cfg, up to cfg.Parallel at a time,
// each against its own empty graph. Results keep the order of scenarios.
// With FailFast, scenarios that had not started when the first failure was
// seen are reported as skipped.
func Run(ctx context.Context, scenarios []Scenario, cfg Config, reporter Reporter) SuiteResult {
	suite := SuiteResult{StartTime: time.Now()}
	selected := Filter(scenarios, cfg)
	results := make([]ScenarioResult, len(selected))
	started := make([]bool, len(selected))

	parallel := cfg.Parallel
	if parallel < 1 {
		parallel = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i := range selected {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			mu.Lock()
			started[i] = true
			mu.Unlock()

			res := RunScenario(gctx, selected[i])

			mu.Lock()
			results[i] = res
			if reporter != nil {
				reporter.ReportScenarioResult(res)
			}
			mu.Unlock()

			if cfg.FailFast && (res.Result == ResultFailed || res.Result == ResultError) {
				logging.Debug("Scenario", "Fail-fast triggered by scenario %s", res.Scenario.Name)
				return errFailFast
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, s := range selected {
		if !started[i] {
			results[i] = ScenarioResult{Scenario: s, Result: ResultSkipped}
		}
		suite.count(results[i])
	}
	suite.Results = results
	suite.Duration = time.Since(suite.StartTime)
	return suite
}

// Filter returns the scenarios matching the name filter and tag of cfg.
func Filter(scenarios []Scenario, cfg Config) []Scenario {
	var out []Scenario
	for _, s := range scenarios {
		if cfg.Filter != "" && !strings.Contains(s.Name, cfg.Filter) {
			continue
		}
		if cfg.Tag != "" && !slices.Contains(s.Tags, cfg.Tag) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// RunScenario applies the script of s to an empty graph and checks the
// expectations.
func RunScenario(ctx context.Context, s Scenario) ScenarioResult {
	start := time.Now()
	res := ScenarioResult{Scenario: s}
	defer func() { res.Duration = time.Since(start) }()

	if s.Skip {
		res.Result = ResultSkipped
		return res
	}

	templates := events.NewMessageTemplateEngine()
	for reason, text := range s.Messages {
		if err := templates.SetTemplate(events.EventReason(reason), text); err != nil {
			res.Result = ResultError
			res.Error = err.Error()
			return res
		}
	}

	var out bytes.Buffer
	sink := events.NewWriterSink(&out, templates, "")
	m := manager.New(dependency.New(), sink)
	run, err := runner.New(m, sink).Run(ctx, strings.NewReader(s.Script))
	if err != nil {
		res.Result = ResultError
		res.Error = err.Error()
		return res
	}

	res.Output = splitLines(out.String())
	res.Failures = check(s.Expected, res.Output, m.Installed(), run.Rejected)
	if len(res.Failures) > 0 {
		res.Result = ResultFailed
	} else {
		res.Result = ResultPassed
	}
	return res
}

func check(exp Expectation, output, installed []string, rejected int) []string {
	var failures []string

	if exp.Output != nil && !slices.Equal(exp.Output, output) {
		failures = append(failures, fmt.Sprintf("output mismatch:\n%s", diffLines(exp.Output, output)))
	}
	for _, line := range exp.Contains {
		if !slices.Contains(output, line) {
			failures = append(failures, fmt.Sprintf("output does not contain %q", line))
		}
	}
	for _, line := range exp.NotContains {
		if slices.Contains(output, line) {
			failures = append(failures, fmt.Sprintf("output contains %q", line))
		}
	}
	if exp.Installed != nil && !slices.Equal(exp.Installed, installed) {
		failures = append(failures, fmt.Sprintf("installed: expected [%s], got [%s]",
			strings.Join(exp.Installed, " "), strings.Join(installed, " ")))
	}
	if exp.Rejected != nil && *exp.Rejected != rejected {
		failures = append(failures, fmt.Sprintf("rejected: expected %d, got %d", *exp.Rejected, rejected))
	}

	return failures
}

// diffLines renders expected and actual output side by side, marking the
// lines that differ.
func diffLines(expected, actual []string) string {
	var sb strings.Builder
	n := max(len(expected), len(actual))
	for i := 0; i < n; i++ {
		var e, a string
		if i < len(expected) {
			e = expected[i]
		}
		if i < len(actual) {
			a = actual[i]
		}
		marker := " "
		if i >= len(expected) || i >= len(actual) || e != a {
			marker = "!"
		}
		fmt.Fprintf(&sb, "%s %3d  %-30s | %s\n", marker, i+1, e, a)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
