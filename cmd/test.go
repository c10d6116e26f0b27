package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"depman/internal/scenario"
	"depman/pkg/logging"
)

// testOptions holds the flag values of the test command.
type testOptions struct {
	filter     string
	tag        string
	parallel   int
	failFast   bool
	verbose    bool
	color      bool
	reportPath string
}

func newTestCmd() *cobra.Command {
	opts := &testOptions{}

	cmd := &cobra.Command{
		Use:   "test PATH...",
		Short: "Run scenario files and check their output",
		Long: `Run YAML scenario files. Each scenario applies its script to an empty
component graph and compares the notifications, the installed components and
the number of rejected commands with its expectations.

PATH may be a scenario file or a directory searched for *.yaml and *.yml files.`,
		Example: `  depman test scenarios/
  depman test --tag remove --verbose scenarios/
  depman test --parallel 8 --fail-fast --report report.json scenarios/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var all []scenario.Scenario
			for _, path := range args {
				loaded, err := scenario.LoadScenarios(path)
				if err != nil {
					return err
				}
				all = append(all, loaded...)
			}

			reporter := scenario.NewTextReporter(cmd.OutOrStdout(), opts.verbose, opts.color)
			suite := scenario.Run(cmd.Context(), all, scenario.Config{
				Filter:   opts.filter,
				Tag:      opts.tag,
				Parallel: opts.parallel,
				FailFast: opts.failFast,
			}, reporter)
			reporter.ReportSuite(suite)

			if opts.reportPath != "" {
				if err := scenario.WriteReport(opts.reportPath, suite); err != nil {
					return err
				}
				logging.Info("Scenario", "Report written to %s", opts.reportPath)
			}

			if !suite.Succeeded() {
				return fmt.Errorf("%d of %d scenarios did not pass", suite.Failed+suite.Errors, suite.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.filter, "filter", "", "Only run scenarios whose name contains this text")
	cmd.Flags().StringVar(&opts.tag, "tag", "", "Only run scenarios with this tag")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 1, "Number of scenarios to run at once")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "Stop after the first failing scenario")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show the output of failed scenarios")
	cmd.Flags().BoolVar(&opts.color, "color", false, "Use colors in the results")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Write a JSON report to this file")

	return cmd
}
