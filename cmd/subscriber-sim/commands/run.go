// Package commands implements the subscriber-sim CLI commands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mash-protocol/subscriber/pkg/log"
	"github.com/mash-protocol/subscriber/pkg/scenario"
	"github.com/mash-protocol/subscriber/pkg/subscriber"
)

// RunOptions configures the run command.
type RunOptions struct {
	// EventsPath is the CBOR event log to write (empty disables it).
	EventsPath string

	// Verbose prints step details and debug logs.
	Verbose bool

	// Metrics prints event counters after the run.
	Metrics bool

	// Logger receives debug records when Verbose is set.
	Logger *slog.Logger
}

// RunScenarios loads the scenario file or directory at path, runs every
// scenario and writes a report to w. It returns false if any scenario failed.
func RunScenarios(path string, opts RunOptions, w io.Writer) (bool, error) {
	scenarios, err := scenario.Load(path)
	if err != nil {
		return false, err
	}

	config := subscriber.DefaultConfig()
	if opts.Verbose && opts.Logger != nil {
		config.Logger = opts.Logger
	}

	registry := prometheus.NewRegistry()
	metrics, err := log.NewMetricsLogger(registry)
	if err != nil {
		return false, fmt.Errorf("failed to register metrics: %w", err)
	}

	loggers := []log.Logger{metrics}
	if opts.EventsPath != "" {
		fileLogger, err := log.NewFileLogger(opts.EventsPath)
		if err != nil {
			return false, fmt.Errorf("failed to create event log: %w", err)
		}
		defer fileLogger.Close()
		loggers = append(loggers, fileLogger)
	}
	if opts.Verbose && opts.Logger != nil {
		loggers = append(loggers, log.NewSlogAdapter(opts.Logger))
	}
	config.EventLogger = log.NewMultiLogger(loggers...)

	start := time.Now()
	results, err := scenario.NewRunner(config).RunAll(scenarios)
	if err != nil {
		return false, err
	}

	passed := reportResults(w, results, time.Since(start), opts.Verbose)
	if opts.Metrics {
		if err := printMetrics(w, registry); err != nil {
			return passed, err
		}
	}
	return passed, nil
}

func reportResults(w io.Writer, results []*scenario.Result, elapsed time.Duration, verbose bool) bool {
	passCount := 0
	for _, res := range results {
		status := "FAIL"
		if res.Passed() {
			status = "PASS"
			passCount++
		}
		fmt.Fprintf(w, "[%s] %s - %s (%s)\n",
			status, res.ScenarioID, res.Name, res.Duration.Round(time.Microsecond))

		for _, sr := range res.Steps {
			if !verbose && sr.Passed() {
				continue
			}
			stepStatus := "PASS"
			if !sr.Passed() {
				stepStatus = "FAIL"
			}
			fmt.Fprintf(w, "    [%s] Step %d: %s%s (size %d)\n",
				stepStatus, sr.Index, sr.Step.Action, stepTarget(sr.Step), sr.Size)
			for _, failure := range sr.Failures {
				fmt.Fprintf(w, "           %s\n", failure)
			}
		}
	}

	fmt.Fprintf(w, "\n--- Summary ---\n")
	fmt.Fprintf(w, "Total:    %d\n", len(results))
	fmt.Fprintf(w, "Passed:   %d\n", passCount)
	fmt.Fprintf(w, "Failed:   %d\n", len(results)-passCount)
	fmt.Fprintf(w, "Duration: %s\n", elapsed.Round(time.Millisecond))
	return passCount == len(results)
}

func stepTarget(step scenario.Step) string {
	switch {
	case step.Subscriber != "":
		return " " + step.Subscriber
	case step.Value != "":
		return fmt.Sprintf(" %q", step.Value)
	default:
		return ""
	}
}

// printMetrics writes every counter in registry as name{labels} value.
func printMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	var lines []string
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := ""
			for _, pair := range m.GetLabel() {
				if labels != "" {
					labels += ","
				}
				labels += fmt.Sprintf("%s=%q", pair.GetName(), pair.GetValue())
			}
			lines = append(lines, fmt.Sprintf("  %s{%s} %g", family.GetName(), labels, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	fmt.Fprintf(w, "\n--- Metrics ---\n")
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return nil
}
