// Command subscriber-sim exercises weak subscriber collections.
//
// Scenarios are YAML files describing add, drop, notify, has and len steps
// with expectations. Collection events can be captured to a CBOR event log
// and inspected later.
//
// Usage:
//
//	subscriber-sim <command> [flags] <args>
//
// Commands:
//
//	run      Run scenario files and report results
//	shell    Drive a collection interactively
//	view     View an event log in human-readable format
//	stats    Show statistics about an event log
//
// Examples:
//
//	# Run every scenario in a directory
//	subscriber-sim run scenarios/
//
//	# Run one scenario, capturing events
//	subscriber-sim run -events prune.cbor scenarios/prune.yaml
//
//	# View only prune events
//	subscriber-sim view -kind prune prune.cbor
//
//	# Show statistics
//	subscriber-sim stats prune.cbor
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mash-protocol/subscriber/cmd/subscriber-sim/commands"
	"github.com/mash-protocol/subscriber/pkg/log"
	"github.com/mash-protocol/subscriber/pkg/subscriber"
)

const usage = `subscriber-sim - Weak Subscriber Collection Simulator

Usage:
  subscriber-sim <command> [flags] <args>

Commands:
  run      Run scenario files and report results
  shell    Drive a collection interactively
  view     View an event log in human-readable format
  stats    Show statistics about an event log

Use "subscriber-sim <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "run":
		runRun(args)
	case "shell":
		runShell(args)
	case "view":
		runView(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func debugLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func runRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `subscriber-sim run - Run scenario files and report results

Usage:
  subscriber-sim run [flags] <scenario.yaml|dir>

Flags:
`)
		fs.PrintDefaults()
	}

	events := fs.String("events", "", "Write collection events to this CBOR file")
	verbose := fs.Bool("v", false, "Show every step and debug logs")
	metrics := fs.Bool("metrics", false, "Print event counters after the run")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: scenario file or directory required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.RunOptions{
		EventsPath: *events,
		Verbose:    *verbose,
		Metrics:    *metrics,
	}
	if *verbose {
		opts.Logger = debugLogger()
	}

	passed, err := commands.RunScenarios(fs.Arg(0), opts, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !passed {
		os.Exit(2)
	}
}

func runShell(args []string) {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `subscriber-sim shell - Drive a collection interactively

Usage:
  subscriber-sim shell [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	events := fs.String("events", "", "Write collection events to this CBOR file")
	verbose := fs.Bool("v", false, "Print debug logs")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	config := subscriber.DefaultConfig()
	if *verbose {
		config.Logger = debugLogger()
		config.EventLogger = log.NewSlogAdapter(config.Logger)
	}

	if *events != "" {
		fileLogger, err := log.NewFileLogger(*events)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create event log: %v\n", err)
			os.Exit(1)
		}
		defer fileLogger.Close()
		config.EventLogger = log.NewMultiLogger(config.EventLogger, fileLogger)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	if err := commands.NewShell(config, os.Stdout).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `subscriber-sim view - View an event log in human-readable format

Usage:
  subscriber-sim view [flags] <events.cbor>

Flags:
`)
		fs.PrintDefaults()
	}

	collID := fs.String("coll-id", "", "Filter by collection ID")
	kind := fs.String("kind", "", "Filter by kind (add, deliver, prune, lookup, reentrant)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: event log path required")
		fs.Usage()
		os.Exit(1)
	}

	filter := commands.ViewFilter{
		CollectionID: *collID,
		TimeStart:    *timeStart,
		TimeEnd:      *timeEnd,
	}
	if *kind != "" {
		k, err := commands.ParseKindFlag(*kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Kind = &k
	}

	if err := commands.RunView(fs.Arg(0), filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `subscriber-sim stats - Show statistics about an event log

Usage:
  subscriber-sim stats <events.cbor>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: event log path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
