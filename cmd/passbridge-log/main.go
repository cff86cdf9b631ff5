// Command passbridge-log views and analyzes provisioning trace files.
//
// Trace files are written by passbridge-sim with the -protocol-log flag.
//
// Usage:
//
//	passbridge-log <command> [flags] <file.plog>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSONL or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View only coordinator events
//	passbridge-log view --layer coordinator session.plog
//
//	# Export to JSONL
//	passbridge-log export --format jsonl session.plog
//
//	# Extract one session
//	passbridge-log filter --session-id 5f0c2a1e-... -o one.plog session.plog
//
//	# Show statistics
//	passbridge-log stats session.plog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/passbridge/passbridge-go/cmd/passbridge-log/commands"
)

const usage = `passbridge-log - Provisioning Trace Analyzer

Usage:
  passbridge-log <command> [flags] <file.plog>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSONL or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "passbridge-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "view":
		err = runView(args)
	case "export":
		err = runExport(args)
	case "filter":
		err = runFilter(args)
	case "stats":
		err = runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet creates a flag set whose usage prints header and the flags.
func newFlagSet(name, header string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, header)
		fs.PrintDefaults()
	}
	return fs
}

// tracePath returns the single positional argument.
func tracePath(fs *flag.FlagSet) (string, error) {
	if fs.NArg() < 1 {
		fs.Usage()
		return "", fmt.Errorf("trace file path required")
	}
	return fs.Arg(0), nil
}

func runView(args []string) error {
	fs := newFlagSet("view", `passbridge-log view - View trace file in human-readable format

Usage:
  passbridge-log view [flags] <file.plog>

Flags:
`)
	var opts commands.FilterOptions
	fs.StringVar(&opts.SessionID, "session-id", "", "Filter by session ID")
	fs.StringVar(&opts.CallbackID, "callback-id", "", "Filter by bridge callback ID")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (bridge, coordinator, platform, issuer)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (call, state, exchange, error)")
	_ = fs.Parse(args)

	path, err := tracePath(fs)
	if err != nil {
		return err
	}
	filter, err := commands.BuildFilter(opts)
	if err != nil {
		return err
	}
	return commands.RunView(path, filter, os.Stdout)
}

func runExport(args []string) error {
	fs := newFlagSet("export", `passbridge-log export - Export trace file to JSONL or CSV format

Usage:
  passbridge-log export [flags] <file.plog>

Flags:
`)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	path, err := tracePath(fs)
	if err != nil {
		return err
	}
	return commands.RunExport(path, *format, *output)
}

func runFilter(args []string) error {
	fs := newFlagSet("filter", `passbridge-log filter - Filter trace file and write to new file

Usage:
  passbridge-log filter [flags] <file.plog>

Flags:
`)
	var opts commands.FilterOptions
	fs.StringVar(&opts.Output, "o", "", "Output file (required)")
	fs.StringVar(&opts.SessionID, "session-id", "", "Filter by session ID")
	fs.StringVar(&opts.CallbackID, "callback-id", "", "Filter by bridge callback ID")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (bridge, coordinator, platform, issuer)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (call, state, exchange, error)")
	_ = fs.Parse(args)

	path, err := tracePath(fs)
	if err != nil {
		return err
	}
	if opts.Output == "" {
		fs.Usage()
		return fmt.Errorf("output file (-o) required")
	}

	count, err := commands.RunFilter(path, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Filtered %d events to %s\n", count, opts.Output)
	return nil
}

func runStats(args []string) error {
	fs := newFlagSet("stats", `passbridge-log stats - Show statistics about the trace file

Usage:
  passbridge-log stats <file.plog>

`)
	_ = fs.Parse(args)

	path, err := tracePath(fs)
	if err != nil {
		return err
	}
	return commands.RunStats(path, os.Stdout)
}
