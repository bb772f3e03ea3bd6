// Command spftool prints the SPF record of a domain after walking its
// include chain, optionally flattened into a single record.
//
// Usage:
//
//	spftool [flags] domain
//
// Settings not given as flags come from the --env-file dotenv file and
// SPFTOOL_* environment variables; see package config.
//
// Exit status is 0 when a record was resolved, 1 when the walk failed, and 2
// for usage or configuration errors.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/synqronlabs/spftool"
	"github.com/synqronlabs/spftool/config"
	"github.com/synqronlabs/spftool/dns"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// newResolver is replaced in tests.
var newResolver = func(cfg *config.Config) dns.Resolver {
	return cfg.NewResolver()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("spftool", flag.ContinueOnError)
	fs.SetOutput(stderr)

	recursionLimit := fs.IntP("recursion-limit", "n", spftool.DefaultRecursionLimit, "Maximum include depth below the root record")
	flatten := fs.Bool("flatten", false, "Inline every include into a single record")
	format := fs.StringP("format", "o", config.FormatText, "Output format: text, json or msgpack")
	envFile := fs.String("env-file", ".env", "Dotenv file with SPFTOOL settings (missing file is ignored)")
	nameservers := fs.StringArrayP("nameserver", "s", nil, "Nameserver to query, host[:port] (repeatable)")
	verbose := fs.BoolP("verbose", "v", false, "Debug logging: selected records, macro expansion, mechanism counts")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: spftool [flags] domain\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if fs.Changed("recursion-limit") {
		cfg.RecursionLimit = *recursionLimit
	}
	if fs.Changed("format") {
		cfg.Format = *format
	}
	if len(*nameservers) > 0 {
		cfg.Nameservers = *nameservers
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := cfg.Logger(stderr)

	report, err := spftool.Inspect(ctx, newResolver(cfg), spftool.Options{
		Domain:         fs.Arg(0),
		RecursionLimit: cfg.RecursionLimit,
		Flatten:        *flatten,
		WarnThreshold:  cfg.WarnThreshold,
		Logger:         logger,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if err := writeReport(stdout, report, cfg.Format); err != nil {
		logger.Error("Failed to write report", "error", err)
		return exitFailure
	}
	if report.Failed() {
		return exitFailure
	}
	return exitOK
}

func writeReport(w io.Writer, report *spftool.Report, format string) error {
	var data []byte
	var err error

	switch format {
	case config.FormatJSON:
		data, err = report.ToJSONIndent()
		data = append(data, '\n')
	case config.FormatMsgpack:
		data, err = report.ToMessagePack()
	default:
		data = []byte(report.Text())
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
