package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"placemaker/internal/hmis/validation"
	"placemaker/internal/platform/config"
	"placemaker/internal/platform/logger"
	"placemaker/internal/platform/metrics"
)

const (
	exitOK       = 0
	exitRejected = 1
	exitSetup    = 2
)

// main registers newline-delimited JSON person records read from stdin and
// exits non-zero when any record is rejected.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("placemaker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", os.Getenv("PLACEMAKER_CONFIG"), "YAML config file")
	printConstraints := fs.Bool("constraints", false, "print the field constraint document as YAML and exit")
	printMetrics := fs.Bool("metrics", false, "write metrics in text format to stderr on exit")
	if err := fs.Parse(args); err != nil {
		return exitSetup
	}

	if *printConstraints {
		doc, err := validation.MarshalConstraintsYAML()
		if err != nil {
			fmt.Fprintf(stderr, "marshal constraints: %v\n", err)
			return exitSetup
		}
		_, _ = stdout.Write(doc)
		return exitOK
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return exitSetup
	}
	log := logger.NewWithWriter(stderr, cfg.Log)
	reg := metrics.NewRegistry()

	app, err := build(ctx, cfg, log, reg)
	if err != nil {
		log.Error("startup failed", "error", err)
		return exitSetup
	}
	defer app.close()

	summary, err := app.process(ctx, stdin, stdout)
	if err != nil {
		log.Error("intake aborted", "error", err)
		return exitSetup
	}
	log.Info("intake finished",
		"accepted", summary.accepted,
		"rejected", summary.rejected,
		"audit_events", app.auditCount(ctx),
	)
	if *printMetrics {
		if err := metrics.WriteText(stderr, reg); err != nil {
			log.Warn("write metrics", "error", err)
		}
	}
	if summary.rejected > 0 {
		return exitRejected
	}
	return exitOK
}
