// Command enzfit fits enzyme rate laws to an experiment file and writes the
// results as workbooks and charts.
//
//	enzfit -experiment adh.yaml -config run.yaml -out results -save
//
// Without -config the defaults of config.Default apply: a Michaelis-Menten
// fit with no random restarts, no persistence, workbook and direct plots.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
)

type cliArgs struct {
	config     string
	experiment string
	out        string
	save       bool
}

func main() {
	configPath := flag.String("config", "", "path to run configuration YAML (defaults apply when empty)")
	expPath := flag.String("experiment", "", "path to experiment YAML (required)")
	outDir := flag.String("out", "", "output directory, overrides output.dir")
	level := flag.String("log-level", "info", "log level: debug, info, warn or error")
	jsonLogs := flag.Bool("log-json", false, "emit logs as JSON")
	save := flag.Bool("save", false, "persist the project to the configured storage backend")
	flag.Parse()

	if *expPath == "" {
		fmt.Fprintln(os.Stderr, "error: -experiment is required")
		flag.Usage()
		os.Exit(2)
	}
	logger, err := newLogger(os.Stderr, *level, *jsonLogs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := cliArgs{config: *configPath, experiment: *expPath, out: *outDir, save: *save}
	if err := run(ctx, args, os.Stdout, logger); err != nil {
		logger.Error("run failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level string, asJSON bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("-log-level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}
