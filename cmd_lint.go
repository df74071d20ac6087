package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wodcraft/wodc/internal/wodlog"
	"github.com/wodcraft/wodc/lang"
)

// runLint implements spec.md §6's lint contract: one diagnostic per
// line, "LEVEL CODE PATH: MSG", exit 1 if any diagnostic is an error.
func runLint(log wodlog.Logger, baseVerbose bool, args []string) error {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	var opts commonOpts
	commonFlags(fs, &opts)
	fs.Parse(args)
	log = upgradeLogger(log, opts.verbose || baseVerbose)

	if fs.NArg() < 1 {
		return badUsage("lint: a source file is required")
	}

	res, err := compile(log, fs.Arg(0), opts.catalog, opts.track, opts.gender)
	if err != nil {
		return err
	}

	diags := lang.Lint(res.Program)
	for _, d := range diags {
		fmt.Printf("%s %s %s: %s\n", d.Level, d.Code, d.Path, d.Msg)
	}
	log.WithField("count", len(diags)).Debug("lint complete")

	if lang.HasError(diags) {
		os.Exit(1)
	}
	return nil
}
