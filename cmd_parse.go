package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wodcraft/wodc/export"
	"github.com/wodcraft/wodc/internal/wodlog"
)

func runParse(log wodlog.Logger, baseVerbose bool, args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	var opts commonOpts
	commonFlags(fs, &opts)
	out := fs.String("o", "", "write JSON to this file instead of stdout")
	fs.Parse(args)
	log = upgradeLogger(log, opts.verbose || baseVerbose)

	if fs.NArg() < 1 {
		return badUsage("parse: a source file is required")
	}
	path := fs.Arg(0)

	res, err := compile(log, path, opts.catalog, opts.track, opts.gender)
	if err != nil {
		return err
	}

	data, err := export.JSON(res.Program)
	if err != nil {
		return genericErr(err.Error())
	}
	data = append(data, '\n')

	if *out == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return genericErr(err.Error())
	}
	log.WithField("out", *out).Info("wrote AST")
	return nil
}
