package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/wodcraft/wodc/internal/wodlog"
	"github.com/wodcraft/wodc/lang"
)

// runRun implements spec.md §6's run contract: text prints
// "mm:ss TYPE {json-rest}" (the trailing object only when the event
// carries fields beyond t/type, per SPEC_FULL.md's SUPPLEMENTED
// FEATURES #3), json prints the whole event array.
func runRun(log wodlog.Logger, baseVerbose bool, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var opts commonOpts
	commonFlags(fs, &opts)
	format := fs.String("format", "text", "text or json")
	fs.Parse(args)
	log = upgradeLogger(log, opts.verbose || baseVerbose)

	if fs.NArg() < 1 {
		return badUsage("run: a source file is required")
	}
	if *format != "text" && *format != "json" {
		return badUsage("run: --format must be text or json")
	}

	res, err := compile(log, fs.Arg(0), opts.catalog, opts.track, opts.gender)
	if err != nil {
		return err
	}

	events := lang.BuildTimeline(res.Program)
	log.WithField("events", len(events)).Debug("timeline built")

	if *format == "json" {
		data, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			return genericErr(err.Error())
		}
		fmt.Println(string(data))
		return nil
	}

	for _, e := range events {
		rest, err := restFields(e)
		if err != nil {
			return genericErr(err.Error())
		}
		if rest == "" {
			fmt.Printf("%s %s\n", lang.Hhmmss(e.T), e.Type)
		} else {
			fmt.Printf("%s %s %s\n", lang.Hhmmss(e.T), e.Type, rest)
		}
	}
	return nil
}

// restFields marshals everything on an Event but t/type, or "" when
// there is nothing extra to show.
func restFields(e lang.Event) (string, error) {
	full := map[string]any{}
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(data, &full); err != nil {
		return "", err
	}
	delete(full, "t")
	delete(full, "type")
	if len(full) == 0 {
		return "", nil
	}
	rest, err := json.Marshal(full)
	if err != nil {
		return "", err
	}
	return string(rest), nil
}
