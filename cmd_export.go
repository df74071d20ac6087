package main

import (
	"crypto/md5"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wodcraft/wodc/export"
	"github.com/wodcraft/wodc/internal/wodlog"
	"github.com/wodcraft/wodc/lang"
)

// runExport implements spec.md §6's export contract: --to {json,ics,html}
// writes the rendered program to -o (or stdout). File writes go through
// an md5 digest the way alliop.go's writeList/writeMetadata log a digest
// for every file they produce, so a written export's checksum ends up in
// the log for auditing.
func runExport(log wodlog.Logger, baseVerbose bool, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var opts commonOpts
	commonFlags(fs, &opts)
	to := fs.String("to", "json", "json, ics or html")
	out := fs.String("o", "", "write to this file instead of stdout")
	fs.Parse(args)
	log = upgradeLogger(log, opts.verbose || baseVerbose)

	if fs.NArg() < 1 {
		return badUsage("export: a source file is required")
	}
	path := fs.Arg(0)

	res, err := compile(log, path, opts.catalog, opts.track, opts.gender)
	if err != nil {
		return err
	}

	var data []byte
	switch *to {
	case "json":
		data, err = export.JSON(res.Program)
	case "ics":
		events := lang.BuildTimeline(res.Program)
		data = export.ICS(res.Program, events, res.Path)
	case "html":
		events := lang.BuildTimeline(res.Program)
		data = export.HTML(res.Program, events)
	default:
		return badUsage("export: -to must be json, ics or html")
	}
	if err != nil {
		return genericErr(err.Error())
	}

	if *out == "" {
		_, err := os.Stdout.Write(data)
		if err != nil {
			return genericErr(err.Error())
		}
		return nil
	}
	return writeExportFile(log, *out, data)
}

// writeExportFile writes data to file while logging its md5 digest,
// grounded on alliop.go's writeList digest-and-MultiWriter pattern.
func writeExportFile(log wodlog.Logger, file string, data []byte) error {
	f, err := os.Create(file)
	if err != nil {
		return genericErr(err.Error())
	}
	defer f.Close()

	digest := md5.New()
	w := io.MultiWriter(f, digest)
	if _, err := w.Write(data); err != nil {
		return genericErr(err.Error())
	}
	log.WithFields(map[string]any{"out": file, "md5": fmt.Sprintf("%x", digest.Sum(nil))}).Info("wrote export")
	return nil
}
