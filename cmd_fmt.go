package main

import (
	"flag"
	"os"

	"github.com/wodcraft/wodc/internal/wodlog"
	"github.com/wodcraft/wodc/lang"
)

// runFmt implements spec.md §6's fmt contract: validate by parsing
// (EFMT=2 on failure), normalize, write to stdout, in-place (-i), or
// -o file. fmt takes no -catalog/-track/-gender since normalization
// never resolves the program.
func runFmt(log wodlog.Logger, baseVerbose bool, args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	inPlace := fs.Bool("i", false, "rewrite the file in place")
	out := fs.String("o", "", "write to this file instead of stdout")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	fs.String("config", "", "optional .wodcrc.toml file")
	fs.Parse(args)
	log = upgradeLogger(log, *verbose || baseVerbose)

	if fs.NArg() < 1 {
		return badUsage("fmt: a source file is required")
	}
	path := fs.Arg(0)

	src, err := os.ReadFile(path)
	if err != nil {
		return checkedFileErr(err)
	}

	if _, err := lang.Parse(string(src)); err != nil {
		return fmtFailure(err.Error())
	}

	formatted := lang.Normalize(string(src))

	dest := *out
	if *inPlace {
		dest = path
	}
	if dest == "" {
		os.Stdout.WriteString(formatted)
		return nil
	}
	if err := os.WriteFile(dest, []byte(formatted), 0o644); err != nil {
		return genericErr(err.Error())
	}
	log.WithField("out", dest).Debug("wrote formatted source")
	return nil
}
