package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wodcraft/wodc/internal/config"
	"github.com/wodcraft/wodc/internal/wodlog"
)

const (
	Version = "1.0.0"
	Program = "wodc"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, helpText)
		os.Exit(2)
	}
}

func main() {
	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(2)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	if cmd == "-version" || cmd == "--version" || cmd == "version" {
		fmt.Printf("%s-%s\n", Program, Version)
		return
	}
	if cmd == "-help" || cmd == "--help" || cmd == "help" {
		flag.Usage()
		return
	}

	var run func(log wodlog.Logger, baseVerbose bool, args []string) error
	switch cmd {
	case "parse":
		run = runParse
	case "lint":
		run = runLint
	case "run":
		run = runRun
	case "export":
		run = runExport
	case "fmt":
		run = runFmt
	default:
		fmt.Fprintf(os.Stderr, "unrecognized command %q\n", cmd)
		flag.Usage()
		os.Exit(2)
	}

	log := wodlog.NewLogrus(os.Stderr, Program, Version, false)
	Exit(checkedRun(log, run, args))
}

// checkedRun loads the optional config layer before dispatching to the
// subcommand body, matching busoc-assist main.go's pattern of loading
// settings before doing any real work. cfg.Verbose is passed through as
// baseVerbose so the subcommand's own -verbose flag (parsed later, once
// its FlagSet runs) can OR with it instead of silently overriding it.
func checkedRun(log wodlog.Logger, run func(wodlog.Logger, bool, []string) error, args []string) error {
	cfgPath := extractConfigFlag(args)
	cfg, err := config.Load(cfgPath, cfgPath != "")
	if err != nil {
		return badUsage(fmt.Sprintf("invalid configuration file: %v", err))
	}
	if cfg.Verbose {
		log = wodlog.NewLogrus(os.Stderr, Program, Version, true)
	}
	return run(log, cfg.Verbose, args)
}

// extractConfigFlag does a minimal pre-scan for -config before the
// subcommand's own FlagSet runs, since the config file can itself
// enable -verbose before logging is constructed.
func extractConfigFlag(args []string) string {
	for i, a := range args {
		if a == "-config" || a == "--config" {
			if i+1 < len(args) {
				return args[i+1]
			}
		}
	}
	return ""
}

// commonFlags registers the -catalog/-track/-gender/-config/-verbose
// flags shared by every subcommand but fmt.
func commonFlags(fs *flag.FlagSet, cfg *commonOpts) {
	fs.StringVar(&cfg.catalog, "catalog", "", "movement catalog JSON file")
	fs.StringVar(&cfg.track, "track", "RX", "declared track to resolve against")
	fs.StringVar(&cfg.gender, "gender", "male", "male or female")
	fs.String("config", "", "optional .wodcrc.toml file")
	fs.BoolVar(&cfg.verbose, "verbose", false, "enable debug logging")
}

type commonOpts struct {
	catalog string
	track   string
	gender  string
	verbose bool
}

// upgradeLogger switches log to debug level when either the subcommand's
// own -verbose flag or the config file's Verbose setting asked for it.
func upgradeLogger(log wodlog.Logger, verbose bool) wodlog.Logger {
	if !verbose {
		return log
	}
	return wodlog.NewLogrus(os.Stderr, Program, Version, true)
}
