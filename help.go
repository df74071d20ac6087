package main

const helpText = `wodc - a compiler toolchain for the WODCraft workout DSL

Usage: wodc <command> [options] <file>

Commands:

  parse <file> [-o out]                 parse + resolve, print the AST as JSON
  lint <file>                           parse + resolve + lint, print diagnostics
  run <file> [--format text|json]       parse + resolve, print the timeline
  export <file> --to {json,ics,html} -o <out>
                                         parse + resolve, write an export file
  fmt <file> [-i|-o out]                normalize source text

Common options (all commands except fmt):

  -catalog <path>   movement catalog JSON file
  -track <id>       declared track to resolve against (default RX)
  -gender <g>       male or female (default male)

Other options:

  -config <path>    .wodcrc.toml settings file (only its verbose key is applied)
  -verbose          enable debug-level logging
  -version          print wodc version and exit
  -help             print this message and exit
`
