package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/woozymasta/lintkit/lint"

	"github.com/woozymasta/maple"
)

const appName = "maple"

// version is set at build time.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "tokens":
		os.Exit(cmdTokens(os.Args[2:]))
	case "ast":
		os.Exit(cmdAST(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "version":
		fmt.Println(version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`MAPLe %s

Usage:
  %s run [--config f] [--log-level l] <file>     Evaluate a script and print its result.
  %s repl [--config f] [--log-level l]           Start the interactive shell.
  %s tokens <file>                               Print the token sequence.
  %s ast <file>                                  Print the parsed script.
  %s check [--config f] <file>                   Report static validation issues.
  %s version                                     Print the version.

`, version, appName, appName, appName, appName, appName, appName)
}

// env is the state shared by subcommands.
type env struct {
	cfg *config
	log zerolog.Logger
}

// setup parses the common flags and returns the remaining arguments.
func setup(name string, args []string) (*env, []string, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfgPath := fs.String("config", "", "path to a YAML config file")
	level := fs.String("log-level", "", "log level (trace, debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, false
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return nil, nil, false
	}
	if *level != "" {
		cfg.LogLevel = *level
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return nil, nil, false
	}
	cfg.Eval.Logger = &log

	return &env{cfg: cfg, log: log}, fs.Args(), true
}

// readSource reads the single file argument.
func (e *env) readSource(cmd string, args []string) (string, bool) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s %s <file>\n", appName, cmd)
		return "", false
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		e.log.Error().Err(err).Str("path", args[0]).Msg("cannot read script")
		return "", false
	}

	return string(b), true
}

func cmdRun(args []string) int {
	e, rest, ok := setup("run", args)
	if !ok {
		return 2
	}
	src, ok := e.readSource("run", rest)
	if !ok {
		return 1
	}

	v, err := maple.Eval(src, &e.cfg.Eval)
	if err != nil {
		// The first error halts the driver.
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Println(v)
	return 0
}

func cmdTokens(args []string) int {
	e, rest, ok := setup("tokens", args)
	if !ok {
		return 2
	}
	src, ok := e.readSource("tokens", rest)
	if !ok {
		return 1
	}

	toks, err := maple.Tokenize(src, &e.cfg.Eval.Parse)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, t := range toks {
		fmt.Printf("%d:%d\t%s\n", t.Line, t.Col, t)
	}

	return 0
}

func cmdAST(args []string) int {
	e, rest, ok := setup("ast", args)
	if !ok {
		return 2
	}
	src, ok := e.readSource("ast", rest)
	if !ok {
		return 1
	}

	s, err := maple.Parse(src, &e.cfg.Eval.Parse)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := maple.EncodeScript(os.Stdout, s); err != nil {
		e.log.Error().Err(err).Msg("write failed")
		return 1
	}

	return 0
}

func cmdCheck(args []string) int {
	e, rest, ok := setup("check", args)
	if !ok {
		return 2
	}
	src, ok := e.readSource("check", rest)
	if !ok {
		return 1
	}

	s, err := maple.Parse(src, &e.cfg.Eval.Parse)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	issues := maple.Validate(s, &e.cfg.Validate)
	for _, is := range issues {
		fmt.Println(is)
	}
	e.log.Debug().Int("issues", len(issues)).Msg("validation done")

	if err := lint.ErrorFromDiagnostics(maple.Diagnostics(issues), lint.SeverityError); err != nil {
		e.log.Debug().Err(err).Msg("check failed")
		return 1
	}

	return 0
}
