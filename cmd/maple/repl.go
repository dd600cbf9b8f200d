package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/woozymasta/maple"
)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func cmdRepl(args []string) int {
	e, _, ok := setup("repl", args)
	if !ok {
		return 2
	}
	rc := e.cfg.REPL

	fmt.Printf("MAPLe %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", version)

	histPath := rc.History
	if histPath != "" && !filepath.IsAbs(histPath) {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, histPath)
		}
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	ip := maple.NewInterpreter(&e.cfg.Eval)
	for {
		code, ok := readByParseProbe(ln, rc.Prompt, rc.Continue, &e.cfg.Eval.Parse)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		s, err := maple.Parse(code, &e.cfg.Eval.Parse)
		if err == nil {
			var vals []*maple.Value
			vals, err = ip.RunScript(s)
			for _, v := range vals {
				fmt.Println(blue(v.String()))
			}
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			if rc.HaltOnError {
				return 1
			}
		}
	}
}

// readByParseProbe reads lines until the buffered input no longer fails for
// lack of input, so multi-line expressions can be entered.
func readByParseProbe(ln *liner.State, prompt, cont string, opt *maple.ParseOptions) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		if _, perr := maple.Parse(src, opt); perr != nil && maple.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
