package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	jsoniter "github.com/json-iterator/go"

	jsonc "github.com/JoshuaKGoldberg/jsonc-eslint-parser"
)

const (
	appName     = "jsonc"
	historyFile = ".jsonc_history"
	promptMain  = "==> "
)

var banner = fmt.Sprintf("%s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", appName)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	syntax := flag.String("syntax", "", "dialect: json, jsonc, json5 (default: full superset)")
	showAST := flag.Bool("ast", false, "print the AST instead of the evaluated value")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-syntax dialect] [-ast] [file]\n", appName)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		os.Exit(cmdFile(flag.Arg(0), *syntax, *showAST))
	}
	os.Exit(cmdRepl(*syntax, *showAST))
}

// -----------------------------------------------------------------------------
// file mode
// -----------------------------------------------------------------------------

func cmdFile(path, syntax string, showAST bool) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	out, err := render(string(data), syntax, showAST)
	if err != nil {
		fmt.Fprintln(os.Stderr, jsonc.WrapErrorWithName(err, path, string(data)).Error())
		return 1
	}
	fmt.Println(out)
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(syntax string, showAST bool) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			continue
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if strings.HasPrefix(code, ":") {
			switch strings.ToLower(code) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		out, err := render(line, syntax, showAST)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(jsonc.WrapErrorWithSource(err, line).Error()))
			continue
		}
		fmt.Println(green(out))
		ln.AppendHistory(line)
	}
}

// -----------------------------------------------------------------------------
// rendering
// -----------------------------------------------------------------------------

func render(src, syntax string, showAST bool) (string, error) {
	res, err := jsonc.ParseForESLint(src, &jsonc.ParserOptions{JSONSyntax: syntax})
	if err != nil {
		return "", err
	}
	if showAST {
		return dumpAST(res.AST), nil
	}
	v, err := jsonc.GetStaticJSONValue(res.AST)
	if err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(printable(v), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// printable rewrites evaluated values that have no JSON encoding into
// display strings.
func printable(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = printable(e)
		}
		return out
	case []any:
		out := make([]any, 0, len(x))
		for _, e := range x {
			out = append(out, printable(e))
		}
		return out
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return fmt.Sprint(x)
		}
		return x
	case jsonc.UndefinedValue:
		return "undefined"
	case fmt.Stringer:
		return x.String()
	default:
		return x
	}
}

// dumpAST renders the node tree with kinds and source ranges.
func dumpAST(root jsonc.Node) string {
	var b strings.Builder
	depth := 0
	jsonc.TraverseNodes(root, jsonc.Visitor{
		EnterNode: func(n jsonc.Node) {
			r := n.Range()
			fmt.Fprintf(&b, "%s%s [%d, %d)\n", strings.Repeat("  ", depth), n.Type(), r[0], r[1])
			depth++
		},
		LeaveNode: func(jsonc.Node) { depth-- },
	})
	return strings.TrimRight(b.String(), "\n")
}
