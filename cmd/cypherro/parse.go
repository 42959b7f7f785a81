package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/davebshow/cypher-ro/ast"
	"github.com/davebshow/cypher-ro/cypher"
	"github.com/davebshow/cypher-ro/internal/cliconfig"
)

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "recognize a single query and print its parse tree",
		ArgsUsage: "<file|->",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rule", Value: "Query", Usage: "start rule to parse against"},
			&cli.BoolFlag{Name: "json", Usage: "print the tree as JSON instead of an indented listing"},
		},
		Action: runParse,
	}
}

func runParse(ctx context.Context, cmd *cli.Command) error {
	logger := loggerFrom(ctx)

	if cmd.Args().Len() != 1 {
		return exitCode(2, fmt.Errorf("parse: expected exactly one argument, <file|->"))
	}

	rule := cmd.String("rule")
	if cfg, err := cliconfig.Load("."); err == nil && !cmd.IsSet("rule") && cfg.Rule != "" {
		rule = cfg.Rule
	}

	if _, ok := cypher.NamedRule(rule); !ok {
		return exitCode(2, fmt.Errorf("parse: unknown rule %q", rule))
	}

	text, err := readInput(cmd.Args().First())
	if err != nil {
		return exitCode(2, fmt.Errorf("parse: %w", err))
	}

	logger.Debug("parsing", logField("rule", rule), logField("bytes", len(text)))

	tree, err := cypher.Parse(text, rule)
	if err != nil {
		return exitCode(1, diagnosticError(text, err))
	}

	if cmd.Bool("json") {
		return printJSON(os.Stdout, tree)
	}
	return printTree(os.Stdout, tree)
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// diagnosticError wraps a recognizer failure with a caret-style source
// snippet, colorized when stderr is a TTY (unless .cypherro.yaml's color
// setting says otherwise), matching the way the teacher's own tooling
// gates color output on isatty.IsTerminal.
func diagnosticError(src string, err error) error {
	var syn *cypher.SyntaxError
	if !errors.As(err, &syn) {
		return err
	}

	line := lineAt(src, syn.Pos.Line)
	caret := strings.Repeat(" ", max(0, syn.Pos.Column-1)) + "^"

	useColor := isatty.IsTerminal(os.Stderr.Fd())
	if cfg, cfgErr := cliconfig.Load("."); cfgErr == nil && cfg.Color != nil {
		useColor = *cfg.Color
	}
	msg := syn.Error()
	if useColor {
		msg = "\033[31m" + msg + "\033[0m"
	}

	return fmt.Errorf("%s\n%s\n%s\n%s", syn.Pos.String(), line, caret, msg)
}

func lineAt(src string, lineNo int) string {
	lines := strings.Split(src, "\n")
	if lineNo < 1 || lineNo > len(lines) {
		return ""
	}
	return lines[lineNo-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func printTree(w io.Writer, n *ast.Node) error {
	return printTreeIndent(w, n, 0)
}

func printTreeIndent(w io.Writer, n *ast.Node, depth int) error {
	if n == nil {
		return nil
	}
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s%s [%d:%d]\n", indent, n.Tag, n.Span.Start, n.Span.End); err != nil {
		return err
	}
	for _, child := range n.Children {
		switch c := child.(type) {
		case *ast.Node:
			if err := printTreeIndent(w, c, depth+1); err != nil {
				return err
			}
		case string:
			if _, err := fmt.Fprintf(w, "%s  %q\n", indent, c); err != nil {
				return err
			}
		}
	}
	return nil
}
