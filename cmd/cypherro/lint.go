package main

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/boyter/gocodewalker"
	"github.com/urfave/cli/v3"

	"github.com/davebshow/cypher-ro/cypher"
	"github.com/davebshow/cypher-ro/internal/cliconfig"
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "walk a source tree and recognize every embedded Cypher literal found",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "pattern", Usage: "file pattern to scan (repeatable); only its extension after the last '.' is used; default *.go"},
		},
		Action: runLint,
	}
}

// cypherLiteral matches a backquoted Go raw string literal whose contents
// look like a Cypher query: it starts with MATCH/OPTIONAL/WITH/RETURN,
// ignoring leading whitespace. This is a heuristic, not a Go parser —
// good enough to find the literals worth re-checking against the
// recognizer without pulling in go/parser for a CLI this thin.
var cypherLiteral = regexp.MustCompile("(?is)`\\s*((?:(?:OPTIONAL\\s+)?MATCH|WITH|RETURN)\\b.*?)`")

func runLint(ctx context.Context, cmd *cli.Command) error {
	logger := loggerFrom(ctx)

	root := "."
	if cmd.Args().Len() > 0 {
		root = cmd.Args().First()
	}

	patterns := cmd.StringSlice("pattern")
	if cfg, err := cliconfig.Load(root); err == nil {
		if root == "." && cfg.Lint.Root != "" {
			root = cfg.Lint.Root
		}
		if len(patterns) == 0 {
			patterns = cfg.Lint.Patterns
		}
	}
	if len(patterns) == 0 {
		patterns = []string{"*.go"}
	}

	fileListQueue := make(chan *gocodewalker.File, 100)
	walker := gocodewalker.NewFileWalker(root, fileListQueue)
	walker.AllowListExtensions = extensionsFromPatterns(patterns)
	walker.SetErrorHandler(func(e error) bool {
		logger.Warn("walk error", logField("error", e.Error()))
		return true
	})

	walkErrs := make(chan error, 1)
	go func() { walkErrs <- walker.Start() }()

	failures := 0
	scanned := 0
	for f := range fileListQueue {
		data, err := os.ReadFile(f.Location)
		if err != nil {
			logger.Warn("read failed", logField("path", f.Location), logField("error", err.Error()))
			continue
		}

		for _, match := range cypherLiteral.FindAllStringSubmatch(string(data), -1) {
			scanned++
			query := match[1]
			if _, err := cypher.Parse(query, "Query"); err != nil {
				failures++
				fmt.Fprintf(os.Stderr, "%s: %s\n", f.Location, err)
			}
		}
	}

	if err := <-walkErrs; err != nil {
		return exitCode(2, fmt.Errorf("lint: %w", err))
	}

	logger.Info("lint complete", logField("scanned", scanned), logField("failed", failures))
	if failures > 0 {
		return exitCode(1, fmt.Errorf("lint: %d quer%s failed to parse", failures, plural(failures)))
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func extensionsFromPatterns(patterns []string) []string {
	exts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		ext := p
		for i := len(p) - 1; i >= 0; i-- {
			if p[i] == '.' {
				ext = p[i+1:]
				break
			}
		}
		exts = append(exts, ext)
	}
	return exts
}
