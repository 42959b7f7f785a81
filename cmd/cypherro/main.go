// Command cypherro is a thin CLI over the cypher package: `parse` feeds a
// single query through the recognizer and prints its parse tree, `lint`
// walks a source tree looking for embedded Cypher literals and reports
// the ones that fail to parse.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	os.Exit(run(context.Background(), os.Args))
}

func run(ctx context.Context, args []string) int {
	app := &cli.Command{
		Name:  "cypherro",
		Usage: "recognize and inspect read-only Cypher queries",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := zapcore.InfoLevel
			if cmd.Bool("debug") {
				level = zapcore.DebugLevel
			}
			logger, err := newLogger(level)
			if err != nil {
				return ctx, err
			}
			return context.WithValue(ctx, loggerKey{}, logger), nil
		},
		Commands: []*cli.Command{
			parseCommand(),
			lintCommand(),
		},
	}

	err := app.Run(ctx, args)
	if err == nil {
		return 0
	}

	logger := loggerFrom(ctx)
	var ee *exitError
	if errors.As(err, &ee) {
		logger.Error(ee.err.Error())
		return ee.code
	}
	logger.Error(err.Error())
	return 2
}

// newLogger builds a stderr-only logger in the teacher's own startup-logger
// style (cmd/scaf-lsp): development config, explicit output paths, an
// atomic level set from the --debug flag.
func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

type loggerKey struct{}

func loggerFrom(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	l, _ := zap.NewDevelopment()
	return l
}

// exitError carries the process exit code a subcommand wants alongside
// the underlying error (spec.md §6: 0 accepted, 1 syntax error, 2 usage
// error).
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}
