package main

import (
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"github.com/davebshow/cypher-ro/ast"
)

func printJSON(w io.Writer, n *ast.Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(n)
}

// logField adapts a bare key/value pair to a zap.Field via zap.Any, so
// call sites don't need to pick the right typed constructor by hand.
func logField(key string, value any) zap.Field {
	return zap.Any(key, value)
}
