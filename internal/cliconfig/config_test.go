package cliconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davebshow/cypher-ro/internal/cliconfig"
)

func TestFindConfig_WalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfgPath := filepath.Join(root, ".cypherro.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("rule: BoolExpr\n"), 0o644))

	found, err := cliconfig.FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, found)
}

func TestFindConfig_PrefersYamlOverYml(t *testing.T) {
	root := t.TempDir()
	yamlPath := filepath.Join(root, ".cypherro.yaml")
	ymlPath := filepath.Join(root, ".cypherro.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("rule: Query\n"), 0o644))
	require.NoError(t, os.WriteFile(ymlPath, []byte("rule: Query\n"), 0o644))

	found, err := cliconfig.FindConfig(root)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, found)
}

func TestFindConfig_NotFound(t *testing.T) {
	root := t.TempDir()
	_, err := cliconfig.FindConfig(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cliconfig.ErrConfigNotFound))
}

func TestLoad_ParsesFields(t *testing.T) {
	root := t.TempDir()
	contents := `
rule: BoolExpr
lint:
  root: ./src
  patterns:
    - "*.go"
    - "*.cypher"
color: true
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".cypherro.yaml"), []byte(contents), 0o644))

	cfg, err := cliconfig.Load(root)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "BoolExpr", cfg.Rule)
	assert.Equal(t, "./src", cfg.Lint.Root)
	assert.Equal(t, []string{"*.go", "*.cypher"}, cfg.Lint.Patterns)
	require.NotNil(t, cfg.Color)
	assert.True(t, *cfg.Color)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := cliconfig.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
