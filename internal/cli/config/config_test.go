package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", DefaultDialect, "")
	flags.String("output", DefaultOutput, "")
	flags.Bool("verbose", false, "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: mysql\nverbose: true\n"), 0644))

	cfg, err := Load(path, newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Dialect)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), newFlags(t))
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: mysql\n"), 0644))
	t.Setenv("QB_DIALECT", "mssql")

	cfg, err := Load(path, newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "mssql", cfg.Dialect)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("QB_DIALECT", "mssql")

	flags := newFlags(t)
	require.NoError(t, flags.Parse([]string{"--dialect", "sqlite"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Dialect)
}

func TestLoadUnchangedFlagsDoNotOverride(t *testing.T) {
	t.Setenv("QB_OUTPUT", "json")

	cfg, err := Load("", newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}
