package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hnhuaxi/singleton/gen"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configSource = `package app

//singleton:safe
type Config struct {
	Addr string
}

//singleton:unsafe
type Counter struct {
	N int
}
`

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer

	cmd := newRootCmd("test")
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func packageDir(t *testing.T, src string) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.go"), []byte(src), 0o644))
	return dir
}

func TestGenerateDryRun(t *testing.T) {
	dir := packageDir(t, configSource)

	out, err := run(t, dir, "--dry-run", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "// "+filepath.Join(dir, "config_singleton.go"))
	assert.Contains(t, out, "func InitializeConfig(instance Config)")
	assert.Contains(t, out, "func GlobalCounter() *Counter")

	_, err = os.Stat(filepath.Join(dir, "config_singleton.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestTargetDirsDefaultsToWorkingDir(t *testing.T) {
	assert.Equal(t, []string{"."}, targetDirs(nil))
	assert.Equal(t, []string{"a", "b"}, targetDirs([]string{"a", "b"}))
}

func TestGenerateWrites(t *testing.T) {
	dir := packageDir(t, configSource)

	_, err := run(t, dir, "--log-level", "error")
	require.NoError(t, err)

	src, err := os.ReadFile(filepath.Join(dir, "config_singleton.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "func WriteConfig() *singleton.WriteGuard[Config]")
}

func TestGenerateConfigFile(t *testing.T) {
	dir := packageDir(t, configSource)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".singletongen.yaml"), []byte("suffix: _gen.go\ninit_prefix: Setup\ntags: linux\n"), 0o644))

	out, err := run(t, dir, "--dry-run", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "// "+filepath.Join(dir, "config_gen.go"))
	assert.Contains(t, out, "func SetupConfig(instance Config)")
	assert.Contains(t, out, "//go:build linux")

	out, err = run(t, dir, "--dry-run", "--log-level", "error", "--suffix", "_flag.go")
	require.NoError(t, err)
	assert.Contains(t, out, "// "+filepath.Join(dir, "config_flag.go"))
	assert.Contains(t, out, "func SetupConfig(instance Config)")
}

func TestGenerateExplicitConfigMissing(t *testing.T) {
	dir := packageDir(t, configSource)

	_, err := run(t, dir, "--config", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestGenerateRejectsNonStruct(t *testing.T) {
	dir := packageDir(t, "package app\n\n//singleton:safe\ntype ID string\n")

	_, err := run(t, dir, "--log-level", "error")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gen.ErrInvalidDirective))

	_, err = os.Stat(filepath.Join(dir, "config_singleton.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateBadLogLevel(t *testing.T) {
	dir := packageDir(t, configSource)

	_, err := run(t, dir, "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `log level "loud"`)
}

func TestList(t *testing.T) {
	dir := packageDir(t, configSource)

	out, err := run(t, "list", dir, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "app.Config")
	assert.Contains(t, out, "app.Counter")
	assert.Regexp(t, `config\.go:4:6\s+app\.Config\s+safe`, out)
	assert.Regexp(t, `config\.go:9:6\s+app\.Counter\s+unsafe`, out)
}
