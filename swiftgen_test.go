package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/refaktor/swiftgen/toolchain/toolchaintest"
	"github.com/stretchr/testify/require"
)

const mylibInterface = `namespace = "mylib"

[[function]]
name = "add"
args = [{ name = "a", type = "u32" }, { name = "b", type = "u32" }]
return = "u32"
`

type testEnv struct {
	dir    string
	out    string
	iface  string
	runner *toolchaintest.Runner
	stdout strings.Builder
	stderr strings.Builder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	iface := filepath.Join(dir, "mylib.toml")
	require.NoError(t, os.WriteFile(iface, []byte(mylibInterface), 0666))
	return &testEnv{
		dir:    dir,
		out:    filepath.Join(dir, "out"),
		iface:  iface,
		runner: &toolchaintest.Runner{},
	}
}

func (e *testEnv) run(args ...string) int {
	e.stdout.Reset()
	e.stderr.Reset()
	args = append([]string{
		"-config", filepath.Join(e.dir, "swiftgen.toml"),
		"-env", filepath.Join(e.dir, ".env"),
	}, args...)
	return run(args, &e.stdout, &e.stderr, e.runner)
}

func TestGenerate(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)

	require.Equal(0, e.run("generate", "-out", e.out, e.iface), e.stderr.String())
	require.FileExists(filepath.Join(e.out, "mylib.swift"))
	require.FileExists(filepath.Join(e.out, "mylib.swiftmodule-dir", "uniffi.modulemap"))
	require.FileExists(filepath.Join(e.out, "mylib.swiftmodule-dir", "mylib-Bridging-Header.h"))
	require.Empty(e.runner.Invocations)

	require.Contains(e.stdout.String(), "mylib.swift")
	require.Contains(e.stdout.String(), "module map")
	require.Contains(e.stderr.String(), "INFO: wrote bindings for mylib to "+e.out)
}

func TestGenerateRelativeOut(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)
	wd, err := os.Getwd()
	require.NoError(err)
	require.NoError(os.Chdir(e.dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.Equal(0, e.run("generate", "-out", "out", e.iface), e.stderr.String())
	mm, err := os.ReadFile(filepath.Join(e.out, "mylib.swiftmodule-dir", "uniffi.modulemap"))
	require.NoError(err)
	// The temp dir may be behind a symlink, so only check that the path
	// is absolute.
	require.Contains(string(mm), `header "/`)
}

func TestBuild(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)

	require.Equal(0, e.run("-q", "build", "-out", e.out, e.iface, "main.swift"), e.stderr.String())
	require.Len(e.runner.Invocations, 2)
	require.Equal("swiftc", e.runner.Invocations[0].Name)
	require.Equal("swift", e.runner.Invocations[1].Name)
	require.Equal([]string{
		"-I", e.out, "-L", e.out,
		"-Xcc", "-fmodule-map-file=" + filepath.Join(e.out, "mylib.swiftmodule-dir", "uniffi.modulemap"),
		"main.swift",
	}, e.runner.Last().Args)
	require.Empty(e.stderr.String())
}

func TestBuildWithoutScript(t *testing.T) {
	e := newTestEnv(t)
	require.Equal(t, 0, e.run("build", "-out", e.out, e.iface), e.stderr.String())
	require.Len(t, e.runner.Invocations, 1)
	require.Contains(t, e.stderr.String(), "INFO: running swiftc -module-name mylib")
	require.Contains(t, e.stderr.String(), "INFO: built "+filepath.Join(e.out, "libmylib.dylib"))
}

func TestBuildStopsOnCompileFailure(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)
	e.runner.ExitCodes = map[string]int{"swiftc": 1}
	e.runner.Diagnostics = map[string]string{"swiftc": "mylib.swift:3:1: error: expected declaration\n"}

	require.Equal(1, e.run("build", "-out", e.out, e.iface, "main.swift"))
	require.Len(e.runner.Invocations, 1)
	require.Contains(e.stderr.String(), `ERROR:`)
	require.Contains(e.stderr.String(), `running "swiftc" failed: exit status 1`)
	require.Contains(e.stderr.String(), "    mylib.swift:3:1: error: expected declaration\n")
}

func TestCompileBeforeGenerate(t *testing.T) {
	e := newTestEnv(t)
	require.Equal(t, 1, e.run("compile", "-out", e.out, e.iface))
	require.Empty(t, e.runner.Invocations)
	require.Contains(t, e.stderr.String(), "stat "+filepath.Join(e.out, "mylib.swiftmodule-dir", "uniffi.modulemap"))
}

func TestRunWithoutOut(t *testing.T) {
	e := newTestEnv(t)
	require.Equal(t, 0, e.run("run"), e.stderr.String())
	require.Equal(t, "swift", e.runner.Last().Name)
	require.Empty(t, e.runner.Last().Args)
}

func TestConfigAndEnv(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)
	require.NoError(os.WriteFile(filepath.Join(e.dir, "swiftgen.toml"), []byte(`
[toolchain]
compiler = "swiftc-5.9"
interpreter = "swift-5.9"

[layout]
dylib-ext = "so"
`), 0666))

	require.Equal(0, e.run("build", "-out", e.out, e.iface, "main.swift"), e.stderr.String())
	require.Equal("swiftc-5.9", e.runner.Invocations[0].Name)
	require.Contains(e.runner.Invocations[0].Args, filepath.Join(e.out, "libmylib.so"))
	require.Equal("swift-5.9", e.runner.Invocations[1].Name)

	require.NoError(os.WriteFile(filepath.Join(e.dir, ".env"), []byte("SWIFTGEN_COMPILER=from-dotenv\n"), 0666))
	t.Setenv("SWIFTGEN_INTERPRETER", "from-env")
	// godotenv sets the variable for the whole process.
	t.Cleanup(func() { os.Unsetenv("SWIFTGEN_COMPILER") })

	e.runner.Invocations = nil
	require.Equal(0, e.run("build", "-out", e.out, e.iface, "main.swift"), e.stderr.String())
	require.Equal("from-dotenv", e.runner.Invocations[0].Name)
	require.Equal("from-env", e.runner.Invocations[1].Name)
}

func TestInvalidConfig(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, "swiftgen.toml"), []byte(`
[layout]
dylib-ext = ".so"
`), 0666))
	require.Equal(t, 1, e.run("generate", "-out", e.out, e.iface))
	require.Contains(t, e.stderr.String(), "must not start with '.'")
	require.NoDirExists(t, e.out)
}

func TestInvalidInterface(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, os.WriteFile(e.iface, []byte("namespace = \"mylib\"\nversion = \"x\"\n"), 0666))
	require.Equal(t, 1, e.run("generate", "-out", e.out, e.iface))
	require.Contains(t, e.stderr.String(), "not a semantic version")
}

func TestInit(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)

	require.Equal(0, e.run("init"), e.stderr.String())
	data, err := os.ReadFile(filepath.Join(e.dir, "swiftgen.toml"))
	require.NoError(err)
	require.Contains(string(data), `compiler = "swiftc"`)

	// The written config is usable.
	require.Equal(0, e.run("generate", "-out", e.out, e.iface), e.stderr.String())

	// Existing configs are not overwritten.
	require.Equal(1, e.run("init"))
}

func TestUsageErrors(t *testing.T) {
	e := newTestEnv(t)
	for _, args := range [][]string{
		{},
		{"frobnicate"},
		{"generate", e.iface},
		{"generate", "-out", e.out},
		{"compile", "-out", e.out, e.iface, "extra"},
		{"run", "-out", e.out, "a.swift", "b.swift"},
		{"build", "-bogus", "-out", e.out, e.iface},
		{"init", "extra"},
	} {
		require.Equal(t, 2, e.run(args...), "%q", args)
	}
	require.Empty(t, e.runner.Invocations)
}

func TestHelp(t *testing.T) {
	e := newTestEnv(t)
	require.Equal(t, 0, e.run("-h"))
	require.Contains(t, e.stderr.String(), "usage: swiftgen")
}
