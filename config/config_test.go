package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

func writeArchive(t *testing.T, name string) string {
	t.Helper()
	ar, err := txtar.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	dir := t.TempDir()
	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o777))
		require.NoError(t, os.WriteFile(path, f.Data, 0o666))
	}
	return dir
}

func TestLoadWithImports(t *testing.T) {
	require := require.New(t)
	dir := writeArchive(t, "configs.txtar")

	c, err := Load(filepath.Join(dir, "swiftgen.toml"))
	require.NoError(err)
	require.Equal("/opt/swift/bin/swiftc", c.Toolchain.Compiler)
	require.Equal("/opt/swift/bin/swift", c.Toolchain.Interpreter)
	require.Equal("so", c.Layout.DylibExt)
	require.Equal([]string{"so"}, c.Layout.SharedLibExts)
	require.False(c.Atomic())
	require.NoError(c.Validate())
}

func TestLoadEmptyUsesDefaults(t *testing.T) {
	require := require.New(t)
	dir := writeArchive(t, "configs.txtar")

	c, err := Load(filepath.Join(dir, "empty.toml"))
	require.NoError(err)
	require.Equal(Default(), c)
	require.True(c.Atomic())
}

func TestLoadAtomicWritesOff(t *testing.T) {
	dir := writeArchive(t, "configs.txtar")

	for _, file := range []string{"atomic_off.toml", "atomic_off_importer.toml"} {
		t.Run(file, func(t *testing.T) {
			require := require.New(t)

			c, err := Load(filepath.Join(dir, file))
			require.NoError(err)
			require.NotNil(c.Output.AtomicWrites)
			require.False(*c.Output.AtomicWrites)
			require.False(c.Atomic())
			// Everything else still comes from the defaults.
			require.Equal(Default().Toolchain, c.Toolchain)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	require := require.New(t)

	c, err := LoadOrDefault(filepath.Join(t.TempDir(), "swiftgen.toml"))
	require.NoError(err)
	require.Equal(Default(), c)
}

func TestLoadErrors(t *testing.T) {
	dir := writeArchive(t, "configs.txtar")

	for _, tc := range []struct {
		file    string
		message string
	}{
		{"unknown.toml", "linker"},
		{"cycle_a.toml", "import cycle"},
		{"missing.toml", "no such file"},
	} {
		t.Run(tc.file, func(t *testing.T) {
			require := require.New(t)

			_, err := Load(filepath.Join(dir, tc.file))
			var cErr *Error
			require.ErrorAs(err, &cErr)
			require.Contains(cErr.Error()+"\n"+cErr.String(), tc.message)
		})
	}
}

func TestValidate(t *testing.T) {
	require := require.New(t)
	dir := writeArchive(t, "configs.txtar")

	c, err := Load(filepath.Join(dir, "invalid.toml"))
	require.NoError(err)
	// An explicitly empty compiler is filled in by the defaults.
	require.Equal("swiftc", c.Toolchain.Compiler)

	err = c.Validate()
	var multErr *multierror.Error
	require.True(errors.As(err, &multErr))
	require.Len(multErr.Errors, 2)
	require.ErrorContains(err, `extension ".dylib" must not start with '.'`)
	require.ErrorContains(err, `extension "lib/so" contains a path separator`)

	require.NoError(Default().Validate())
	require.Error((&Config{}).Validate())
}

func TestApplyEnv(t *testing.T) {
	require := require.New(t)

	c := Default()
	env := map[string]string{
		EnvCompiler: "/usr/bin/swiftc-5.10",
		EnvDylibExt: " so ",
	}
	c.ApplyEnv(func(k string) string { return env[k] })
	require.Equal("/usr/bin/swiftc-5.10", c.Toolchain.Compiler)
	require.Equal("swift", c.Toolchain.Interpreter)
	require.Equal("so", c.Layout.DylibExt)
}

func TestLoadDotEnv(t *testing.T) {
	require := require.New(t)

	require.NoError(LoadDotEnv(filepath.Join(t.TempDir(), ".env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(os.WriteFile(path, []byte("SWIFTGEN_TEST_DOTENV=from-file\n"), 0o666))
	t.Setenv("SWIFTGEN_TEST_DOTENV", "")
	os.Unsetenv("SWIFTGEN_TEST_DOTENV")
	require.NoError(LoadDotEnv(path))
	require.Equal("from-file", os.Getenv("SWIFTGEN_TEST_DOTENV"))
}

func TestDefaultConfigRoundTrip(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "swiftgen.toml")
	require.NoError(os.WriteFile(path, []byte(DefaultConfig()), 0o666))
	c, err := Load(path)
	require.NoError(err)
	require.Equal(Default(), c)
}
