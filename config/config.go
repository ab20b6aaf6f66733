package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type Toolchain struct {
	// Compiler used to build the generated module (swiftc).
	Compiler string `toml:"compiler"`
	// Interpreter used to run scripts against it (swift).
	Interpreter string `toml:"interpreter"`
}

type Layout struct {
	// Extension of the dynamic library produced by the compiler,
	// without the dot.
	DylibExt string `toml:"dylib-ext"`
	// Extensions recognized as shared libraries when scanning an
	// output directory, without the dot.
	SharedLibExts []string `toml:"shared-lib-exts"`
}

type Output struct {
	// Write each artifact to a temporary file first and rename it into
	// place.
	AtomicWrites *bool `toml:"atomic-writes"`
}

type Config struct {
	// Imports are resolved and cleared by [Load].
	Imports   []string  `toml:"imports"`
	Toolchain Toolchain `toml:"toolchain"`
	Layout    Layout    `toml:"layout"`
	Output    Output    `toml:"output"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	atomicWrites := true
	return &Config{
		Toolchain: Toolchain{
			Compiler:    "swiftc",
			Interpreter: "swift",
		},
		Layout: Layout{
			DylibExt:      "dylib",
			SharedLibExts: []string{"dylib", "so"},
		},
		Output: Output{
			AtomicWrites: &atomicWrites,
		},
	}
}

// Atomic reports whether artifacts are written atomically.
func (c *Config) Atomic() bool {
	return c.Output.AtomicWrites == nil || *c.Output.AtomicWrites
}

type Error struct {
	filePath string
	err      error  // short, single-line error
	str      string // full, multi-line error string, or err string, if none
}

// Error returns a short error message.
func (e *Error) Error() string {
	return e.filePath + ": " + e.err.Error()
}

// String returns the full multi-line error string.
func (e *Error) String() string {
	if e.str != "" {
		return "Error in file " + strconv.Quote(e.filePath) + ":\n" + e.str
	} else {
		return e.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.err
}

// Load reads the config file at path, merges in its imports and fills
// everything left unset with [Default] values.
func Load(path string) (*Config, error) {
	c, err := load(path, nil)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(c, Default(), mergo.WithoutDereference); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadOrDefault is like [Load], but returns [Default] if path doesn't
// exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

func load(path string, seen []string) (_ *Config, err error) {
	defer func() {
		if err != nil {
			if cErr := (&Error{}); errors.As(err, &cErr) {
				return
			}
			if tErr := (&toml.DecodeError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else if tErr := (&toml.StrictMissingError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else {
				err = &Error{filePath: path, err: err}
			}
		}
	}()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	for _, p := range seen {
		if p == abs {
			return nil, fmt.Errorf("import cycle: %v", strings.Join(append(seen, abs), " -> "))
		}
	}
	seen = append(seen, abs)

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := &Config{}
	err = toml.NewDecoder(bytes.NewReader(file)).
		DisallowUnknownFields().
		Decode(c)
	if err != nil {
		return nil, err
	}

	var importedCs []*Config // collect imported files first so their imports don't leak into our file's imports
	for _, imp := range c.Imports {
		if !filepath.IsAbs(imp) {
			imp = filepath.Join(filepath.Dir(path), imp)
		}
		newC, err := load(imp, seen)
		if err != nil {
			return nil, err
		}
		importedCs = append(importedCs, newC)
	}
	for _, newC := range importedCs {
		if err := mergo.Merge(c, newC, mergo.WithAppendSlice, mergo.WithoutDereference); err != nil {
			return nil, err
		}
	}
	c.Imports = nil // consumed

	return c, nil
}

// Environment variables overriding config values.
const (
	EnvCompiler    = "SWIFTGEN_COMPILER"
	EnvInterpreter = "SWIFTGEN_INTERPRETER"
	EnvDylibExt    = "SWIFTGEN_DYLIB_EXT"
)

// LoadDotEnv loads variables from a .env file into the process
// environment. A missing file is not an error. Variables already set in
// the environment take precedence.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %v: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values with the SWIFTGEN_* variables
// returned by getenv (usually [os.Getenv]).
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvCompiler)); v != "" {
		c.Toolchain.Compiler = v
	}
	if v := strings.TrimSpace(getenv(EnvInterpreter)); v != "" {
		c.Toolchain.Interpreter = v
	}
	if v := strings.TrimSpace(getenv(EnvDylibExt)); v != "" {
		c.Layout.DylibExt = v
	}
}

// Validate reports all problems with the config at once.
func (c *Config) Validate() error {
	var res *multierror.Error
	if c.Toolchain.Compiler == "" {
		res = multierror.Append(res, errors.New("toolchain.compiler is empty"))
	}
	if c.Toolchain.Interpreter == "" {
		res = multierror.Append(res, errors.New("toolchain.interpreter is empty"))
	}
	checkExt := func(key, ext string) {
		switch {
		case ext == "":
			res = multierror.Append(res, fmt.Errorf("%v: empty extension", key))
		case strings.HasPrefix(ext, "."):
			res = multierror.Append(res, fmt.Errorf("%v: extension %q must not start with '.'", key, ext))
		case strings.ContainsAny(ext, `/\`):
			res = multierror.Append(res, fmt.Errorf("%v: extension %q contains a path separator", key, ext))
		}
	}
	checkExt("layout.dylib-ext", c.Layout.DylibExt)
	if len(c.Layout.SharedLibExts) == 0 {
		res = multierror.Append(res, errors.New("layout.shared-lib-exts is empty"))
	}
	for _, ext := range c.Layout.SharedLibExts {
		checkExt("layout.shared-lib-exts", ext)
	}
	return res.ErrorOrNil()
}

// DefaultConfig returns the contents of a commented default config file.
func DefaultConfig() string {
	return `# swiftgen configuration

# Further config files to merge into this one (paths relative to this file).
imports = []

[toolchain]
compiler = "swiftc"
interpreter = "swift"

[layout]
# lib<namespace>.<dylib-ext> is produced by "swiftgen compile".
dylib-ext = "dylib"
# Libraries with these extensions in the output directory are linked by "swiftgen run".
shared-lib-exts = ["dylib", "so"]

[output]
atomic-writes = true
`
}
