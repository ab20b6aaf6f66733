package swift

import (
	"errors"
	"os"

	"github.com/refaktor/swiftgen/ci"
	"github.com/refaktor/swiftgen/toolchain"
)

// DefaultCompiler is the compiler program used when none is configured.
const DefaultCompiler = "swiftc"

// Compiler builds the generated module of a component into a dynamic
// library.
type Compiler struct {
	// Runner spawns the compiler; nil means a [toolchain.ExecRunner]
	// attached to the terminal.
	Runner toolchain.Runner
	// Program name; empty means [DefaultCompiler].
	Tool string
	// Extension of the produced library; empty means [DefaultDylibExt].
	DylibExt string
}

func (c *Compiler) tool() string {
	if c.Tool == "" {
		return DefaultCompiler
	}
	return c.Tool
}

// Invocation returns the compiler command line for layout.
func (c *Compiler) Invocation(cfg Config, layout Layout) toolchain.Invocation {
	inv := toolchain.Command(c.tool())
	inv.Arg("-module-name", cfg.ModuleName)
	inv.Arg("-emit-library", "-o", layout.DylibFile(c.DylibExt))
	inv.Arg("-emit-module", "-emit-module-path", layout.OutDir)
	inv.Arg("-parse-as-library")
	inv.Arg("-L", layout.OutDir)
	inv.Arg("-l" + cfg.CdylibName)
	inv.Arg("-Xcc", "-fmodule-map-file="+layout.ModuleMapFile)
	inv.Arg(layout.SourceFile)
	return inv
}

// CompileBindings compiles the bindings previously written to outDir by
// [Writer.WriteBindings] into lib<ns>.<ext> inside outDir.
//
// If the module map or the source is missing, an [IOError] is returned
// and the compiler is not run.
func (c *Compiler) CompileBindings(ci *ci.Interface, outDir string) error {
	layout := PlanLayout(outDir, ci.Namespace())
	for _, path := range []string{layout.ModuleMapFile, layout.SourceFile} {
		if _, err := os.Stat(path); err != nil {
			return &IOError{Op: "stat", Path: path, Err: err}
		}
	}
	return run(c.Runner, c.Invocation(NewConfig(ci), layout))
}

// run runs inv and turns anything but a successful exit into a
// [ToolchainError]. A nil runner means a [toolchain.ExecRunner].
func run(runner toolchain.Runner, inv toolchain.Invocation) error {
	if runner == nil {
		runner = &toolchain.ExecRunner{}
	}
	res, err := runner.Run(inv)
	if err != nil {
		return &ToolchainError{Tool: inv.Name, ExitCode: -1, Err: err}
	}
	if res == nil {
		return &ToolchainError{Tool: inv.Name, ExitCode: -1, Err: errors.New("no result")}
	}
	if !res.Success() {
		return &ToolchainError{Tool: inv.Name, ExitCode: res.ExitCode, Diagnostics: res.Diagnostics}
	}
	return nil
}
