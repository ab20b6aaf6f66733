package swift

import (
	"slices"

	"github.com/refaktor/swiftgen/toolchain"
)

// DefaultInterpreter is the interpreter program used when none is
// configured.
const DefaultInterpreter = "swift"

// DefaultSharedLibExts are the extensions recognized as shared libraries
// when none are configured.
var DefaultSharedLibExts = []string{"dylib", "so"}

// ScriptRunner runs Swift scripts against the modules compiled into an
// output directory.
type ScriptRunner struct {
	// Runner spawns the interpreter; nil means a [toolchain.ExecRunner]
	// attached to the terminal.
	Runner toolchain.Runner
	// Lister scans the output directory; nil means [toolchain.DirLister].
	Lister toolchain.Lister
	// Program name; empty means [DefaultInterpreter].
	Tool string
	// Empty means [DefaultSharedLibExts].
	SharedLibExts []string
}

// Invocation scans outDir and returns the interpreter command line.
// Either argument may be empty. Without a script the invocation is
// interactive.
//
// Discovered entries are sorted by path, so the command line only depends
// on the directory contents. All module map flags precede all link flags.
func (r *ScriptRunner) Invocation(outDir, scriptFile string) (toolchain.Invocation, error) {
	tool := r.Tool
	if tool == "" {
		tool = DefaultInterpreter
	}
	inv := toolchain.Command(tool)

	if outDir != "" {
		lister := r.Lister
		if lister == nil {
			lister = toolchain.DirLister{}
		}
		libExts := r.SharedLibExts
		if len(libExts) == 0 {
			libExts = DefaultSharedLibExts
		}

		moduleDirs, err := lister.ListByExt(outDir, ModuleDirExt)
		if err != nil {
			return toolchain.Invocation{}, &IOError{Op: "readdir", Path: outDir, Err: err}
		}
		libs, err := lister.ListByExt(outDir, libExts...)
		if err != nil {
			return toolchain.Invocation{}, &IOError{Op: "readdir", Path: outDir, Err: err}
		}
		slices.Sort(moduleDirs)
		slices.Sort(libs)

		inv.Arg("-I", outDir, "-L", outDir)
		for _, dir := range moduleDirs {
			inv.Arg("-Xcc", "-fmodule-map-file="+ModuleMapFileIn(dir))
		}
		for _, lib := range libs {
			inv.Arg("-l" + lib)
		}
	}

	if scriptFile != "" {
		inv.Arg(scriptFile)
	} else {
		inv.Interactive = true
	}
	return inv, nil
}

// RunScript runs scriptFile with the interpreter, making every module
// and library found in outDir available to it. Without a script the
// interpreter starts interactively.
func (r *ScriptRunner) RunScript(outDir, scriptFile string) error {
	inv, err := r.Invocation(outDir, scriptFile)
	if err != nil {
		return err
	}
	return run(r.Runner, inv)
}
