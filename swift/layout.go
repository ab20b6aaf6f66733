package swift

import (
	"path/filepath"
)

const (
	// ModuleDirExt is the extension of the per-namespace module directory.
	ModuleDirExt = "swiftmodule-dir"
	// ModuleMapFileName is the name of the module map inside a module
	// directory.
	ModuleMapFileName = "uniffi.modulemap"
	// SourceExt is the extension of the generated wrapper source.
	SourceExt = "swift"
	// DefaultDylibExt is the extension of the compiled library when none
	// is configured.
	DefaultDylibExt = "dylib"
)

// Layout is the set of paths used for one generated module.
//
// The module map and the header always share ModuleDir. Swift doesn't
// allow more than one umbrella header declaration per directory, so
// every namespace gets a directory of its own. The source file lives
// directly in OutDir.
type Layout struct {
	Namespace     string
	OutDir        string
	ModuleDir     string // <out>/<ns>.swiftmodule-dir
	ModuleMapFile string // <module dir>/uniffi.modulemap
	HeaderFile    string // <module dir>/<ns>-Bridging-Header.h
	SourceFile    string // <out>/<ns>.swift
}

// PlanLayout computes the Layout of namespace in outDir. It has no side
// effects.
func PlanLayout(outDir, namespace string) Layout {
	moduleDir := filepath.Join(outDir, namespace+"."+ModuleDirExt)
	return Layout{
		Namespace:     namespace,
		OutDir:        outDir,
		ModuleDir:     moduleDir,
		ModuleMapFile: ModuleMapFileIn(moduleDir),
		HeaderFile:    filepath.Join(moduleDir, namespace+"-Bridging-Header.h"),
		SourceFile:    filepath.Join(outDir, namespace+"."+SourceExt),
	}
}

// ModuleMapFileIn returns the module map path inside moduleDir.
func ModuleMapFileIn(moduleDir string) string {
	return filepath.Join(moduleDir, ModuleMapFileName)
}

// DylibFile returns the path of the library the compiler produces,
// lib<ns>.<ext>. An empty ext means [DefaultDylibExt].
func (l Layout) DylibFile(ext string) string {
	if ext == "" {
		ext = DefaultDylibExt
	}
	return filepath.Join(l.OutDir, "lib"+l.Namespace+"."+ext)
}

// Files returns the generated artifact paths in the order they are
// written.
func (l Layout) Files() []string {
	return []string{l.HeaderFile, l.ModuleMapFile, l.SourceFile}
}
