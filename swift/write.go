package swift

import (
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/refaktor/swiftgen/ci"
)

// FileMode is the permission of every written artifact.
const FileMode os.FileMode = 0o644

// Writer writes generated artifacts to disk.
type Writer struct {
	// Atomic makes each file appear either complete or not at all. Files
	// already written are not rolled back when a later one fails.
	Atomic bool
}

func (w Writer) writeFile(path, content string) error {
	var err error
	if w.Atomic {
		err = atomic.WriteFile(path, strings.NewReader(content))
	} else {
		err = os.WriteFile(path, []byte(content), FileMode)
	}
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	// The atomic temp file is created 0600, and os.WriteFile keeps the
	// mode of an existing file.
	if err := os.Chmod(path, FileMode); err != nil {
		return &IOError{Op: "chmod", Path: path, Err: err}
	}
	return nil
}

// WriteBindings generates the bridging header, module map and Swift
// source of ci and writes them to the [Layout] planned for outDir.
// Existing files are overwritten.
//
// Everything is rendered before the first file is written, so a
// [RenderError] leaves at most an empty module directory behind.
func (w Writer) WriteBindings(ci *ci.Interface, outDir string) (*Layout, error) {
	layout := PlanLayout(outDir, ci.Namespace())
	if err := os.MkdirAll(layout.ModuleDir, 0777); err != nil {
		return nil, &IOError{Op: "mkdir", Path: layout.ModuleDir, Err: err}
	}

	bindings, err := GenerateBindings(ci)
	if err != nil {
		return nil, err
	}
	moduleMap, err := GenerateModuleMap(ci, layout.HeaderFile)
	if err != nil {
		return nil, err
	}

	for _, f := range []struct {
		path    string
		content string
	}{
		{layout.HeaderFile, bindings.Header},
		{layout.ModuleMapFile, moduleMap},
		{layout.SourceFile, bindings.Library},
	} {
		if err := w.writeFile(f.path, f.content); err != nil {
			return nil, err
		}
	}
	return &layout, nil
}

// WriteBindings is [Writer.WriteBindings] with atomic writes.
func WriteBindings(ci *ci.Interface, outDir string) (*Layout, error) {
	return Writer{Atomic: true}.WriteBindings(ci, outDir)
}
