package swift

import (
	"fmt"
)

// Artifact names used in [RenderError].
const (
	ArtifactHeader    = "header"
	ArtifactLibrary   = "library"
	ArtifactModuleMap = "module-map"
)

// RenderError is returned when a template fails to render.
type RenderError struct {
	Artifact string // one of the Artifact* constants
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render Swift %v: %v", e.Artifact, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// IOError is returned when a directory or file can't be created, written,
// read or found.
type IOError struct {
	Op   string // "mkdir", "write", "chmod", "stat", "readdir"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%v %v: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ToolchainError is returned when an external tool can't be spawned or
// exits unsuccessfully.
type ToolchainError struct {
	Tool string
	// ExitCode of the tool, or -1 if it couldn't be spawned.
	ExitCode int
	// Diagnostics the tool wrote to stderr, if any.
	Diagnostics []byte
	// Err is the spawn error, if any.
	Err error
}

func (e *ToolchainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("running %q failed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("running %q failed: exit status %v", e.Tool, e.ExitCode)
}

func (e *ToolchainError) Unwrap() error {
	return e.Err
}
