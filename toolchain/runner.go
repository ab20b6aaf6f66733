package toolchain

import (
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// Invocation is a program name plus its argument vector.
// Argument order is preserved exactly.
type Invocation struct {
	Name string
	Args []string
	// Interactive invocations (e.g. a REPL) get the terminal as their
	// standard error and nothing is captured.
	Interactive bool
}

// Command creates an [Invocation] of name with args.
func Command(name string, args ...string) Invocation {
	return Invocation{Name: name, Args: args}
}

// Arg appends arguments to the invocation.
func (inv *Invocation) Arg(args ...string) {
	inv.Args = append(inv.Args, args...)
}

// String returns a shell-quoted command line, for logging only.
func (inv Invocation) String() string {
	return shellquote.Join(append([]string{inv.Name}, inv.Args...)...)
}

// Result describes a finished child process.
type Result struct {
	// ExitCode of the process; 0 means success.
	ExitCode int
	// Diagnostics is the captured standard error output, at most the
	// last [MaxDiagnostics] bytes of it.
	Diagnostics []byte
}

// Success reports whether the process exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// MaxDiagnostics limits how much standard error output [ExecRunner]
// keeps. Older output is discarded first.
const MaxDiagnostics = 64 << 10

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	buf []byte
	max int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if len(p) >= b.max {
		b.buf = append(b.buf[:0], p[len(p)-b.max:]...)
		return n, nil
	}
	if over := len(b.buf) + len(p) - b.max; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	b.buf = append(b.buf, p...)
	return n, nil
}

func (b *tailBuffer) Bytes() []byte {
	return b.buf
}

// Runner spawns a program, waits for it to finish and reports how it
// exited.
//
// An error is only returned if the program could not be run at all
// (e.g. not found). A program that ran and exited non-zero is reported
// through [Result.ExitCode].
type Runner interface {
	Run(inv Invocation) (*Result, error)
}

// ExecRunner is a [Runner] backed by os/exec.
//
// Stdin, Stdout and Stderr of the child default to the ones of the
// current process, so that interactive use (e.g. a REPL) works. Unless the
// invocation is interactive, standard error is additionally captured into
// [Result.Diagnostics].
type ExecRunner struct {
	// Working directory of the child; empty means the current one.
	Dir string
	// Additional environment ("KEY=value"), appended to os.Environ().
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) Run(inv Invocation) (*Result, error) {
	cmd := exec.Command(inv.Name, inv.Args...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	diag := &tailBuffer{max: MaxDiagnostics}
	if inv.Interactive {
		cmd.Stderr = stderr
	} else {
		cmd.Stderr = io.MultiWriter(stderr, diag)
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	err := cmd.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		return &Result{ExitCode: exitErr.ExitCode(), Diagnostics: diag.Bytes()}, nil
	}
	return &Result{ExitCode: 0, Diagnostics: diag.Bytes()}, nil
}
