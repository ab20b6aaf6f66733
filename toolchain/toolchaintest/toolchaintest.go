// Package toolchaintest provides fake [toolchain.Runner] and
// [toolchain.Lister] implementations that never touch a real toolchain.
package toolchaintest

import (
	"path/filepath"
	"slices"

	"github.com/refaktor/swiftgen/toolchain"
)

// Runner records every invocation and answers with configurable results.
//
// The zero value succeeds for every program.
type Runner struct {
	// ExitCodes maps a program name to the exit code it reports.
	// Programs not in the map exit with 0.
	ExitCodes map[string]int
	// Diagnostics maps a program name to the stderr output it reports.
	Diagnostics map[string]string
	// SpawnErrs maps a program name to an error returned instead of
	// running it (e.g. program not found).
	SpawnErrs map[string]error

	// Invocations in the order they were run.
	Invocations []toolchain.Invocation
}

func (r *Runner) Run(inv toolchain.Invocation) (*toolchain.Result, error) {
	inv.Args = slices.Clone(inv.Args)
	r.Invocations = append(r.Invocations, inv)
	if err := r.SpawnErrs[inv.Name]; err != nil {
		return nil, err
	}
	return &toolchain.Result{
		ExitCode:    r.ExitCodes[inv.Name],
		Diagnostics: []byte(r.Diagnostics[inv.Name]),
	}, nil
}

// Last returns the most recent invocation. It panics if nothing ran.
func (r *Runner) Last() toolchain.Invocation {
	if len(r.Invocations) == 0 {
		panic("toolchaintest: no invocations recorded")
	}
	return r.Invocations[len(r.Invocations)-1]
}

// Lister serves synthetic directory listings.
type Lister struct {
	// Entries maps a directory to its entry names, in the order they
	// should be returned.
	Entries map[string][]string
	// Err, if set, is returned for every call.
	Err error

	// Calls records the directories listed.
	Calls []string
}

func (l *Lister) ListByExt(dir string, exts ...string) ([]string, error) {
	l.Calls = append(l.Calls, dir)
	if l.Err != nil {
		return nil, l.Err
	}
	var res []string
	for _, name := range l.Entries[dir] {
		if toolchain.HasExt(name, exts...) {
			res = append(res, filepath.Join(dir, name))
		}
	}
	return res, nil
}
