package toolchain

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Lister lists the immediate (non-recursive) entries of dir whose file
// extension is one of exts. Extensions are given without the leading dot.
// Returned entries are full paths (dir joined with the entry name).
type Lister interface {
	ListByExt(dir string, exts ...string) ([]string, error)
}

// DirLister is a [Lister] reading the real filesystem.
//
// Entries are returned in the order os.ReadDir yields them, which is
// sorted by file name.
type DirLister struct{}

func (DirLister) ListByExt(dir string, exts ...string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, ent := range ents {
		if HasExt(ent.Name(), exts...) {
			res = append(res, filepath.Join(dir, ent.Name()))
		}
	}
	return res, nil
}

// HasExt reports whether name's extension (without the dot) is one of
// exts. Names without an extension, like "Makefile" or ".hidden", never
// match.
func HasExt(name string, exts ...string) bool {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return false
	}
	return slices.Contains(exts, strings.TrimPrefix(ext, "."))
}
