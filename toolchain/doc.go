// Package toolchain abstracts the two outside-world capabilities the
// binding pipeline depends on: spawning an external program and waiting
// for it ([Runner]), and listing the entries of a directory by file
// extension ([Lister]).
//
// Real implementations are [ExecRunner] and [DirLister]. Package
// toolchaintest provides recording fakes for tests.
package toolchain
