/*
Swiftgen generates Swift bindings for native libraries and drives the Swift toolchain to build and run them.

It reads a component interface description (a TOML file listing the namespace, functions, records and enums the native library exports) and writes a bridging header, a module map and a Swift wrapper source. The result can then be compiled with swiftc and exercised with scripts run by the swift interpreter.

# Architecture pipeline (for developers)

Each element in the pipeline has a distinct sub-package. They are "glued" together in main.go.
 1. [config]: Parse the optional 'swiftgen.toml' and apply environment overrides
 2. [ci]: Parse and validate the interface description
 3. [swift]: Plan the output layout, render the artifacts and write them
 4. [swift] and [toolchain]: Compile the module with swiftc, then run scripts against everything in the output directory

Usage:

	swiftgen generate -out build arithmetic.toml
	swiftgen compile -out build arithmetic.toml
	swiftgen run -out build test.swift

or all in one go:

	swiftgen build -out build arithmetic.toml test.swift
*/
package main
