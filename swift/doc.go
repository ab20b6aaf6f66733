/*
Package swift generates Swift bindings for a component interface and
drives the Swift toolchain to build and exercise them.

The pipeline has three independent stages, each one assuming the files
produced by the previous one are present:
 1. [Writer.WriteBindings]: render the bridging header, module map and
    wrapper source into a per-namespace layout (see [PlanLayout])
 2. [Compiler.CompileBindings]: compile the wrapper into lib<namespace>
    and a Swift module
 3. [ScriptRunner.RunScript]: run a Swift script (or a REPL) against every
    module and library found in an output directory

A failure in any stage aborts it immediately. Nothing is rolled back:
output of earlier stages, and a module directory created by a failed
write, stay on disk. Treat the output directory of a failed run as
untrustworthy and regenerate it.
*/
package swift
