package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/refaktor/swiftgen/ci"
	"github.com/refaktor/swiftgen/config"
	"github.com/refaktor/swiftgen/swift"
	"github.com/refaktor/swiftgen/textutils"
	"github.com/refaktor/swiftgen/toolchain"
)

const usage = `usage: swiftgen [options...] <command> [arguments...]

commands:
  init                                  write a default config file
  generate -out DIR INTERFACE           write Swift bindings for INTERFACE to DIR
  compile  -out DIR INTERFACE           compile the bindings in DIR into a library
  run      [-out DIR] [SCRIPT]          run SCRIPT (or a REPL) against the libraries in DIR
  build    -out DIR INTERFACE [SCRIPT]  generate, compile and optionally run SCRIPT

options:
`

// usageError makes run exit with status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

type app struct {
	cfg        *config.Config
	configPath string
	log        *Logger
	stdout     io.Writer
	runner     toolchain.Runner
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, nil))
}

// run executes the command line args and returns the exit status. A nil
// runner runs the real toolchain.
func run(args []string, stdout, stderr io.Writer, runner toolchain.Runner) int {
	fs := flag.NewFlagSet("swiftgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	optConfig := fs.String("config", "swiftgen.toml", "config file; defaults are used if it doesn't exist")
	optEnv := fs.String("env", ".env", "file with environment overrides")
	optQuiet := fs.Bool("q", false, "only log warnings and errors")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	log := &Logger{Writer: stderr}
	if *optQuiet {
		log.MinLevel = WARN
	}
	if runner == nil {
		runner = &toolchain.ExecRunner{Stdout: stdout, Stderr: stderr}
	}
	a := &app{
		configPath: *optConfig,
		log:        log,
		stdout:     stdout,
		runner:     &loggingRunner{Runner: runner, log: log},
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	var err error
	if cmd == "init" {
		err = a.initConfig(cmdArgs)
	} else {
		err = a.loadConfig(*optEnv)
		if err == nil {
			err = a.dispatch(cmd, cmdArgs)
		}
	}
	if err != nil {
		if uErr := (&usageError{}); errors.As(err, &uErr) {
			fmt.Fprintf(stderr, "swiftgen: %v\n", uErr.msg)
			fmt.Fprintf(stderr, "run 'swiftgen -h' for usage\n")
			return 2
		}
		log.Log(ERROR, "%v", errorString(err))
		return 1
	}
	return 0
}

func (a *app) dispatch(cmd string, args []string) error {
	switch cmd {
	case "generate":
		return a.generate(args)
	case "compile":
		return a.compile(args)
	case "run":
		return a.runScript(args)
	case "build":
		return a.build(args)
	default:
		return &usageError{msg: fmt.Sprintf("unknown command %q", cmd)}
	}
}

func (a *app) loadConfig(envPath string) error {
	if err := config.LoadDotEnv(envPath); err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg
	return nil
}

// parseArgs parses the flags of a subcommand and checks the number of
// remaining positional arguments. outDir is made absolute, so that the
// generated module map references the header by an absolute path.
func parseArgs(name string, args []string, requireOut bool, minArgs, maxArgs int) (outDir string, pos []string, err error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&outDir, "out", "", "output directory")
	if err := fs.Parse(args); err != nil {
		return "", nil, &usageError{msg: fmt.Sprintf("%v: %v", name, err)}
	}
	if requireOut && outDir == "" {
		return "", nil, &usageError{msg: fmt.Sprintf("%v: missing -out", name)}
	}
	if fs.NArg() < minArgs || fs.NArg() > maxArgs {
		return "", nil, &usageError{msg: fmt.Sprintf("%v: wrong number of arguments", name)}
	}
	if outDir != "" {
		outDir, err = filepath.Abs(outDir)
		if err != nil {
			return "", nil, err
		}
	}
	return outDir, fs.Args(), nil
}

func (a *app) initConfig(args []string) error {
	if len(args) != 0 {
		return &usageError{msg: "init: unexpected arguments"}
	}
	f, err := os.OpenFile(a.configPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.WriteString(f, config.DefaultConfig()); err != nil {
		return err
	}
	a.log.Log(INFO, "wrote %v", a.configPath)
	return nil
}

func (a *app) generate(args []string) error {
	outDir, pos, err := parseArgs("generate", args, true, 1, 1)
	if err != nil {
		return err
	}
	_, err = a.doGenerate(outDir, pos[0])
	return err
}

func (a *app) doGenerate(outDir, interfacePath string) (*ci.Interface, error) {
	iface, err := ci.Load(interfacePath)
	if err != nil {
		return nil, err
	}
	layout, err := swift.Writer{Atomic: a.cfg.Atomic()}.WriteBindings(iface, outDir)
	if err != nil {
		return nil, err
	}
	a.log.Log(INFO, "wrote bindings for %v to %v", iface.Namespace(), outDir)
	if err := printSummary(a.stdout, layout); err != nil {
		return nil, err
	}
	return iface, nil
}

func (a *app) compiler() *swift.Compiler {
	return &swift.Compiler{
		Runner:   a.runner,
		Tool:     a.cfg.Toolchain.Compiler,
		DylibExt: a.cfg.Layout.DylibExt,
	}
}

func (a *app) scriptRunner() *swift.ScriptRunner {
	return &swift.ScriptRunner{
		Runner:        a.runner,
		Tool:          a.cfg.Toolchain.Interpreter,
		SharedLibExts: a.cfg.Layout.SharedLibExts,
	}
}

func (a *app) compile(args []string) error {
	outDir, pos, err := parseArgs("compile", args, true, 1, 1)
	if err != nil {
		return err
	}
	iface, err := ci.Load(pos[0])
	if err != nil {
		return err
	}
	return a.doCompile(iface, outDir)
}

func (a *app) doCompile(iface *ci.Interface, outDir string) error {
	if err := a.compiler().CompileBindings(iface, outDir); err != nil {
		return err
	}
	a.log.Log(INFO, "built %v", swift.PlanLayout(outDir, iface.Namespace()).DylibFile(a.cfg.Layout.DylibExt))
	return nil
}

func (a *app) runScript(args []string) error {
	outDir, pos, err := parseArgs("run", args, false, 0, 1)
	if err != nil {
		return err
	}
	var script string
	if len(pos) == 1 {
		script = pos[0]
	}
	return a.scriptRunner().RunScript(outDir, script)
}

func (a *app) build(args []string) error {
	outDir, pos, err := parseArgs("build", args, true, 1, 2)
	if err != nil {
		return err
	}
	iface, err := a.doGenerate(outDir, pos[0])
	if err != nil {
		return err
	}
	if err := a.doCompile(iface, outDir); err != nil {
		return err
	}
	if len(pos) < 2 {
		return nil
	}
	return a.scriptRunner().RunScript(outDir, pos[1])
}

func printSummary(w io.Writer, layout *swift.Layout) error {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Artifact", "File", "Bytes"})
	for _, f := range []struct {
		name string
		path string
	}{
		{"bridging header", layout.HeaderFile},
		{"module map", layout.ModuleMapFile},
		{"swift source", layout.SourceFile},
	} {
		info, err := os.Stat(f.path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(layout.OutDir, f.path)
		if err != nil {
			rel = f.path
		}
		tbl.Append([]string{f.name, rel, strconv.FormatInt(info.Size(), 10)})
	}
	tbl.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	tbl.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	tbl.SetCenterSeparator("|")
	tbl.Render()
	return nil
}

// errorString returns the most detailed message available for err.
func errorString(err error) string {
	if cErr := (&config.Error{}); errors.As(err, &cErr) {
		return cErr.String()
	}
	if ciErr := (&ci.Error{}); errors.As(err, &ciErr) {
		return ciErr.String()
	}
	if tcErr := (&swift.ToolchainError{}); errors.As(err, &tcErr) && len(tcErr.Diagnostics) > 0 {
		return err.Error() + ":\n" + textutils.IndentString(string(tcErr.Diagnostics), "  ", 1)
	}
	return err.Error()
}

// loggingRunner logs every command line before running it.
type loggingRunner struct {
	toolchain.Runner
	log *Logger
}

func (r *loggingRunner) Run(inv toolchain.Invocation) (*toolchain.Result, error) {
	r.log.Log(INFO, "running %v", inv)
	return r.Runner.Run(inv)
}
