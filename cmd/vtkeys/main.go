// Package main is the entry point for the vtkeys tool: it checks, queries
// and exercises the key and mouse bindings of the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/vtkeys/internal/app"
	"github.com/dshills/vtkeys/internal/config/loader"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitProblems = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// command is a subcommand.
type command struct {
	name    string
	summary string
	run     func(args []string, stdout, stderr io.Writer) int
}

var commands []command

func init() {
	commands = []command{
		{"lint", "Check bindings for conflicts and unreachable entries", runLint},
		{"resolve", "Show what a key or mouse event resolves to", runResolve},
		{"dump", "Print the effective bindings as a bindings file", runDump},
		{"capture", "Resolve events typed in the terminal until Ctrl-Q", runCapture},
		{"version", "Show version information", runVersion},
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitError
	}

	switch args[0] {
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	}

	for _, c := range commands {
		if c.name == args[0] {
			return c.run(args[1:], stdout, stderr)
		}
	}

	fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
	usage(stderr)
	return exitError
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "vtkeys - terminal input binding tool\n\n")
	fmt.Fprintf(w, "Usage: vtkeys <command> [options] [args]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  vtkeys lint ~/.config/vtkeys/bindings.toml\n")
	fmt.Fprintf(w, "  vtkeys resolve -mods shift up\n")
	fmt.Fprintf(w, "  vtkeys resolve -cursor -keypad up\n")
	fmt.Fprintf(w, "  vtkeys resolve -mouse -release middle\n")
	fmt.Fprintf(w, "  vtkeys dump -format yaml\n")
}

func runVersion(_ []string, stdout, _ io.Writer) int {
	fmt.Fprintf(stdout, "vtkeys %s\n", version)
	fmt.Fprintf(stdout, "Commit: %s\n", commit)
	fmt.Fprintf(stdout, "Built: %s\n", date)
	return exitOK
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// commonFlags are accepted by every command that loads bindings.
type commonFlags struct {
	configs stringList
	sets    stringList
	noEnv   bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.Var(&c.configs, "config", "Configuration file (repeatable)")
	fs.Var(&c.sets, "set", "Override a setting, as path=value (repeatable)")
	fs.BoolVar(&c.noEnv, "no-env", false, "Ignore VTKEYS_ environment variables")
}

// options builds application options. Bindings files named on the command
// line are applied after those named by the configuration.
func (c *commonFlags) options(bindings []string, logOutput io.Writer) (app.Options, error) {
	opts := app.Options{
		ConfigFiles:   c.configs,
		BindingsFiles: bindings,
		NoEnv:         c.noEnv,
		LogOutput:     logOutput,
	}
	if len(c.sets) > 0 {
		opts.Overrides = make(map[string]any, len(c.sets))
		for _, s := range c.sets {
			path, value, ok := strings.Cut(s, "=")
			if !ok || path == "" {
				return opts, fmt.Errorf("invalid -set %q, want path=value", s)
			}
			opts.Overrides[path] = loader.ParseValue(value)
		}
	}
	return opts, nil
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("vtkeys "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}
