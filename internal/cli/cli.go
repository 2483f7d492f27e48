// Package cli handles command-line argument parsing for the solver binary:
// the same flag set main.go declares (-cpuprof, -memprof) plus a verbosity
// flag for the logrus-based tracing this module carries. Grounded on
// _examples/rhartert-yass/main.go's parseConfig/config shape and
// original_source/src/cli.rs's ArgError for the instance-file error path.
package cli

import (
	"flag"
	"fmt"
)

// ArgError reports a problem with the command line itself, as opposed to an
// error encountered while solving.
type ArgError struct {
	Message string
}

func (e *ArgError) Error() string {
	return e.Message
}

// Config holds the parsed command line.
type Config struct {
	InstanceFile string
	Gzipped      bool
	Verbose      bool
	CPUProfile   bool
	MemProfile   bool
}

// Parse parses args (excluding the program name, as os.Args[1:]) into a
// Config. It reports an *ArgError if no instance file was given.
func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("incdet", flag.ContinueOnError)

	gzipped := fs.Bool("gzip", false, "treat the instance file as gzip-compressed")
	verbose := fs.Bool("v", false, "enable verbose (debug-level) solver tracing")
	cpuProfile := fs.Bool("cpuprof", false, "save pprof CPU profile to cpuprof")
	memProfile := fs.Bool("memprof", false, "save pprof memory profile to memprof")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() == 0 || fs.Arg(0) == "" {
		return nil, &ArgError{Message: "missing instance file"}
	}
	if fs.NArg() > 1 {
		return nil, &ArgError{Message: fmt.Sprintf("unexpected extra arguments: %v", fs.Args()[1:])}
	}

	return &Config{
		InstanceFile: fs.Arg(0),
		Gzipped:      *gzipped,
		Verbose:      *verbose,
		CPUProfile:   *cpuProfile,
		MemProfile:   *memProfile,
	}, nil
}
