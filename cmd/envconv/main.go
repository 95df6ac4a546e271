// Command envconv converts a YAML environment file into a requirements.txt
// style list.
//
// Usage:
//
//	envconv [-o output] <environment.yml> [output]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/born-ml/mlnotes/internal/envconv"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command and returns its exit code: 0 on success, 1 when
// the conversion fails and 2 on bad usage.
func run(args []string, stderr io.Writer) int {
	logger := log.New(stderr, "envconv: ", 0)

	fs := flag.NewFlagSet("envconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", envconv.DefaultOutput, "Path of the requirements file to write")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: envconv [-o output] <environment.yml> [output]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		fs.Usage()
		return 2
	}
	if len(rest) == 2 {
		*output = rest[1]
	}

	deps, err := envconv.Convert(rest[0], *output)
	if err != nil {
		logger.Print(err)
		return 1
	}

	logger.Printf("wrote %d dependencies to %s", len(deps), *output)
	return 0
}
