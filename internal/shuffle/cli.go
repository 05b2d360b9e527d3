package shuffle

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Run implements `shuffle <input_file> [output_file] [seed]`.
func Run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("shuffle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 || len(rest) > 3 {
		printUsage(stderr)
		return ExitUsage
	}

	input := rest[0]
	output := ""
	if len(rest) > 1 {
		output = rest[1]
	}
	var seed *int64
	if len(rest) > 2 {
		n, err := strconv.ParseInt(rest[2], 10, 64)
		if err != nil {
			fmt.Fprintf(stderr, "Error: seed must be an integer, got %q\n\n", rest[2])
			printUsage(stderr)
			return ExitUsage
		}
		seed = &n
	}

	if _, err := os.Stat(input); err != nil {
		fmt.Fprintf(stderr, "Error: File '%s' not found\n", input)
		return ExitError
	}

	count, err := File(input, output, seed)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}

	if output == "" {
		output = input
	}
	fmt.Fprintf(stdout, "Shuffled %d questions\n", count)
	fmt.Fprintf(stdout, "Saved to: %s\n", output)
	return ExitOK
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: shuffle <input_file> [output_file] [seed]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  shuffle data/networks/slide-6-3.json")
	fmt.Fprintln(w, "  shuffle input.json output.json")
	fmt.Fprintln(w, "  shuffle input.json output.json 42")
}
