// Command idx implements INDEX_BUILDER (spec.md ss4.5, ss6): reads the
// SIG-to-IDX text stream on stdin and writes a binary index file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dlp/fpcc/internal/cliutil"
	"github.com/dlp/fpcc/internal/fpindex"
	flag "github.com/spf13/pflag"
)

var flagSpellings = map[string][]string{
	"outfile": {"-o", "--outfile"},
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stderr))
}

func run(args []string, in io.Reader, errOut io.Writer) int {
	if err := cliutil.CheckDuplicateFlags(args[1:], flagSpellings); err != nil {
		fmt.Fprintln(errOut, "idx:", err)

		return 1
	}

	fs := flag.NewFlagSet("idx", flag.ContinueOnError)
	fs.SetOutput(errOut)
	flagOut := fs.StringP("outfile", "o", "", "output index file path (required)")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(errOut, "idx:", err)

		return 1
	}

	if *flagOut == "" {
		fmt.Fprintln(errOut, "usage: idx -o outfile")

		return 1
	}

	var warnings []string

	b := fpindex.NewBuilder(func(msg string) { warnings = append(warnings, msg) })

	if err := b.ReadStream(in); err != nil {
		fmt.Fprintln(errOut, "idx:", err)

		return 1
	}

	for _, w := range warnings {
		fmt.Fprintln(errOut, w)
	}

	idx := b.Build()

	if err := fpindex.Write(*flagOut, idx); err != nil {
		fmt.Fprintln(errOut, "idx:", err)

		return 1
	}

	return 0
}
