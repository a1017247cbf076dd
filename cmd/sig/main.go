// Command sig implements SIG_WRITER (spec.md ss4.4, ss6): tokenizes and
// winnows one or more source files into a hash stream.
//
// Default mode writes the with-lines text stream (path line, then one
// "%016lx %d\n" record per winnowed hash) for every input file to
// stdout -- the contract SIG hands to IDX.
//
// -o FILE switches to sorted-only mode (spec.md ss4.4's other mode,
// needed by COMP's ".sig" inputs per spec.md ss3's Sig file format):
// every input file's winnowed hashes are pooled into one sorted array
// and written as the binary {count, hashes[count]} stream to FILE. This
// mirrors the original fpcc-sig/-o flag (_examples/original_source,
// fpcc-sig.c and csig.c both expose -o outfile); spec.md ss6's CLI line
// documents the no-flag default exactly, -o is an additive supplement.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dlp/fpcc/internal/cliutil"
	"github.com/dlp/fpcc/internal/config"
	"github.com/dlp/fpcc/internal/fsx"
	"github.com/dlp/fpcc/internal/lexer"
	"github.com/dlp/fpcc/internal/sigio"
	flag "github.com/spf13/pflag"
)

var flagSpellings = map[string][]string{
	"ntoken":  {"-n", "--ntoken"},
	"window":  {"-w", "--window"},
	"outfile": {"-o", "--outfile"},
}

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		if _, ok := <-sigCh; ok {
			fmt.Fprintln(os.Stderr, "sig: interrupted")
			os.Exit(130)
		}
	}()

	os.Exit(run(os.Args, os.Stdout, os.Stderr, fsx.NewReal()))
}

// run implements the command; it is independent of the real process
// streams so it can be exercised directly in tests, the same shape as
// the teacher's cli.Run.
func run(args []string, out, errOut io.Writer, opener fsx.Opener) int {
	if err := cliutil.CheckDuplicateFlags(args[1:], flagSpellings); err != nil {
		fmt.Fprintln(errOut, "sig:", err)

		return 1
	}

	fs := flag.NewFlagSet("sig", flag.ContinueOnError)
	fs.SetOutput(errOut)
	flagN := fs.IntP("ntoken", "n", 0, "k-gram size")
	flagW := fs.IntP("window", "w", 0, "winnowing window")
	flagOut := fs.StringP("outfile", "o", "", "write sorted-only Sig file here instead of with-lines text to stdout")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(errOut, "sig:", err)

		return 1
	}

	files := fs.Args()
	if len(files) < 1 {
		fmt.Fprintln(errOut, "usage: sig [-n ntoken] [-w window] [-o outfile] file...")

		return 1
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(errOut, "sig:", err)

		return 1
	}

	cfg, err := config.Load(wd)
	if err != nil {
		fmt.Fprintln(errOut, "sig:", err)

		return 1
	}

	n := config.ResolveInt(fs.Changed("ntoken"), *flagN, cfg.NToken, sigio.DefaultNToken)
	w := config.ResolveInt(fs.Changed("window"), *flagW, cfg.Window, sigio.DefaultWindow)

	if n < 1 || w < 1 {
		fmt.Fprintln(errOut, "sig: -n and -w must be >= 1")

		return 1
	}

	if *flagOut != "" {
		return runSortedOnly(files, *flagOut, n, w, errOut, opener)
	}

	return runWithLines(files, n, w, out, errOut, opener)
}

func runWithLines(files []string, n, w int, out, errOut io.Writer, opener fsx.Opener) int {
	for _, path := range files {
		lines, ok := hashFile(path, n, w, errOut, opener)
		if !ok {
			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}

		if err := sigio.WriteWithLines(out, abs, lines); err != nil {
			fmt.Fprintln(errOut, "sig:", err)

			return 1
		}
	}

	return 0
}

func runSortedOnly(files []string, outPath string, n, w int, errOut io.Writer, opener fsx.Opener) int {
	var all []uint64

	for _, path := range files {
		lines, ok := hashFile(path, n, w, errOut, opener)
		if !ok {
			continue
		}

		for _, hl := range lines {
			all = append(all, hl.Hash)
		}
	}

	f, err := os.Create(outPath) //nolint:gosec
	if err != nil {
		fmt.Fprintln(errOut, "sig:", err)

		return 1
	}
	defer func() { _ = f.Close() }()

	if err := sigio.WriteSorted(f, all); err != nil {
		fmt.Fprintln(errOut, "sig:", err)

		return 1
	}

	return 0
}

// hashFile opens path and runs it through the hash pipeline. Per spec.md
// ss7, an unopenable file is a warning, not a fatal error: SIG is
// best-effort across many files.
func hashFile(path string, n, w int, errOut io.Writer, opener fsx.Opener) ([]sigio.HashLine, bool) {
	f, err := opener.Open(path)
	if err != nil {
		fmt.Fprintf(errOut, "sig: cannot open %s: %v\n", path, err)

		return nil, false
	}
	defer func() { _ = f.Close() }()

	src := lexer.New(f)

	return sigio.Hashes(src, n, w), true
}
