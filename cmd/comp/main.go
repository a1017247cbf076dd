// Command comp implements COMPARATOR (spec.md ss4.7, ss6): pairwise
// resemblance/containment between every pair of a list of Sig files.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dlp/fpcc/internal/cliutil"
	"github.com/dlp/fpcc/internal/compare"
	"github.com/dlp/fpcc/internal/sigio"
	flag "github.com/spf13/pflag"
)

var flagSpellings = map[string][]string{
	"base":      {"-b", "--base"},
	"csv":       {"-c", "--csv"},
	"containment": {"-i", "--containment"},
	"threshold": {"-t", "--threshold"},
	"list":      {"-L", "--list"},
}

var (
	errCSVAndContainment = errors.New("comp: -c and -i are mutually exclusive")
	errListAndPositional = errors.New("comp: -L and positional sig arguments are mutually exclusive")
	errNeedTwoSigs       = errors.New("comp: need at least two sig files to compare")
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	if err := cliutil.CheckDuplicateFlags(args[1:], flagSpellings); err != nil {
		fmt.Fprintln(errOut, "comp:", err)

		return 1
	}

	fs := flag.NewFlagSet("comp", flag.ContinueOnError)
	fs.SetOutput(errOut)
	flagBase := fs.StringP("base", "b", "", "path to base sig to subtract")
	flagCSV := fs.BoolP("csv", "c", false, "CSV output")
	flagContainment := fs.BoolP("containment", "i", false, "print containments instead of resemblance")
	flagThreshold := fs.IntP("threshold", "t", 0, "only emit results >= threshold")
	flagList := fs.StringP("list", "L", "", "file containing one sig path per line")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(errOut, "comp:", err)

		return 1
	}

	if *flagCSV && *flagContainment {
		fmt.Fprintln(errOut, errCSVAndContainment)

		return 1
	}

	paths, err := resolveSigPaths(*flagList, fs.Args())
	if err != nil {
		fmt.Fprintln(errOut, "comp:", err)

		return 1
	}

	if len(paths) < 2 {
		fmt.Fprintln(errOut, errNeedTwoSigs)

		return 1
	}

	sigs := make([][]uint64, len(paths))

	for i, p := range paths {
		sigs[i], err = readSig(p)
		if err != nil {
			fmt.Fprintln(errOut, "comp:", err)

			return 1
		}
	}

	var base []uint64
	if *flagBase != "" {
		base, err = readSig(*flagBase)
		if err != nil {
			fmt.Fprintln(errOut, "comp:", err)

			return 1
		}
	}

	bw := bufio.NewWriter(out)

	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			res := compare.Compare(sigs[i], sigs[j], base)
			emitPair(bw, paths[i], paths[j], res, *flagThreshold, *flagCSV, *flagContainment)
		}
	}

	if err := bw.Flush(); err != nil {
		fmt.Fprintln(errOut, "comp:", err)

		return 1
	}

	return 0
}

func resolveSigPaths(listPath string, positional []string) ([]string, error) {
	if listPath != "" && len(positional) > 0 {
		return nil, errListAndPositional
	}

	if listPath == "" {
		return positional, nil
	}

	data, err := os.ReadFile(listPath) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("reading list %s: %w", listPath, err)
	}

	var out []string

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		out = append(out, line)
	}

	return out, nil
}

func readSig(path string) ([]uint64, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	hashes, err := sigio.ReadSorted(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return hashes, nil
}

// emitPair writes one comparison result in the format spec.md ss6
// selects: CSV (name1;name2;resemblance;c12;c21), containment (two lines,
// one per direction, each independently thresholded), or the resemblance
// default ("name1 and name2: P%").
func emitPair(w *bufio.Writer, a, b string, res compare.Result, threshold int, csv, containment bool) {
	nameA, nameB := filepath.Base(a), filepath.Base(b)

	switch {
	case csv:
		if res.Resemblance < threshold {
			return
		}

		fmt.Fprintf(w, "%s;%s;%d;%d;%d\n", nameA, nameB, res.Resemblance, res.ContainmentAB, res.ContainmentBA)
	case containment:
		if res.ContainmentAB >= threshold {
			fmt.Fprintf(w, "%s in %s: %d%%\n", nameA, nameB, res.ContainmentAB)
		}

		if res.ContainmentBA >= threshold {
			fmt.Fprintf(w, "%s in %s: %d%%\n", nameB, nameA, res.ContainmentBA)
		}
	default:
		if res.Resemblance < threshold {
			return
		}

		fmt.Fprintf(w, "%s and %s: %d%%\n", nameA, nameB, res.Resemblance)
	}
}
