// Command map implements MAPPER (spec.md ss4.6, ss6): loads a target and
// a source index and emits matched contiguous hash-chain regions.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dlp/fpcc/internal/cliutil"
	"github.com/dlp/fpcc/internal/config"
	"github.com/dlp/fpcc/internal/fpindex"
	"github.com/dlp/fpcc/internal/mapper"
	flag "github.com/spf13/pflag"
)

var flagSpellings = map[string][]string{
	"ilcs":       {"-l", "--ilcs"},
	"min-region": {"-m", "--min-region"},
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	if err := cliutil.CheckDuplicateFlags(args[1:], flagSpellings); err != nil {
		fmt.Fprintln(errOut, "map:", err)

		return 1
	}

	fs := flag.NewFlagSet("map", flag.ContinueOnError)
	fs.SetOutput(errOut)
	flagILCS := fs.BoolP("ilcs", "l", false, "use ILCS instead of Tichy STSC")
	flagMin := fs.IntP("min-region", "m", 0, "minimum region size, in hashes")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(errOut, "map:", err)

		return 1
	}

	positional := fs.Args()
	if len(positional) != 2 {
		fmt.Fprintln(errOut, "usage: map [-l] [-m min] tgt src")

		return 1
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(errOut, "map:", err)

		return 1
	}

	cfg, err := config.Load(wd)
	if err != nil {
		fmt.Fprintln(errOut, "map:", err)

		return 1
	}

	minRegion := config.ResolveInt(fs.Changed("min-region"), *flagMin, cfg.MinRegion, mapper.DefaultMinRegionSize)

	tgt, err := fpindex.Load(positional[0])
	if err != nil {
		fmt.Fprintln(errOut, "map:", err)

		return 1
	}

	src, err := fpindex.Load(positional[1])
	if err != nil {
		fmt.Fprintln(errOut, "map:", err)

		return 1
	}

	var regions []mapper.Region
	if *flagILCS {
		regions = mapper.ILCS(tgt, src, minRegion)
	} else {
		regions = mapper.STSC(tgt, src, minRegion)
	}

	bw := bufio.NewWriter(out)

	for _, r := range regions {
		if _, err := fmt.Fprintln(bw, r.Format()); err != nil {
			fmt.Fprintln(errOut, "map:", err)

			return 1
		}
	}

	if err := bw.Flush(); err != nil {
		fmt.Fprintln(errOut, "map:", err)

		return 1
	}

	return 0
}
