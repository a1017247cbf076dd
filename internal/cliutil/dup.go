// Package cliutil holds small helpers shared by the four cmd/* binaries,
// grounded on the teacher's internal/cli conventions but too thin to
// warrant separate copies in each main package.
package cliutil

import (
	"fmt"
	"strings"
)

// CheckDuplicateFlags scans raw, unparsed CLI arguments for a short or
// long flag spelling repeated more than once and returns an error
// naming the first repeat found. pflag's FlagSet tracks only whether a
// flag Changed, not how many times, so duplicate-flag CLI misuse
// (spec.md ss7) must be caught before FlagSet.Parse consumes the slice.
//
// names maps a long flag name to its accepted spellings, e.g.
// {"ntoken": {"-n", "--ntoken"}}. A bare positional "--" stops the scan.
func CheckDuplicateFlags(args []string, names map[string][]string) error {
	seen := make(map[string]bool, len(names))

	for _, arg := range args {
		if arg == "--" {
			break
		}

		for long, spellings := range names {
			for _, sp := range spellings {
				if arg == sp || strings.HasPrefix(arg, sp+"=") {
					if seen[long] {
						return fmt.Errorf("flag %s specified more than once", sp)
					}

					seen[long] = true
				}
			}
		}
	}

	return nil
}
