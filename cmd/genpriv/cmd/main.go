// Package cmd wires the genpriv subcommand tree: simulate, fit, identify,
// and kinship, each a thin adapter from CLI flags onto the library
// packages that do the actual work.
package cmd

import (
	"log"

	"v.io/x/lib/cmdline"
)

// Run parses argv and dispatches to the matched subcommand.
func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "genpriv",
			Short:    "Simulate and evaluate genetic privacy against a pedigree",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdSimulate(),
				newCmdFit(),
				newCmdIdentify(),
				newCmdKinship(),
			},
		})
}
