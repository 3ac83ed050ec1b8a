package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/genpriv/kinship"
	"github.com/grailbio/genpriv/pedigree"
	"v.io/x/lib/cmdline"
)

func newCmdKinship() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "kinship",
		Short:    "Compute pairwise kinship coefficients over a pedigree",
		ArgsName: "POPULATION OUT",
	}
	clobber := cmd.Flags.Bool("clobber", false, "overwrite OUT if it already exists")
	keepLast := cmd.Flags.Uint("keep-last", 3, "generation window within which pairs are scored")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("kinship takes POPULATION OUT, but found %v", argv)
		}
		return runKinship(argv[0], argv[1], *clobber, uint32(*keepLast))
	})
	return cmd
}

func runKinship(populationPath, outfile string, clobber bool, keepLast uint32) error {
	log.Info.Printf("kinship: loading population from %s", populationPath)
	imported, err := pedigree.Load(populationPath)
	if err != nil {
		return err
	}
	log.Info.Printf("kinship: computing coefficients for %d members", len(imported.Population.Members))
	return kinship.WriteAll(outfile, clobber, imported.Population, keepLast)
}
