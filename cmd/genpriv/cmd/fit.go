package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/genpriv/stats"
	"golang.org/x/exp/rand"
	"v.io/x/lib/cmdline"
)

func newCmdFit() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "fit",
		Short:    "Fit hurdle-gamma distributions from a simulation's sample file",
		ArgsName: "POPULATION WORK_DIR OUT",
	}
	clobber := cmd.Flags.Bool("clobber", false, "overwrite OUT if it already exists")
	seed := cmd.Flags.Uint64("seed", 1, "seed for the gamma-fit initial-guess RNG")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 {
			return fmt.Errorf("fit takes POPULATION WORK_DIR OUT, but found %v", argv)
		}
		return runFit(argv[0], argv[1], argv[2], *clobber, *seed)
	})
	return cmd
}

func runFit(populationPath, samplesPath, outfile string, clobber bool, seed uint64) error {
	log.Info.Printf("fit: loading population from %s", populationPath)
	imported, err := pedigree.Load(populationPath)
	if err != nil {
		return err
	}

	log.Info.Printf("fit: fitting per-pair distributions from %s", samplesPath)
	fitted, err := stats.FitDistributions(samplesPath, rand.NewSource(seed))
	if err != nil {
		return err
	}
	log.Info.Printf("fit: fitted %d of %d related pairs", len(fitted), len(imported.Related))

	cryptic := stats.FitCrypticLabeled(imported.Related, imported.Labeled)
	distribution := stats.NewDistribution(fitted, cryptic, imported.Labeled)
	return stats.Save(outfile, clobber, distribution)
}
