package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/genpriv/popgen"
	"github.com/grailbio/genpriv/recomb"
	"github.com/grailbio/genpriv/simulate"
	"v.io/x/lib/cmdline"
)

func newCmdSimulate() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "simulate",
		Short:    "Simulate population genomes and record per-pair IBD samples",
		ArgsName: "POPULATION RECOMBINATORS WORK_DIR",
	}
	iterations := cmd.Flags.Int("iterations", 1000, "number of Monte Carlo iterations to run")
	clobber := cmd.Flags.Bool("clobber", false, "overwrite the sample file at WORK_DIR if it already exists")
	seed := cmd.Flags.Uint64("seed", 1, "seed for the genome-generation and recombination RNGs")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 {
			return fmt.Errorf("simulate takes POPULATION RECOMBINATORS WORK_DIR, but found %v", argv)
		}
		return runSimulate(argv[0], argv[1], argv[2], *iterations, *clobber, *seed)
	})
	return cmd
}

func runSimulate(populationPath, recombinatorsDir, outfile string, iterations int, clobber bool, seed uint64) error {
	log.Info.Printf("simulate: loading population from %s", populationPath)
	imported, err := pedigree.Load(populationPath)
	if err != nil {
		return err
	}

	log.Info.Printf("simulate: loading recombination maps from %s", recombinatorsDir)
	recombinators, err := recomb.RecombinatorsFromDirectory(recombinatorsDir, seed)
	if err != nil {
		return err
	}
	cmRows, err := recomb.ReadDirectory(recombinatorsDir)
	if err != nil {
		return err
	}

	founders := genomeGenerator(recombinators)
	serializer, err := simulate.NewSerializer(outfile, clobber, imported.Related)
	if err != nil {
		return err
	}

	driver := &simulate.Driver{
		Population:    imported.Population,
		Pairs:         imported.Related,
		Founders:      founders,
		Recombinators: recombinators,
		CmConverter:   cmConverterFromRows(cmRows),
		Generator:     popgen.NewGenerator(seed),
		Serializer:    serializer,
		KeepLast:      3,
	}

	log.Info.Printf("simulate: running %d iterations over %d related pairs", iterations, len(imported.Related))
	if err := driver.Run(iterations); err != nil {
		_ = serializer.Close()
		return err
	}
	return serializer.Close()
}
