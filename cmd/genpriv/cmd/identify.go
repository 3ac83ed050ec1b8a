package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/genpriv/deanon"
	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/genpriv/popgen"
	"github.com/grailbio/genpriv/recomb"
	"github.com/grailbio/genpriv/stats"
	"golang.org/x/exp/rand"
	"v.io/x/lib/cmdline"
)

func newCmdIdentify() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "identify",
		Short:    "Deanonymize a sample of fresh target genomes and report accuracy",
		ArgsName: "POPULATION RECOMBINATORS DISTRIBUTIONS",
	}
	numNodes := cmd.Flags.Int("num-nodes", 100, "number of targets to sample and identify")
	seed := cmd.Flags.Uint64("seed", 1, "seed for genome generation and target sampling")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 {
			return fmt.Errorf("identify takes POPULATION RECOMBINATORS DISTRIBUTIONS, but found %v", argv)
		}
		return runIdentify(argv[0], argv[1], argv[2], *numNodes, *seed)
	})
	return cmd
}

func runIdentify(populationPath, recombinatorsDir, distributionsPath string, numNodes int, seed uint64) error {
	log.Info.Printf("identify: loading population from %s", populationPath)
	imported, err := pedigree.Load(populationPath)
	if err != nil {
		return err
	}

	log.Info.Printf("identify: loading distributions from %s", distributionsPath)
	distribution, err := stats.LoadDistribution(distributionsPath)
	if err != nil {
		return err
	}

	log.Info.Printf("identify: loading recombination maps from %s", recombinatorsDir)
	recombinators, err := recomb.RecombinatorsFromDirectory(recombinatorsDir, seed)
	if err != nil {
		return err
	}
	cmRows, err := recomb.ReadDirectory(recombinatorsDir)
	if err != nil {
		return err
	}

	log.Info.Printf("identify: generating fresh genomes")
	popgen.CleanGenomes(imported.Population)
	popgen.NewGenerator(seed).GenerateGenomes(imported.Population, genomeGenerator(recombinators), recombinators, true, 3)

	bayes := deanon.NewBayesDeanonymize(imported.Population, distribution, cmConverterFromRows(cmRows))

	withGenomes := make([]*pedigree.Node, 0, len(imported.Population.Members))
	for i := range imported.Population.Members {
		if imported.Population.Members[i].Genome != nil {
			withGenomes = append(withGenomes, &imported.Population.Members[i])
		}
	}

	targets := sampleNodes(withGenomes, numNodes, rand.NewSource(seed))

	log.Info.Printf("identify: identifying %d nodes", len(targets))
	correct := 0
	for i, target := range targets {
		log.Info.Printf("identify: node %d id=%d", i, target.ID)
		group := bayes.Identify(target.Genome)
		if containsID(group, target.ID) {
			correct++
			log.Info.Printf("Correct")
		} else {
			log.Info.Printf("Incorrect")
		}
	}
	fmt.Printf("%g%% correctly identified\n", 100*float64(correct)/float64(len(targets)))
	return nil
}

// sampleNodes returns n entries drawn from nodes without replacement: a
// Fisher-Yates shuffle of a copy of nodes, truncated to its first n.
func sampleNodes(nodes []*pedigree.Node, n int, src rand.Source) []*pedigree.Node {
	if n >= len(nodes) {
		return nodes
	}
	rng := rand.New(src)
	shuffled := make([]*pedigree.Node, len(nodes))
	copy(shuffled, nodes)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:n]
}

func containsID(group []*pedigree.Node, id uint32) bool {
	for _, n := range group {
		if n.ID == id {
			return true
		}
	}
	return false
}
