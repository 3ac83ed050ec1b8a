// Package popgen walks a pedigree top-down and assigns each member a Genome
// by mating its parents, memoizing twin genomes and pruning genomes that
// have fallen outside the simulation's retention window.
package popgen

import (
	"sort"

	"github.com/grailbio/genpriv/genome"
	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/genpriv/recomb"
	"golang.org/x/exp/rand"
)

// Generator drives genome assignment for a Population. It owns the
// chromosome-inheritance coin flip RNG used by mate; the crossover draws
// belong to the Recombinators passed to GenerateGenomes.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator builds a Generator seeded for its chromosome-inheritance
// coin flips.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Reseed replaces the Generator's coin-flip RNG, for deterministic tests.
func (g *Generator) Reseed(seed uint64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// CleanGenomes drops every member's Genome, resetting the population to the
// state GenerateGenomes expects at the start of an iteration.
func CleanGenomes(p *pedigree.Population) {
	for i := range p.Members {
		p.Members[i].Genome = nil
	}
}

// GenerateGenomes walks p's generations in ascending order, assigning each
// node without a Genome one: a fresh founder Genome if both parents are
// absent, the reused twin Genome if applicable, or the product of mating
// the (possibly freshly founded) parent genomes. trueGenealogy selects
// between a node's real and suspected parent links. After processing
// generation G, if G >= keepLast, generation G-keepLast's genomes are
// dropped so peak memory stays bounded by the retention window.
func (g *Generator) GenerateGenomes(
	p *pedigree.Population,
	founders *genome.Generator,
	recombinators *recomb.RecombinatorPair,
	trueGenealogy bool,
	keepLast uint32,
) {
	for generationNum, bucket := range p.Generations {
		for _, id := range bucket.Members {
			node := &p.Members[id]
			if node.Genome != nil {
				continue
			}
			motherID, fatherID := parents(node, trueGenealogy)
			if motherID < 0 && fatherID < 0 {
				fresh := founders.Generate()
				node.Genome = &fresh
				continue
			}
			if node.Twin != -1 {
				twin := &p.Members[node.Twin]
				twinMother, twinFather := parents(twin, trueGenealogy)
				if twin.Genome != nil && twinMother == motherID && twinFather == fatherID {
					node.Genome = twin.Genome
					continue
				}
			}
			var motherGenome *genome.Genome
			if motherID < 0 {
				fresh := founders.Generate()
				motherGenome = &fresh
			} else {
				motherGenome = p.Members[motherID].Genome
			}
			var fatherGenome *genome.Genome
			if fatherID < 0 {
				fresh := founders.Generate()
				fatherGenome = &fresh
			} else {
				fatherGenome = p.Members[fatherID].Genome
			}
			mated := g.mate(motherGenome, fatherGenome, recombinators)
			node.Genome = &mated
		}
		if uint32(generationNum) >= keepLast {
			toCleanGen := generationNum - int(keepLast)
			for _, id := range p.Generations[toCleanGen].Members {
				p.Members[id].Genome = nil
			}
		}
	}
}

func parents(n *pedigree.Node, trueGenealogy bool) (int32, int32) {
	if trueGenealogy {
		return n.Mother, n.Father
	}
	return n.SuspectedMother, n.SuspectedFather
}

// mate produces a child Genome: the mother strand comes from recombining
// and chromosome-sampling the mother's Genome with the female recombinator,
// the father strand symmetrically with the male recombinator.
func (g *Generator) mate(mother, father *genome.Genome, recombinators *recomb.RecombinatorPair) genome.Genome {
	fromMother := g.pickChromsForDiploid(mother, recombinators.Female)
	fromFather := g.pickChromsForDiploid(father, recombinators.Male)
	return genome.Genome{Mother: fromMother, Father: fromFather}
}

// pickChromsForDiploid recombines g's two strands, then for each chromosome
// independently keeps either the recombined mother or father slice with
// equal probability, concatenating the chosen per-chromosome runs into one
// gamete Diploid.
func (g *Generator) pickChromsForDiploid(parent *genome.Genome, recombinator *recomb.Recombinator) genome.Diploid {
	recombGenome := recombinator.Recombination(parent)

	var starts, founder []uint32
	for i, chrom := range genome.Chromosomes {
		from := &recombGenome.Mother
		if g.rng.Uint64()&1 == 0 {
			from = &recombGenome.Father
		}
		start := recombinator.ChromStartOffset(chrom)
		startI := searchLeft(from.Starts, start)
		var stopI int
		if i+1 < len(genome.Chromosomes) {
			stop := recombinator.ChromStartOffset(genome.Chromosomes[i+1])
			stopI = searchLeft(from.Starts, stop)
		} else {
			stopI = len(from.Starts)
		}
		starts = append(starts, from.Starts[startI:stopI]...)
		founder = append(founder, from.Founder[startI:stopI]...)
	}
	return genome.Diploid{Starts: starts, Founder: founder, End: recombGenome.Mother.End}
}

func searchLeft(starts []uint32, find uint32) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] >= find })
}
